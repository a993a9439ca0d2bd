// internal/app/features/domains/tree.go
package domains

import (
	"context"
	"net/http"

	"github.com/dalemusser/domainhub/internal/app/system/hierarchy"
	"github.com/dalemusser/domainhub/internal/app/system/selection"
	"github.com/dalemusser/domainhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeTree handles GET /domains/tree: the active domains as a nested
// forest, roots and children in display order.
func (h *Handler) ServeTree(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	domains, err := h.Domains.ListActive(ctx)
	if err != nil {
		h.fail(w, "list domains for tree", err)
		return
	}

	forest := hierarchy.Build(domains)
	if forest == nil {
		forest = []*hierarchy.Node{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tree": forest})
}

// ServePath handles GET /domains/{id}/path: the breadcrumb from root to the
// domain, e.g. "🏀 Sport > Location 1". An unknown id still answers 200 with
// the unavailable sentinel; breadcrumbs are display, not lookups.
func (h *Handler) ServePath(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	all, err := h.Domains.ListAll(ctx)
	if err != nil {
		h.fail(w, "list domains for path", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"path": hierarchy.FullPath(hierarchy.MapByID(all), id),
	})
}

// ServeEligibleParents handles GET /domains/{id}/parents: the active domains
// that may become the new parent, excluding the domain and its subtree.
func (h *Handler) ServeEligibleParents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	domains, err := h.Domains.ListActive(ctx)
	if err != nil {
		h.fail(w, "list domains for parents", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"parents": hierarchy.EligibleParents(domains, id),
	})
}

// ServeGroup handles GET /domains/{id}/group: the domain plus its direct
// children, the id set behind "this category or any of its sub-locations".
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if _, err := h.Domains.GetByID(ctx, id); err != nil {
		h.fail(w, "get domain for group", err)
		return
	}

	domains, err := h.Domains.ListActive(ctx)
	if err != nil {
		h.fail(w, "list domains for group", err)
		return
	}

	ids := hierarchy.Group(domains, id)
	hexes := make([]string, len(ids))
	for i, gid := range ids {
		hexes[i] = gid.Hex()
	}
	writeJSON(w, http.StatusOK, map[string]any{"domain_ids": hexes})
}

// pickerRequest carries the picker state and the toggle to apply. Selected
// and expanded travel as hex id lists so the state round-trips as JSON.
type pickerRequest struct {
	Selected []string `json:"selected"`
	Expanded []string `json:"expanded"`
	Select   string   `json:"select,omitempty"`
	Expand   string   `json:"expand,omitempty"`
}

// pickerResponse is the re-rendered picker after the toggle.
type pickerResponse struct {
	Rows     []selection.Row `json:"rows"`
	Chosen   []selection.Row `json:"chosen"`
	Selected []string        `json:"selected"`
	Expanded []string        `json:"expanded"`
}

// ServePicker handles POST /domains/picker: applies one select or expand
// toggle to the supplied picker state and returns the rendered rows plus the
// new state. With no toggle it just renders the state as sent.
func (h *Handler) ServePicker(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req pickerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	st := selection.NewState()
	for _, hex := range req.Selected {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid selected id: "+hex)
			return
		}
		st.Selected[id] = true
	}
	for _, hex := range req.Expanded {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid expanded id: "+hex)
			return
		}
		st.Expanded[id] = true
	}

	domains, err := h.Domains.ListActive(ctx)
	if err != nil {
		h.fail(w, "list domains for picker", err)
		return
	}
	forest := hierarchy.Build(domains)

	if req.Select != "" {
		id, err := primitive.ObjectIDFromHex(req.Select)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid select id")
			return
		}
		st = selection.ToggleSelect(st, forest, id)
	}
	if req.Expand != "" {
		id, err := primitive.ObjectIDFromHex(req.Expand)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid expand id")
			return
		}
		st = selection.ToggleExpand(st, id)
	}

	resp := pickerResponse{
		Rows:     selection.Render(forest, st),
		Chosen:   selection.Chosen(forest, st),
		Selected: hexList(st.Selected),
		Expanded: hexList(st.Expanded),
	}
	if resp.Rows == nil {
		resp.Rows = []selection.Row{}
	}
	if resp.Chosen == nil {
		resp.Chosen = []selection.Row{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func hexList(set map[primitive.ObjectID]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id.Hex())
	}
	return out
}
