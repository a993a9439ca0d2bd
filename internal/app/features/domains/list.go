// internal/app/features/domains/list.go
package domains

import (
	"context"
	"net/http"
	"regexp"
	"strconv"

	"github.com/dalemusser/domainhub/internal/app/system/paging"
	"github.com/dalemusser/domainhub/internal/app/system/timeouts"
	"github.com/dalemusser/domainhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServeList handles GET /domains. Returns active domains sorted by level
// then order_index. Optional filters: ?level=N and ?parent=<id>.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var (
		domains []models.Domain
		err     error
	)
	switch {
	case query.Get(r, "parent") != "":
		parentID, perr := primitive.ObjectIDFromHex(query.Get(r, "parent"))
		if perr != nil {
			writeError(w, http.StatusBadRequest, "invalid parent id")
			return
		}
		domains, err = h.Domains.ListChildren(ctx, parentID)
	case query.Get(r, "level") != "":
		level, perr := strconv.Atoi(query.Get(r, "level"))
		if perr != nil || level < 1 {
			writeError(w, http.StatusBadRequest, "invalid level")
			return
		}
		domains, err = h.Domains.ListByLevel(ctx, level)
	default:
		domains, err = h.Domains.ListActive(ctx)
	}
	if err != nil {
		h.fail(w, "list domains", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"domains": domains})
}

// adminListResponse is the paged admin listing of all domains, active or not.
type adminListResponse struct {
	Domains    []models.Domain `json:"domains"`
	Total      int64           `json:"total"`
	HasPrev    bool            `json:"has_prev"`
	HasNext    bool            `json:"has_next"`
	PrevCursor string          `json:"prev_cursor,omitempty"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// ServeAdminList handles GET /domains/all: every domain including inactive
// ones, keyset-paged over the folded name. Optional ?q= matches from the
// start of the name; ?before= / ?after= carry the cursors.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	before := query.Get(r, "before")
	after := query.Get(r, "after")

	filter := bson.M{}
	if q := query.Get(r, "q"); q != "" {
		filter["name_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(q))}
	}

	total, err := h.DB.Collection("domains").CountDocuments(ctx, filter)
	if err != nil {
		h.fail(w, "count domains", err)
		return
	}

	findOpts := options.Find()
	cfg := paging.ConfigureKeyset(before, after)
	cfg.ApplyToFind(findOpts, "name_ci")
	if window := cfg.KeysetWindow("name_ci"); window != nil {
		filter["$or"] = window["$or"]
	}

	cur, err := h.DB.Collection("domains").Find(ctx, filter, findOpts)
	if err != nil {
		h.fail(w, "find domains", err)
		return
	}
	defer cur.Close(ctx)

	var domains []models.Domain
	if err := cur.All(ctx, &domains); err != nil {
		h.fail(w, "decode domains", err)
		return
	}

	page := paging.TrimPage(&domains, before, after)
	if before != "" {
		paging.Reverse(domains)
	}

	resp := adminListResponse{
		Domains: domains,
		Total:   total,
		HasPrev: page.HasPrev,
		HasNext: page.HasNext,
	}
	resp.PrevCursor, resp.NextCursor = paging.BuildCursors(domains,
		func(d models.Domain) string { return d.NameCI },
		func(d models.Domain) primitive.ObjectID { return d.ID })

	writeJSON(w, http.StatusOK, resp)
}

// ServeDomain handles GET /domains/{id}. Inactive domains still resolve here
// so edit views can load them.
func (h *Handler) ServeDomain(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	d, err := h.Domains.GetByID(ctx, id)
	if err != nil {
		h.fail(w, "get domain", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
