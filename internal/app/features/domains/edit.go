// internal/app/features/domains/edit.go
package domains

import (
	"context"
	"net/http"

	domainstore "github.com/dalemusser/domainhub/internal/app/store/domains"
	"github.com/dalemusser/domainhub/internal/app/system/pricing"
	"github.com/dalemusser/domainhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// editRequest updates display fields. An empty name keeps the current one;
// icon and pricing notes are written as sent, so omitting them clears them.
type editRequest struct {
	Name         string `json:"name,omitempty"`
	Icon         string `json:"icon,omitempty"`
	PricingNotes string `json:"pricing_notes,omitempty"`
	OrderIndex   *int   `json:"order_index,omitempty"`
}

// HandleEdit handles POST /domains/{id}/edit.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req editRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Domains.UpdateInfo(ctx, id, req.Name, req.Icon, req.PricingNotes, req.OrderIndex); err != nil {
		h.fail(w, "edit domain", err)
		return
	}
	h.respondWithDomain(ctx, w, id)
}

// pricingRequest replaces the pricing rule. Type "" clears pricing; "full"
// ignores the value; "fixed" and "percentage" require one.
type pricingRequest struct {
	PricingType  string   `json:"pricing_type"`
	PricingValue *float64 `json:"pricing_value,omitempty"`
	PricingNotes string   `json:"pricing_notes,omitempty"`
}

// HandlePricing handles POST /domains/{id}/pricing.
func (h *Handler) HandlePricing(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req pricingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rule := pricing.Rule{Type: pricing.Type(req.PricingType)}
	switch rule.Type {
	case pricing.TypeFixed, pricing.TypePercentage:
		if req.PricingValue == nil {
			h.fail(w, "update pricing", domainstore.ErrBadPricing)
			return
		}
		rule.Value = *req.PricingValue
	case pricing.TypeNone, pricing.TypeFull:
	default:
		h.fail(w, "update pricing", domainstore.ErrBadPricing)
		return
	}

	if err := h.Domains.UpdatePricing(ctx, id, rule, req.PricingNotes); err != nil {
		h.fail(w, "update pricing", err)
		return
	}
	h.respondWithDomain(ctx, w, id)
}

// reparentRequest moves a domain. Empty parent_id makes it a root.
type reparentRequest struct {
	ParentID string `json:"parent_id"`
}

// HandleReparent handles POST /domains/{id}/parent. The store rejects moves
// that would place a domain under itself or one of its descendants.
func (h *Handler) HandleReparent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req reparentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var newParent *primitive.ObjectID
	if req.ParentID != "" {
		pid, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid parent id")
			return
		}
		newParent = &pid
	}

	if err := h.Domains.Reparent(ctx, id, newParent); err != nil {
		h.fail(w, "reparent domain", err)
		return
	}
	h.respondWithDomain(ctx, w, id)
}

// reorderRequest rewrites sibling ordering to match the id list.
type reorderRequest struct {
	OrderedIDs []string `json:"ordered_ids"`
}

// HandleReorder handles POST /domains/reorder.
func (h *Handler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req reorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ids := make([]primitive.ObjectID, 0, len(req.OrderedIDs))
	for _, hex := range req.OrderedIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id: "+hex)
			return
		}
		ids = append(ids, id)
	}

	if err := h.Domains.Reorder(ctx, ids); err != nil {
		h.fail(w, "reorder domains", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"reordered": len(ids)})
}

// HandleDeactivate handles POST /domains/{id}/deactivate: the soft delete.
// The subtree disappears from listings through the builder's orphan rule.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

// HandleActivate handles POST /domains/{id}/activate.
func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if _, err := h.Domains.GetByID(ctx, id); err != nil {
		h.fail(w, "load domain", err)
		return
	}
	if err := h.Domains.SetActive(ctx, id, active); err != nil {
		h.fail(w, "set active", err)
		return
	}
	h.respondWithDomain(ctx, w, id)
}

// respondWithDomain returns the post-update document so callers see the
// derived fields (level, name_ci, updated_at) without a second round trip.
func (h *Handler) respondWithDomain(ctx context.Context, w http.ResponseWriter, id primitive.ObjectID) {
	d, err := h.Domains.GetByID(ctx, id)
	if err != nil {
		h.fail(w, "reload domain", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
