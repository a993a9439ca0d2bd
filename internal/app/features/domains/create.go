// internal/app/features/domains/create.go
package domains

import (
	"context"
	"net/http"

	"github.com/dalemusser/domainhub/internal/app/system/timeouts"
	"github.com/dalemusser/domainhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// createRequest is the POST /domains body. ParentID empty means root.
// Level is never accepted from the caller; the store derives it.
type createRequest struct {
	Name         string   `json:"name"`
	Icon         string   `json:"icon,omitempty"`
	ParentID     string   `json:"parent_id,omitempty"`
	PricingType  *string  `json:"pricing_type,omitempty"`
	PricingValue *float64 `json:"pricing_value,omitempty"`
	PricingNotes string   `json:"pricing_notes,omitempty"`
	OrderIndex   int      `json:"order_index,omitempty"`
}

// HandleCreate handles POST /domains.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	d := models.Domain{
		Name:         req.Name,
		Icon:         req.Icon,
		PricingType:  req.PricingType,
		PricingValue: req.PricingValue,
		PricingNotes: req.PricingNotes,
		OrderIndex:   req.OrderIndex,
	}
	if req.ParentID != "" {
		pid, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid parent id")
			return
		}
		d.ParentID = &pid
	}

	created, err := h.Domains.Create(ctx, d)
	if err != nil {
		h.fail(w, "create domain", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
