// internal/app/features/assignments/status.go
package assignments

import (
	"context"
	"net/http"

	"github.com/dalemusser/domainhub/internal/app/system/timeouts"
)

// statusRequest moves every edge of the pair to the given status. Any valid
// status may follow any other; "completed" is not terminal.
type statusRequest struct {
	ContactID string `json:"contact_id"`
	DomainID  string `json:"domain_id"`
	Status    string `json:"status"`
}

// HandleStatus handles POST /assignments/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	contactID, domainID, ok := parsePair(w, req.ContactID, req.DomainID)
	if !ok {
		return
	}

	updated, err := h.Assignments.UpdateStatus(ctx, contactID, domainID, req.Status)
	if err != nil {
		h.fail(w, "update assignment status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}
