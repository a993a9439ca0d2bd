// internal/app/features/domains/delete.go
package domains

import (
	"context"
	"net/http"

	"github.com/dalemusser/domainhub/internal/app/system/timeouts"
)

// HandleDelete handles POST /domains/{id}/delete: the permanent removal.
// Blocked with 409 while children or contact assignments still reference the
// domain; deactivation is the everyday path and is never blocked.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	deleted, err := h.Domains.Delete(ctx, id)
	if err != nil {
		h.fail(w, "delete domain", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
