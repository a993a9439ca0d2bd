// internal/app/features/assignments/routes.go
package assignments

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// ASSIGN / UNASSIGN
	r.Post("/", h.HandleAssign)
	r.Post("/remove", h.HandleRemove)

	// STATUS lifecycle
	r.Post("/status", h.HandleStatus)

	// LISTINGS
	r.Get("/contact/{contactID}", h.ServeByContact)
	r.Get("/domain/{domainID}", h.ServeByDomain)

	return r
}
