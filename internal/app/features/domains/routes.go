// internal/app/features/domains/routes.go
package domains

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// LIST
	r.Get("/", h.ServeList)
	r.Get("/all", h.ServeAdminList)
	r.Get("/tree", h.ServeTree)

	// PICKER (multi-select state transitions)
	r.Post("/picker", h.ServePicker)

	// PRICING QUOTE for a selected set
	r.Post("/quote", h.HandleQuote)

	// CREATE
	r.Post("/", h.HandleCreate)

	// REORDER siblings
	r.Post("/reorder", h.HandleReorder)

	// SINGLE DOMAIN
	r.Get("/{id}", h.ServeDomain)
	r.Get("/{id}/path", h.ServePath)
	r.Get("/{id}/parents", h.ServeEligibleParents)
	r.Get("/{id}/group", h.ServeGroup)

	// EDIT
	r.Post("/{id}/edit", h.HandleEdit)
	r.Post("/{id}/pricing", h.HandlePricing)
	r.Post("/{id}/parent", h.HandleReparent)

	// ACTIVATE / DEACTIVATE (soft delete)
	r.Post("/{id}/deactivate", h.HandleDeactivate)
	r.Post("/{id}/activate", h.HandleActivate)

	// DELETE (permanent, guarded)
	r.Post("/{id}/delete", h.HandleDelete)

	return r
}
