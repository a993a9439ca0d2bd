// internal/app/features/assignments/list.go
package assignments

import (
	"context"
	"net/http"

	assignmentstore "github.com/dalemusser/domainhub/internal/app/store/assignments"
	"github.com/dalemusser/domainhub/internal/app/system/hierarchy"
	"github.com/dalemusser/domainhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeByContact handles GET /assignments/contact/{contactID}: all of a
// contact's assignments joined with domain display fields, newest first.
func (h *Handler) ServeByContact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	contactID, ok := urlObjectID(w, r, "contactID")
	if !ok {
		return
	}

	rows, err := h.Assignments.ListByContact(ctx, contactID)
	if err != nil {
		h.fail(w, "list assignments by contact", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assignments": rows})
}

// ServeByDomain handles GET /assignments/domain/{domainID}: every edge
// referencing the domain, joined with domain display fields. With ?group=1
// the query widens to the domain plus its direct children, answering
// "everyone in this category or any of its sub-locations"; rows then span
// several domains, so each carries its own resolved labels.
func (h *Handler) ServeByDomain(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	domainID, ok := urlObjectID(w, r, "domainID")
	if !ok {
		return
	}
	if _, err := h.Domains.GetByID(ctx, domainID); err != nil {
		h.fail(w, "load domain", err)
		return
	}

	var (
		rows []assignmentstore.Row
		err  error
	)
	if query.Get(r, "group") == "1" {
		domains, lerr := h.Domains.ListActive(ctx)
		if lerr != nil {
			h.fail(w, "list domains for group", lerr)
			return
		}
		rows, err = h.Assignments.ListByDomainIDs(ctx, hierarchy.Group(domains, domainID))
	} else {
		rows, err = h.Assignments.ListByDomain(ctx, domainID)
	}
	if err != nil {
		h.fail(w, "list assignments by domain", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assignments": rows})
}
