// internal/app/features/assignments/assign.go
package assignments

import (
	"context"
	"net/http"
	"time"

	assignmentstore "github.com/dalemusser/domainhub/internal/app/store/assignments"
	"github.com/dalemusser/domainhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// assignRequest is the POST /assignments body. Status defaults to "active",
// joined_date to now; joined_date accepts "2006-01-02" or RFC 3339.
type assignRequest struct {
	ContactID     string `json:"contact_id"`
	DomainID      string `json:"domain_id"`
	Status        string `json:"status,omitempty"`
	JoinedDate    string `json:"joined_date,omitempty"`
	Notes         string `json:"notes,omitempty"`
	CustomPricing bson.M `json:"custom_pricing,omitempty"`
}

// HandleAssign handles POST /assignments: creates a contact↔domain edge.
// Assigning an already-assigned pair creates a second edge; removal takes
// every edge for the pair with it.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req assignRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	contactID, domainID, ok := parsePair(w, req.ContactID, req.DomainID)
	if !ok {
		return
	}

	opts := assignmentstore.AssignOptions{
		Status:        req.Status,
		Notes:         req.Notes,
		CustomPricing: req.CustomPricing,
	}
	if req.JoinedDate != "" {
		joined, err := parseDate(req.JoinedDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid joined_date")
			return
		}
		opts.JoinedDate = &joined
	}

	a, err := h.Assignments.Assign(ctx, contactID, domainID, opts)
	if err != nil {
		h.fail(w, "assign contact", err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// removeRequest names the pair to unassign.
type removeRequest struct {
	ContactID string `json:"contact_id"`
	DomainID  string `json:"domain_id"`
}

// HandleRemove handles POST /assignments/remove: deletes every edge for the
// pair. Removing a pair with no edges is a success with removed 0.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req removeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	contactID, domainID, ok := parsePair(w, req.ContactID, req.DomainID)
	if !ok {
		return
	}

	removed, err := h.Assignments.Unassign(ctx, contactID, domainID)
	if err != nil {
		h.fail(w, "unassign contact", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

func parsePair(w http.ResponseWriter, contactHex, domainHex string) (contactID, domainID primitive.ObjectID, ok bool) {
	contactID, err := primitive.ObjectIDFromHex(contactHex)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact_id")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	domainID, err = primitive.ObjectIDFromHex(domainHex)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid domain_id")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return contactID, domainID, true
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
