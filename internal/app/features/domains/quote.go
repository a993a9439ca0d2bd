// internal/app/features/domains/quote.go
package domains

import (
	"context"
	"net/http"

	"github.com/dalemusser/domainhub/internal/app/system/pricing"
	"github.com/dalemusser/domainhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// quoteRequest is the POST /domains/quote body: the selected domain set and,
// optionally, the deal total that lets percentage rules resolve.
type quoteRequest struct {
	DomainIDs []string `json:"domain_ids"`
	DealTotal *float64 `json:"deal_total,omitempty"`
}

// HandleQuote handles POST /domains/quote: evaluates the pricing rule of
// each selected domain and aggregates. Deferred contributions (percentage
// without a deal total, full deal-time pricing) are excluded from the total
// and flag it as partial. Ids that resolve to no domain are skipped; the
// quote covers what exists.
func (h *Handler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req quoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ids := make([]primitive.ObjectID, 0, len(req.DomainIDs))
	for _, hex := range req.DomainIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid domain id: "+hex)
			return
		}
		ids = append(ids, id)
	}

	domains, err := h.Domains.ListByIDs(ctx, ids)
	if err != nil {
		h.fail(w, "load domains for quote", err)
		return
	}

	writeJSON(w, http.StatusOK, pricing.Summarize(domains, pricing.Context{DealTotal: req.DealTotal}))
}
