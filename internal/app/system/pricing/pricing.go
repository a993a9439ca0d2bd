// internal/app/system/pricing/pricing.go
package pricing

import (
	"strconv"

	"github.com/dalemusser/domainhub/internal/app/system/hierarchy"
	"github.com/dalemusser/domainhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Type is the pricing rule discriminator as stored in pricing_type.
type Type string

const (
	TypeNone       Type = ""
	TypeFixed      Type = "fixed"
	TypePercentage Type = "percentage"
	TypeFull       Type = "full"
)

// Rule is the tagged form of the stored nullable (pricing_type,
// pricing_value) pair. Decoding happens once at the boundary so downstream
// code never re-checks nullability.
//
// Value is the fixed amount for TypeFixed and the rate for TypePercentage;
// it is meaningless for TypeNone and TypeFull.
type Rule struct {
	Type  Type
	Value float64
}

// FromFields decodes the stored pair. An unrecognized pricing_type degrades
// to no pricing rather than erroring; malformed rows must not break listing.
func FromFields(ptype *string, pvalue *float64) Rule {
	if ptype == nil {
		return Rule{}
	}
	r := Rule{Type: Type(*ptype)}
	switch r.Type {
	case TypeFixed, TypePercentage:
		if pvalue != nil {
			r.Value = *pvalue
		}
	case TypeFull:
	default:
		return Rule{}
	}
	return r
}

// Fields encodes a Rule back into the stored pair.
func (r Rule) Fields() (*string, *float64) {
	switch r.Type {
	case TypeFixed, TypePercentage:
		t := string(r.Type)
		v := r.Value
		return &t, &v
	case TypeFull:
		t := string(TypeFull)
		return &t, nil
	default:
		return nil, nil
	}
}

// Context carries what is known at evaluation time. DealTotal is set once a
// deal supplies its total; percentage rules cannot resolve without it.
type Context struct {
	DealTotal *float64
}

// Result is a single rule evaluation.
//
// Deferred marks a contribution that cannot be resolved yet (percentage
// without a deal total, or full deal-time pricing). Deferred entries carry
// Amount 0 but are NOT free; callers must surface the explanation and flag
// any total that excludes them as partial.
type Result struct {
	Amount      float64 `json:"amount"`
	Explanation string  `json:"explanation"`
	Deferred    bool    `json:"deferred"`
}

// Evaluate computes the displayable price contribution of one rule.
func Evaluate(r Rule, ctx Context) Result {
	switch r.Type {
	case TypeFixed:
		return Result{
			Amount:      r.Value,
			Explanation: "fixed price " + formatNumber(r.Value),
		}
	case TypePercentage:
		if ctx.DealTotal != nil {
			return Result{
				Amount:      *ctx.DealTotal * r.Value / 100,
				Explanation: formatNumber(r.Value) + "% of deal total " + formatNumber(*ctx.DealTotal),
			}
		}
		return Result{
			Deferred:    true,
			Explanation: formatNumber(r.Value) + "% of the deal amount, computed when a deal is created",
		}
	case TypeFull:
		return Result{
			Deferred:    true,
			Explanation: "price determined at deal creation",
		}
	default:
		return Result{Explanation: "no pricing configured"}
	}
}

// Line is one evaluated domain within a selected set.
type Line struct {
	DomainID primitive.ObjectID `json:"domain_id"`
	Label    string             `json:"label"`
	Result
}

// Summary aggregates a selected domain set.
//
// Total sums the non-deferred amounts only. Partial is true whenever any
// deferred line exists, meaning the shown total is incomplete until a deal
// supplies the missing amounts.
type Summary struct {
	Total   float64 `json:"total"`
	Partial bool    `json:"partial"`
	Lines   []Line  `json:"lines"`
}

// Summarize evaluates each selected domain's rule and aggregates.
func Summarize(domains []models.Domain, ctx Context) Summary {
	s := Summary{Lines: make([]Line, 0, len(domains))}
	for _, d := range domains {
		res := Evaluate(FromFields(d.PricingType, d.PricingValue), ctx)
		if res.Deferred {
			s.Partial = true
		} else {
			s.Total += res.Amount
		}
		s.Lines = append(s.Lines, Line{DomainID: d.ID, Label: hierarchy.Label(d), Result: res})
	}
	return s
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
