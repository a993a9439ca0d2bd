// internal/domain/models/domain.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Domain is a node in the service taxonomy (a sport, a therapy type, or one
// of its sub-locations). Domains form a forest via ParentID.
//
// NOTE:
//   - Level is derived, never authored: 1 for roots, parent.Level+1 otherwise.
//     The store re-derives it on create and on re-parenting.
//   - Pricing is the nullable (pricing_type, pricing_value) pair; the pricing
//     package decodes it into a tagged rule at the boundary.
//   - IsActive is a soft-delete flag. Inactive domains are excluded from all
//     listing and hierarchy operations but stay in the collection.
type Domain struct {
	ID       primitive.ObjectID  `bson:"_id" json:"id"`
	Name     string              `bson:"name" json:"name"`
	NameCI   string              `bson:"name_ci" json:"name_ci"`
	Icon     string              `bson:"icon,omitempty" json:"icon,omitempty"`
	Level    int                 `bson:"level" json:"level"`
	ParentID *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`

	PricingType  *string  `bson:"pricing_type,omitempty" json:"pricing_type,omitempty"`
	PricingValue *float64 `bson:"pricing_value,omitempty" json:"pricing_value,omitempty"`
	PricingNotes string   `bson:"pricing_notes,omitempty" json:"pricing_notes,omitempty"`

	OrderIndex int  `bson:"order_index" json:"order_index"`
	IsActive   bool `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
