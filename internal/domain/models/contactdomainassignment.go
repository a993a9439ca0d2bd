// internal/domain/models/contactdomainassignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactDomainAssignment is the many-to-many edge between a contact and a
// domain, stored in the `contact_domain_assignments` collection.
//
// ContactID references the external contact service and is treated as opaque
// here. There is intentionally NO uniqueness constraint on
// (contact_id, domain_id): repeated assignment of the same pair creates
// additional edges, and Unassign removes all of them.
type ContactDomainAssignment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContactID primitive.ObjectID `bson:"contact_id" json:"contact_id"`
	DomainID  primitive.ObjectID `bson:"domain_id" json:"domain_id"`

	Status     string    `bson:"status" json:"status"` // "active" | "paused" | "completed"
	JoinedDate time.Time `bson:"joined_date" json:"joined_date"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`

	// CustomPricing is an optional per-assignment pricing override. It is
	// passed through untouched; deal creation interprets it, not this core.
	CustomPricing bson.M `bson:"custom_pricing,omitempty" json:"custom_pricing,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
