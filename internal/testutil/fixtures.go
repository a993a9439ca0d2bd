// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/domainhub/internal/app/system/status"
	"github.com/dalemusser/domainhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateDomain inserts an active domain. Pass nil parent for a root; the
// level is derived from the parent the way the store derives it.
func (f *Fixtures) CreateDomain(ctx context.Context, name, icon string, parent *models.Domain) models.Domain {
	f.t.Helper()

	now := time.Now().UTC()
	d := models.Domain{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Icon:      icon,
		Level:     1,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if parent != nil {
		pid := parent.ID
		d.ParentID = &pid
		d.Level = parent.Level + 1
	}

	if _, err := f.db.Collection("domains").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("failed to create test domain: %v", err)
	}
	return d
}

// CreateDomainWithPricing inserts an active domain carrying a pricing rule.
// For ptype "full", value is ignored and stored as null.
func (f *Fixtures) CreateDomainWithPricing(ctx context.Context, name string, parent *models.Domain, ptype string, value float64) models.Domain {
	f.t.Helper()

	d := f.CreateDomain(ctx, name, "", parent)
	set := bson.M{"pricing_type": ptype}
	if ptype == "full" {
		set["pricing_value"] = nil
	} else {
		set["pricing_value"] = value
	}
	if _, err := f.db.Collection("domains").UpdateByID(ctx, d.ID, bson.M{"$set": set}); err != nil {
		f.t.Fatalf("failed to set test pricing: %v", err)
	}
	d.PricingType = &ptype
	if ptype != "full" {
		v := value
		d.PricingValue = &v
	}
	return d
}

// CreateInactiveDomain inserts a soft-deleted domain.
func (f *Fixtures) CreateInactiveDomain(ctx context.Context, name string, parent *models.Domain) models.Domain {
	f.t.Helper()

	d := f.CreateDomain(ctx, name, "", parent)
	if _, err := f.db.Collection("domains").UpdateByID(ctx, d.ID,
		bson.M{"$set": bson.M{"is_active": false}}); err != nil {
		f.t.Fatalf("failed to deactivate test domain: %v", err)
	}
	d.IsActive = false
	return d
}

// CreateAssignment inserts a contact↔domain edge. Empty status means active.
func (f *Fixtures) CreateAssignment(ctx context.Context, contactID, domainID primitive.ObjectID, st string) models.ContactDomainAssignment {
	f.t.Helper()

	if st == "" {
		st = status.Active
	}
	now := time.Now().UTC()
	a := models.ContactDomainAssignment{
		ID:         primitive.NewObjectID(),
		ContactID:  contactID,
		DomainID:   domainID,
		Status:     st,
		JoinedDate: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("contact_domain_assignments").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test assignment: %v", err)
	}
	return a
}
