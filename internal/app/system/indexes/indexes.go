// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureAll is called at startup. Index creation is idempotent; errors are
// aggregated so every problem is visible and startup can fail fast.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureDomains(ctx, db); err != nil {
		problems = append(problems, "domains: "+err.Error())
	}
	if err := ensureAssignments(ctx, db); err != nil {
		problems = append(problems, "contact_domain_assignments: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureDomains(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("domains").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "parent_id", Value: 1}}},
		{Keys: bson.D{{Key: "level", Value: 1}, {Key: "order_index", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "name_ci", Value: 1}}},
	})
	return err
}

// ensureAssignments creates lookup indexes only. There is deliberately no
// unique index on (contact_id, domain_id): duplicate edges are part of the
// assignment model's contract and are removed together by Unassign.
func ensureAssignments(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("contact_domain_assignments").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "contact_id", Value: 1}}},
		{Keys: bson.D{{Key: "domain_id", Value: 1}}},
		{Keys: bson.D{{Key: "contact_id", Value: 1}, {Key: "domain_id", Value: 1}}},
	})
	return err
}
