// internal/app/store/domains/domainstore.go
package domainstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/domainhub/internal/app/system/hierarchy"
	"github.com/dalemusser/domainhub/internal/app/system/pricing"
	"github.com/dalemusser/domainhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c           *mongo.Collection
	assignments *mongo.Collection
}

var (
	ErrNameRequired   = errors.New("domain name is required")
	ErrBadPricing     = errors.New(`pricing_type must be "fixed", "percentage", or "full" (fixed and percentage require a value)`)
	ErrParentNotFound = errors.New("parent domain not found")
	ErrCycle          = errors.New("a domain cannot be moved under itself or one of its descendants")
	ErrHasChildren    = errors.New("domain still has child domains")
	ErrHasAssignments = errors.New("domain still has contact assignments")
)

func New(db *mongo.Database) *Store {
	return &Store{
		c:           db.Collection("domains"),
		assignments: db.Collection("contact_domain_assignments"),
	}
}

// Create inserts a new domain. Level is derived here, never taken from the
// caller: 1 for roots, parent level + 1 otherwise. The parent must exist.
func (s *Store) Create(ctx context.Context, d models.Domain) (models.Domain, error) {
	if strings.TrimSpace(d.Name) == "" {
		return models.Domain{}, ErrNameRequired
	}
	if err := validatePricing(d.PricingType, d.PricingValue); err != nil {
		return models.Domain{}, err
	}

	d.Level = 1
	if d.ParentID != nil {
		var parent models.Domain
		if err := s.c.FindOne(ctx, bson.M{"_id": *d.ParentID}).Decode(&parent); err != nil {
			if err == mongo.ErrNoDocuments {
				return models.Domain{}, ErrParentNotFound
			}
			return models.Domain{}, err
		}
		d.Level = parent.Level + 1
	}

	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	d.NameCI = text.Fold(d.Name)
	d.IsActive = true
	d.CreatedAt = now
	d.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Domain{}, err
	}
	return d, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Domain, error) {
	var d models.Domain
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return models.Domain{}, err
	}
	return d, nil
}

// ListByIDs fetches the given domains in one query and returns them in the
// requested order. Ids that resolve to no domain are omitted, not errors.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Domain, error) {
	out := make([]models.Domain, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var domains []models.Domain
	if err := cur.All(ctx, &domains); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Domain, len(domains))
	for _, d := range domains {
		byID[d.ID] = d
	}
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// ListActive returns all active domains sorted by level then order_index,
// the order the hierarchy builder expects.
func (s *Store) ListActive(ctx context.Context) ([]models.Domain, error) {
	return s.list(ctx, bson.M{"is_active": true})
}

// ListAll returns every domain, active or not. Admin and edit views only.
func (s *Store) ListAll(ctx context.Context) ([]models.Domain, error) {
	return s.list(ctx, bson.M{})
}

// ListByLevel returns active domains at the given depth (1 = roots).
func (s *Store) ListByLevel(ctx context.Context, level int) ([]models.Domain, error) {
	return s.list(ctx, bson.M{"is_active": true, "level": level})
}

// ListChildren returns the active direct children of a domain.
func (s *Store) ListChildren(ctx context.Context, parentID primitive.ObjectID) ([]models.Domain, error) {
	return s.list(ctx, bson.M{"is_active": true, "parent_id": parentID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Domain, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "level", Value: 1},
		{Key: "order_index", Value: 1},
		{Key: "_id", Value: 1},
	})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var domains []models.Domain
	if err := cur.All(ctx, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}

// UpdateInfo updates the display fields in place. An empty name keeps the
// current one; icon and notes are overwritten as given (both can be cleared).
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, icon, pricingNotes string, orderIndex *int) error {
	set := bson.M{
		"icon":          icon,
		"pricing_notes": pricingNotes,
		"updated_at":    time.Now().UTC(),
	}
	if strings.TrimSpace(name) != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if orderIndex != nil {
		set["order_index"] = *orderIndex
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// UpdatePricing replaces the domain's pricing rule and notes.
func (s *Store) UpdatePricing(ctx context.Context, id primitive.ObjectID, rule pricing.Rule, notes string) error {
	ptype, pvalue := rule.Fields()
	if ptype != nil {
		if err := validatePricing(ptype, pvalue); err != nil {
			return err
		}
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"pricing_type":  ptype,
		"pricing_value": pvalue,
		"pricing_notes": notes,
		"updated_at":    time.Now().UTC(),
	}})
	return err
}

// Reparent moves a domain under a new parent (nil = make it a root).
//
// The write is rejected with ErrCycle when the new parent is the domain
// itself or any of its descendants; hiding bad candidates in a picker is not
// enough, the guard lives here so no caller can corrupt the forest. Levels
// are re-derived for the domain and its whole subtree.
func (s *Store) Reparent(ctx context.Context, id primitive.ObjectID, newParentID *primitive.ObjectID) error {
	all, err := s.ListAll(ctx)
	if err != nil {
		return err
	}
	byID := hierarchy.MapByID(all)

	d, ok := byID[id]
	if !ok {
		return mongo.ErrNoDocuments
	}

	newLevel := 1
	if newParentID != nil {
		if *newParentID == id {
			return ErrCycle
		}
		p, ok := byID[*newParentID]
		if !ok {
			return ErrParentNotFound
		}
		if hierarchy.IsDescendant(byID, p.ID, id) {
			return ErrCycle
		}
		newLevel = p.Level + 1
	}

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{"level": newLevel, "updated_at": now}}
	if newParentID != nil {
		update["$set"].(bson.M)["parent_id"] = *newParentID
	} else {
		update["$unset"] = bson.M{"parent_id": ""}
	}
	if _, err := s.c.UpdateByID(ctx, id, update); err != nil {
		return err
	}

	// Shift the subtree by the same delta so every level stays derived.
	delta := newLevel - d.Level
	if delta == 0 {
		return nil
	}
	desc := hierarchy.Descendants(all, id)
	if len(desc) == 0 {
		return nil
	}
	ids := make([]primitive.ObjectID, 0, len(desc))
	for _, c := range desc {
		ids = append(ids, c.ID)
	}
	_, err = s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{
			"$inc": bson.M{"level": delta},
			"$set": bson.M{"updated_at": now},
		})
	return err
}

// Reorder rewrites order_index for a set of siblings to match the given
// order. Ids not in the list keep their current index.
func (s *Store) Reorder(ctx context.Context, orderedIDs []primitive.ObjectID) error {
	now := time.Now().UTC()
	for i, id := range orderedIDs {
		if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
			"order_index": i,
			"updated_at":  now,
		}}); err != nil {
			return err
		}
	}
	return nil
}

// SetActive flips the soft-delete flag. Deactivating hides the domain (and,
// through the builder's orphan rule, its subtree) from all listings.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"is_active":  active,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// Delete removes a domain permanently. Deletion is blocked while children or
// contact assignments still reference it; deactivate is the everyday path.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"parent_id": id})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, ErrHasChildren
	}

	n, err = s.assignments.CountDocuments(ctx, bson.M{"domain_id": id})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, ErrHasAssignments
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func validatePricing(ptype *string, pvalue *float64) error {
	if ptype == nil {
		return nil
	}
	switch pricing.Type(*ptype) {
	case pricing.TypeFixed, pricing.TypePercentage:
		if pvalue == nil {
			return ErrBadPricing
		}
	case pricing.TypeFull:
	default:
		return ErrBadPricing
	}
	return nil
}
