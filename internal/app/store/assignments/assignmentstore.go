// internal/app/store/assignments/assignmentstore.go
package assignmentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/domainhub/internal/app/system/status"
	"github.com/dalemusser/domainhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c       *mongo.Collection
	domains *mongo.Collection
}

var (
	ErrBadStatus      = errors.New(`status must be "active", "paused", or "completed"`)
	ErrDomainNotFound = errors.New("domain not found")
)

func New(db *mongo.Database) *Store {
	return &Store{
		c:       db.Collection("contact_domain_assignments"),
		domains: db.Collection("domains"),
	}
}

// AssignOptions are the caller-supplied parts of a new assignment. Zero
// values fall back to status "active" and a joined date of now.
type AssignOptions struct {
	Status        string
	JoinedDate    *time.Time
	Notes         string
	CustomPricing bson.M
}

// Assign inserts a new contact↔domain edge after checking that the domain
// exists. The contact lives in an external service and is not verified here.
//
// There is deliberately no duplicate check: assigning the same pair twice
// creates two edges, and a retried timed-out Assign can do the same. Unassign
// removes every edge for the pair.
func (s *Store) Assign(ctx context.Context, contactID, domainID primitive.ObjectID, opts AssignOptions) (models.ContactDomainAssignment, error) {
	st := opts.Status
	if st == "" {
		st = status.Active
	}
	if !status.Valid(st) {
		return models.ContactDomainAssignment{}, ErrBadStatus
	}

	if err := s.domains.FindOne(ctx, bson.M{"_id": domainID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.ContactDomainAssignment{}, ErrDomainNotFound
		}
		return models.ContactDomainAssignment{}, err
	}

	now := time.Now().UTC()
	joined := now
	if opts.JoinedDate != nil {
		joined = *opts.JoinedDate
	}

	a := models.ContactDomainAssignment{
		ID:            primitive.NewObjectID(),
		ContactID:     contactID,
		DomainID:      domainID,
		Status:        st,
		JoinedDate:    joined,
		Notes:         opts.Notes,
		CustomPricing: opts.CustomPricing,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.ContactDomainAssignment{}, err
	}
	return a, nil
}

// Unassign deletes every edge matching the exact (contact, domain) pair.
// Zero deletions is a success, not an error. Returns the number removed.
func (s *Store) Unassign(ctx context.Context, contactID, domainID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"contact_id": contactID, "domain_id": domainID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// UpdateStatus sets the status on every edge for the pair. Any valid status
// may follow any other; transitions are not guarded. Returns the number of
// edges modified (0 when the pair has none).
func (s *Store) UpdateStatus(ctx context.Context, contactID, domainID primitive.ObjectID, st string) (int64, error) {
	if !status.Valid(st) {
		return 0, ErrBadStatus
	}
	res, err := s.c.UpdateMany(ctx,
		bson.M{"contact_id": contactID, "domain_id": domainID},
		bson.M{"$set": bson.M{"status": st, "updated_at": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Row is an assignment joined with the referenced domain's display fields,
// ready for contact and reporting views. Display fields stay zero when the
// domain row cannot be resolved.
type Row struct {
	Assignment models.ContactDomainAssignment `json:"assignment"`

	DomainName   string   `json:"domain_name"`
	DomainIcon   string   `json:"domain_icon,omitempty"`
	DomainLevel  int      `json:"domain_level"`
	PricingType  *string  `json:"pricing_type,omitempty"`
	PricingValue *float64 `json:"pricing_value,omitempty"`
}

// ListByContact returns all of a contact's assignments joined with domain
// display fields, newest joined first.
func (s *Store) ListByContact(ctx context.Context, contactID primitive.ObjectID) ([]Row, error) {
	assignments, err := s.listAssignments(ctx, bson.M{"contact_id": contactID})
	if err != nil {
		return nil, err
	}
	return s.joinDomains(ctx, assignments)
}

// ListByDomain returns all assignments for one domain joined with domain
// display fields, newest joined first.
func (s *Store) ListByDomain(ctx context.Context, domainID primitive.ObjectID) ([]Row, error) {
	assignments, err := s.listAssignments(ctx, bson.M{"domain_id": domainID})
	if err != nil {
		return nil, err
	}
	return s.joinDomains(ctx, assignments)
}

// ListByDomainIDs returns all assignments whose domain is in the given set,
// joined with domain display fields. This is the membership query behind
// "every contact in this category or any of its sub-locations"; the join
// matters here because rows span several domains.
func (s *Store) ListByDomainIDs(ctx context.Context, domainIDs []primitive.ObjectID) ([]Row, error) {
	if len(domainIDs) == 0 {
		return []Row{}, nil
	}
	assignments, err := s.listAssignments(ctx, bson.M{"domain_id": bson.M{"$in": domainIDs}})
	if err != nil {
		return nil, err
	}
	return s.joinDomains(ctx, assignments)
}

// CountByDomain returns the number of edges referencing a domain.
func (s *Store) CountByDomain(ctx context.Context, domainID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"domain_id": domainID})
}

func (s *Store) listAssignments(ctx context.Context, filter bson.M) ([]models.ContactDomainAssignment, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "joined_date", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var assignments []models.ContactDomainAssignment
	if err := cur.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// joinDomains resolves domain display fields for a batch of assignments in
// one $in query. Inactive domains still resolve; a contact's history should
// show where they used to be assigned.
func (s *Store) joinDomains(ctx context.Context, assignments []models.ContactDomainAssignment) ([]Row, error) {
	rows := make([]Row, 0, len(assignments))
	if len(assignments) == 0 {
		return rows, nil
	}

	idSet := make(map[primitive.ObjectID]bool, len(assignments))
	ids := make([]primitive.ObjectID, 0, len(assignments))
	for _, a := range assignments {
		if !idSet[a.DomainID] {
			idSet[a.DomainID] = true
			ids = append(ids, a.DomainID)
		}
	}

	cur, err := s.domains.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
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

	for _, a := range assignments {
		row := Row{Assignment: a}
		if d, ok := byID[a.DomainID]; ok {
			row.DomainName = d.Name
			row.DomainIcon = d.Icon
			row.DomainLevel = d.Level
			row.PricingType = d.PricingType
			row.PricingValue = d.PricingValue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
