// internal/app/store/assignments/assignmentstore_test.go
package assignmentstore_test

import (
	"errors"
	"testing"
	"time"

	assignmentstore "github.com/dalemusser/domainhub/internal/app/store/assignments"
	"github.com/dalemusser/domainhub/internal/app/system/status"
	"github.com/dalemusser/domainhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAssign_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d := f.CreateDomain(ctx, "Sport", "", nil)
	contact := primitive.NewObjectID()

	before := time.Now().UTC().Add(-time.Second)
	a, err := store.Assign(ctx, contact, d.ID, assignmentstore.AssignOptions{})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if a.Status != status.Active {
		t.Errorf("status: got %q, want %q", a.Status, status.Active)
	}
	if a.JoinedDate.Before(before) {
		t.Errorf("joined date not defaulted to now: %v", a.JoinedDate)
	}
	if a.ContactID != contact || a.DomainID != d.ID {
		t.Errorf("pair not stored: %+v", a)
	}
}

func TestAssign_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d := f.CreateDomain(ctx, "Sport", "", nil)
	contact := primitive.NewObjectID()

	if _, err := store.Assign(ctx, contact, d.ID, assignmentstore.AssignOptions{Status: "archived"}); !errors.Is(err, assignmentstore.ErrBadStatus) {
		t.Errorf("bad status: got %v, want ErrBadStatus", err)
	}
	if _, err := store.Assign(ctx, contact, primitive.NewObjectID(), assignmentstore.AssignOptions{}); !errors.Is(err, assignmentstore.ErrDomainNotFound) {
		t.Errorf("missing domain: got %v, want ErrDomainNotFound", err)
	}
}

func TestAssign_DuplicatePairCreatesTwoEdges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d := f.CreateDomain(ctx, "Sport", "", nil)
	contact := primitive.NewObjectID()

	if _, err := store.Assign(ctx, contact, d.ID, assignmentstore.AssignOptions{}); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if _, err := store.Assign(ctx, contact, d.ID, assignmentstore.AssignOptions{}); err != nil {
		t.Fatalf("second assign: %v", err)
	}

	// Assigning the same pair twice is two edges, not an upsert.
	n, err := store.CountByDomain(ctx, d.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("edges for duplicated pair: got %d, want 2", n)
	}
}

func TestUnassign_RemovesAllEdges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d := f.CreateDomain(ctx, "Sport", "", nil)
	other := f.CreateDomain(ctx, "Art", "", nil)
	contact := primitive.NewObjectID()

	f.CreateAssignment(ctx, contact, d.ID, "")
	f.CreateAssignment(ctx, contact, d.ID, status.Paused)
	f.CreateAssignment(ctx, contact, other.ID, "")

	removed, err := store.Unassign(ctx, contact, d.ID)
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed: got %d, want 2 (every edge for the pair)", removed)
	}

	// The other domain's edge survives.
	n, err := store.CountByDomain(ctx, other.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("other domain edges: got %d, want 1", n)
	}
}

func TestUnassign_NoEdgesIsSuccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	removed, err := store.Unassign(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("unassign of absent pair must succeed: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed: got %d, want 0", removed)
	}
}

func TestUpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d := f.CreateDomain(ctx, "Sport", "", nil)
	contact := primitive.NewObjectID()
	f.CreateAssignment(ctx, contact, d.ID, "")

	updated, err := store.UpdateStatus(ctx, contact, d.ID, status.Completed)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated: got %d, want 1", updated)
	}

	// Completed is not terminal; any valid status may follow.
	if _, err := store.UpdateStatus(ctx, contact, d.ID, status.Active); err != nil {
		t.Errorf("completed back to active: %v", err)
	}

	if _, err := store.UpdateStatus(ctx, contact, d.ID, "archived"); !errors.Is(err, assignmentstore.ErrBadStatus) {
		t.Errorf("bad status: got %v, want ErrBadStatus", err)
	}

	updated, err = store.UpdateStatus(ctx, primitive.NewObjectID(), d.ID, status.Paused)
	if err != nil {
		t.Fatalf("update absent pair: %v", err)
	}
	if updated != 0 {
		t.Errorf("absent pair updated: got %d, want 0", updated)
	}
}

func TestListByContact_JoinsDomains(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	priced := f.CreateDomainWithPricing(ctx, "Sport", nil, "fixed", 100)
	inactive := f.CreateInactiveDomain(ctx, "Retired", nil)
	contact := primitive.NewObjectID()

	f.CreateAssignment(ctx, contact, priced.ID, "")
	f.CreateAssignment(ctx, contact, inactive.ID, "")
	f.CreateAssignment(ctx, primitive.NewObjectID(), priced.ID, "")

	rows, err := store.ListByContact(ctx, contact)
	if err != nil {
		t.Fatalf("list by contact: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}

	byName := map[string]assignmentstore.Row{}
	for _, r := range rows {
		byName[r.DomainName] = r
	}
	sport, ok := byName["Sport"]
	if !ok {
		t.Fatal("sport row missing")
	}
	if sport.PricingType == nil || *sport.PricingType != "fixed" || sport.PricingValue == nil || *sport.PricingValue != 100 {
		t.Errorf("sport pricing not joined: %+v", sport)
	}

	// Inactive domains still resolve; history must keep its labels.
	if _, ok := byName["Retired"]; !ok {
		t.Error("inactive domain should still resolve in the join")
	}
}

func TestListByDomain_JoinsDomains(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d := f.CreateDomainWithPricing(ctx, "Sport", nil, "percentage", 30)
	f.CreateAssignment(ctx, primitive.NewObjectID(), d.ID, "")
	f.CreateAssignment(ctx, primitive.NewObjectID(), d.ID, status.Paused)

	rows, err := store.ListByDomain(ctx, d.ID)
	if err != nil {
		t.Fatalf("list by domain: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	for _, r := range rows {
		if r.DomainName != "Sport" {
			t.Errorf("domain name not joined: %+v", r)
		}
		if r.PricingType == nil || *r.PricingType != "percentage" || r.PricingValue == nil || *r.PricingValue != 30 {
			t.Errorf("pricing not joined: %+v", r)
		}
	}
}

func TestListByDomainIDs_JoinsEachDomain(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sport := f.CreateDomain(ctx, "Sport", "🏀", nil)
	loc1 := f.CreateDomain(ctx, "Location 1", "", &sport)
	loc2 := f.CreateDomain(ctx, "Location 2", "", &sport)

	f.CreateAssignment(ctx, primitive.NewObjectID(), sport.ID, "")
	f.CreateAssignment(ctx, primitive.NewObjectID(), loc1.ID, "")
	f.CreateAssignment(ctx, primitive.NewObjectID(), loc2.ID, "")

	rows, err := store.ListByDomainIDs(ctx, []primitive.ObjectID{sport.ID, loc1.ID})
	if err != nil {
		t.Fatalf("list by ids: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}

	// Rows span several domains; each must resolve its own labels.
	names := map[string]bool{}
	for _, r := range rows {
		if r.DomainName == "" {
			t.Errorf("row missing joined domain name: %+v", r)
		}
		names[r.DomainName] = true
	}
	if !names["Sport"] || !names["Location 1"] {
		t.Errorf("joined names: got %v", names)
	}

	empty, err := store.ListByDomainIDs(ctx, nil)
	if err != nil {
		t.Fatalf("empty id set: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty id set rows: got %d, want 0", len(empty))
	}
}
