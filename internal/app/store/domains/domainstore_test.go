// internal/app/store/domains/domainstore_test.go
package domainstore_test

import (
	"errors"
	"testing"

	domainstore "github.com/dalemusser/domainhub/internal/app/store/domains"
	"github.com/dalemusser/domainhub/internal/app/system/pricing"
	"github.com/dalemusser/domainhub/internal/domain/models"
	"github.com/dalemusser/domainhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func strPtr(s string) *string     { return &s }
func floatPtr(v float64) *float64 { return &v }

func TestCreate_DerivesLevels(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := domainstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	root, err := store.Create(ctx, models.Domain{Name: "Sport", Icon: "🏀"})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if root.Level != 1 {
		t.Errorf("root level: got %d, want 1", root.Level)
	}
	if !root.IsActive {
		t.Error("new domains start active")
	}
	if root.NameCI == "" {
		t.Error("name_ci must be populated")
	}

	child, err := store.Create(ctx, models.Domain{Name: "Location 1", ParentID: &root.ID})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if child.Level != 2 {
		t.Errorf("child level: got %d, want 2", child.Level)
	}

	grandchild, err := store.Create(ctx, models.Domain{Name: "Court A", ParentID: &child.ID})
	if err != nil {
		t.Fatalf("create grandchild: %v", err)
	}
	if grandchild.Level != 3 {
		t.Errorf("grandchild level: got %d, want 3", grandchild.Level)
	}
}

func TestCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := domainstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Domain{Name: "   "}); !errors.Is(err, domainstore.ErrNameRequired) {
		t.Errorf("blank name: got %v, want ErrNameRequired", err)
	}

	ghost := primitive.NewObjectID()
	if _, err := store.Create(ctx, models.Domain{Name: "Stray", ParentID: &ghost}); !errors.Is(err, domainstore.ErrParentNotFound) {
		t.Errorf("missing parent: got %v, want ErrParentNotFound", err)
	}

	if _, err := store.Create(ctx, models.Domain{Name: "Bad", PricingType: strPtr("fixed")}); !errors.Is(err, domainstore.ErrBadPricing) {
		t.Errorf("fixed without value: got %v, want ErrBadPricing", err)
	}
	if _, err := store.Create(ctx, models.Domain{Name: "Bad", PricingType: strPtr("barter"), PricingValue: floatPtr(1)}); !errors.Is(err, domainstore.ErrBadPricing) {
		t.Errorf("unknown type: got %v, want ErrBadPricing", err)
	}

	// "full" needs no value.
	if _, err := store.Create(ctx, models.Domain{Name: "Full", PricingType: strPtr("full")}); err != nil {
		t.Errorf("full without value: got %v, want nil", err)
	}
}

func TestListActive_ExcludesInactive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := domainstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateDomain(ctx, "Sport", "🏀", nil)
	f.CreateInactiveDomain(ctx, "Retired", nil)

	active, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Sport" {
		t.Errorf("active list: got %v", active)
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all list: got %d, want 2", len(all))
	}
}

func TestListByLevelAndChildren(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := domainstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sport := f.CreateDomain(ctx, "Sport", "🏀", nil)
	art := f.CreateDomain(ctx, "Art", "🎨", nil)
	f.CreateDomain(ctx, "Location 1", "", &sport)
	f.CreateDomain(ctx, "Location 2", "", &sport)

	roots, err := store.ListByLevel(ctx, 1)
	if err != nil {
		t.Fatalf("list level 1: %v", err)
	}
	if len(roots) != 2 {
		t.Errorf("roots: got %d, want 2", len(roots))
	}

	children, err := store.ListChildren(ctx, sport.ID)
	if err != nil {
		t.Fatalf("list children: %v", err)
	}
	if len(children) != 2 {
		t.Errorf("sport children: got %d, want 2", len(children))
	}

	none, err := store.ListChildren(ctx, art.ID)
	if err != nil {
		t.Fatalf("list children: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("art children: got %d, want 0", len(none))
	}
}

func TestUpdateInfo_EmptyNameKeepsCurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := domainstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d := f.CreateDomain(ctx, "Sport", "🏀", nil)

	if err := store.UpdateInfo(ctx, d.ID, "", "⚽", "weekend rates", nil); err != nil {
		t.Fatalf("update info: %v", err)
	}

	got, err := store.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Sport" {
		t.Errorf("name: got %q, want kept", got.Name)
	}
	if got.Icon != "⚽" || got.PricingNotes != "weekend rates" {
		t.Errorf("icon/notes not updated: %+v", got)
	}
}

func TestUpdatePricing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := domainstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d := f.CreateDomain(ctx, "Sport", "", nil)

	if err := store.UpdatePricing(ctx, d.ID, pricing.Rule{Type: pricing.TypePercentage, Value: 30}, "commission"); err != nil {
		t.Fatalf("update pricing: %v", err)
	}
	got, err := store.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PricingType == nil || *got.PricingType != "percentage" {
		t.Errorf("pricing type: got %v", got.PricingType)
	}
	if got.PricingValue == nil || *got.PricingValue != 30 {
		t.Errorf("pricing value: got %v", got.PricingValue)
	}

	// Clearing pricing nulls both fields.
	if err := store.UpdatePricing(ctx, d.ID, pricing.Rule{}, ""); err != nil {
		t.Fatalf("clear pricing: %v", err)
	}
	got, err = store.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PricingType != nil || got.PricingValue != nil {
		t.Errorf("pricing not cleared: %+v", got)
	}
}

func TestReparent_RederivesSubtreeLevels(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := domainstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sport := f.CreateDomain(ctx, "Sport", "", nil)
	art := f.CreateDomain(ctx, "Art", "", nil)
	studio := f.CreateDomain(ctx, "Studio", "", &art)
	room := f.CreateDomain(ctx, "Room A", "", &studio)

	// Move Art (level 1) under Sport: Art 2, Studio 3, Room A 4.
	if err := store.Reparent(ctx, art.ID, &sport.ID); err != nil {
		t.Fatalf("reparent: %v", err)
	}

	wantLevels := map[primitive.ObjectID]int{art.ID: 2, studio.ID: 3, room.ID: 4}
	for id, want := range wantLevels {
		got, err := store.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Level != want {
			t.Errorf("level of %s: got %d, want %d", got.Name, got.Level, want)
		}
	}

	// Move Art back to root.
	if err := store.Reparent(ctx, art.ID, nil); err != nil {
		t.Fatalf("reparent to root: %v", err)
	}
	got, err := store.GetByID(ctx, art.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Level != 1 || got.ParentID != nil {
		t.Errorf("after move to root: level %d, parent %v", got.Level, got.ParentID)
	}
}

func TestReparent_RejectsCycles(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := domainstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sport := f.CreateDomain(ctx, "Sport", "", nil)
	loc := f.CreateDomain(ctx, "Location 1", "", &sport)
	court := f.CreateDomain(ctx, "Court A", "", &loc)

	if err := store.Reparent(ctx, sport.ID, &sport.ID); !errors.Is(err, domainstore.ErrCycle) {
		t.Errorf("self parent: got %v, want ErrCycle", err)
	}
	if err := store.Reparent(ctx, sport.ID, &loc.ID); !errors.Is(err, domainstore.ErrCycle) {
		t.Errorf("child parent: got %v, want ErrCycle", err)
	}
	if err := store.Reparent(ctx, sport.ID, &court.ID); !errors.Is(err, domainstore.ErrCycle) {
		t.Errorf("grandchild parent: got %v, want ErrCycle", err)
	}

	ghost := primitive.NewObjectID()
	if err := store.Reparent(ctx, sport.ID, &ghost); !errors.Is(err, domainstore.ErrParentNotFound) {
		t.Errorf("ghost parent: got %v, want ErrParentNotFound", err)
	}
}

func TestReorder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := domainstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := f.CreateDomain(ctx, "Alpha", "", nil)
	b := f.CreateDomain(ctx, "Bravo", "", nil)
	c := f.CreateDomain(ctx, "Charlie", "", nil)

	if err := store.Reorder(ctx, []primitive.ObjectID{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	roots, err := store.ListByLevel(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Charlie", "Alpha", "Bravo"}
	for i, name := range want {
		if roots[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, roots[i].Name, name)
		}
	}
}

func TestSetActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := domainstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d := f.CreateDomain(ctx, "Sport", "", nil)

	if err := store.SetActive(ctx, d.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("deactivated domain still listed: %v", active)
	}

	if err := store.SetActive(ctx, d.ID, true); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	active, err = store.ListActive(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("reactivated domain missing")
	}
}

func TestDelete_Guards(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := domainstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sport := f.CreateDomain(ctx, "Sport", "", nil)
	loc := f.CreateDomain(ctx, "Location 1", "", &sport)

	if _, err := store.Delete(ctx, sport.ID); !errors.Is(err, domainstore.ErrHasChildren) {
		t.Errorf("delete with children: got %v, want ErrHasChildren", err)
	}

	contact := primitive.NewObjectID()
	f.CreateAssignment(ctx, contact, loc.ID, "")
	if _, err := store.Delete(ctx, loc.ID); !errors.Is(err, domainstore.ErrHasAssignments) {
		t.Errorf("delete with assignments: got %v, want ErrHasAssignments", err)
	}

	// Clear the assignment and the leaf becomes deletable, then its parent.
	if _, err := db.Collection("contact_domain_assignments").DeleteMany(ctx, bson.M{}); err != nil {
		t.Fatalf("clear assignments: %v", err)
	}
	if n, err := store.Delete(ctx, loc.ID); err != nil || n != 1 {
		t.Errorf("delete leaf: got (%d, %v), want (1, nil)", n, err)
	}
	if n, err := store.Delete(ctx, sport.ID); err != nil || n != 1 {
		t.Errorf("delete root: got (%d, %v), want (1, nil)", n, err)
	}

	// Deleting an absent id is zero deletions, no error.
	if n, err := store.Delete(ctx, primitive.NewObjectID()); err != nil || n != 0 {
		t.Errorf("delete absent: got (%d, %v), want (0, nil)", n, err)
	}
}

func TestGetByID_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := domainstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("missing id: got %v, want ErrNoDocuments", err)
	}
}

func TestListByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := domainstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sport := f.CreateDomain(ctx, "Sport", "", nil)
	art := f.CreateDomain(ctx, "Art", "", nil)
	loc := f.CreateDomain(ctx, "Location 1", "", &sport)

	// One query, request order preserved, unknown ids omitted.
	got, err := store.ListByIDs(ctx, []primitive.ObjectID{loc.ID, primitive.NewObjectID(), art.ID})
	if err != nil {
		t.Fatalf("list by ids: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Location 1" || got[1].Name != "Art" {
		t.Errorf("rows: got %+v, want [Location 1, Art]", got)
	}

	empty, err := store.ListByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("empty id set: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty id set rows: got %d, want 0", len(empty))
	}
}
