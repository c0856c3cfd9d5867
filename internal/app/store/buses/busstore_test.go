package busstore_test

import (
	"errors"
	"testing"

	busstore "github.com/dalemusser/waygo/internal/app/store/buses"
	"github.com/dalemusser/waygo/internal/app/system/apperr"
	"github.com/dalemusser/waygo/internal/domain/models"
	"github.com/dalemusser/waygo/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateGetDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := busstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, err := store.Create(ctx, models.Bus{From: "Dhaka", To: "Sylhet", Fields: map[string]any{
		"busName": "Green Line",
		"price":   "450.50",
		"image":   "a.png",
		"date":    "2025-01-01",
	}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if b.ID.IsZero() {
		t.Error("expected an id")
	}

	got, err := store.GetByID(ctx, b.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.From != "Dhaka" || got.To != "Sylhet" {
		t.Errorf("route: got %q -> %q", got.From, got.To)
	}
	for k, want := range map[string]any{"busName": "Green Line", "price": "450.50", "image": "a.png", "date": "2025-01-01"} {
		if got.Field(k) != want {
			t.Errorf("%s: got %v, want %v", k, got.Field(k), want)
		}
	}

	if err := store.Delete(ctx, b.ID.Hex()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, b.ID.Hex()); !errors.Is(err, busstore.ErrBusNotFound) {
		t.Errorf("after delete: expected ErrBusNotFound, got %v", err)
	}
	if err := store.Delete(ctx, b.ID.Hex()); !errors.Is(err, busstore.ErrBusNotFound) {
		t.Errorf("second delete: expected ErrBusNotFound, got %v", err)
	}
}

func TestCreate_NumericPrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := busstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, err := store.Create(ctx, models.Bus{From: "A", To: "B", Fields: map[string]any{"price": float64(500), "seats": float64(40)}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	got, err := store.GetByID(ctx, b.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Field("price") != float64(500) || got.Field("seats") != float64(40) {
		t.Errorf("numeric fields: price=%v seats=%v", got.Field("price"), got.Field("seats"))
	}
}

func TestList_DecodesLegacyDocuments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := busstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Documents written before this service owned the collection.
	_, err := db.Collection("buses").InsertMany(ctx, []any{
		bson.M{"from": "A", "to": "B", "price": 500.0, "seats": int32(30)},
		bson.M{"from": "A", "to": "C", "price": int64(20), "details": bson.M{"ac": true}},
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List: got %d, want 2", len(list))
	}
	found, err := store.FindRoutes(ctx, "A", "B")
	if err != nil || len(found) != 1 {
		t.Fatalf("FindRoutes: got %d, %v", len(found), err)
	}
	if found[0].Field("price") != 500.0 {
		t.Errorf("price: got %v (%T)", found[0].Field("price"), found[0].Field("price"))
	}
}

func TestCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := busstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		in   models.Bus
	}{
		{"missing from", models.Bus{To: "B"}},
		{"missing to", models.Bus{From: "A"}},
		{"blank from", models.Bus{From: "  ", To: "B"}},
		{"bad price", models.Bus{From: "A", To: "B", Fields: map[string]any{"price": "abc"}}},
		{"negative price", models.Bus{From: "A", To: "B", Fields: map[string]any{"price": float64(-1)}}},
		{"non-numeric price", models.Bus{From: "A", To: "B", Fields: map[string]any{"price": true}}},
		{"dotted field", models.Bus{From: "A", To: "B", Fields: map[string]any{"a.b": 1}}},
		{"operator field", models.Bus{From: "A", To: "B", Fields: map[string]any{"$set": 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Create(ctx, tt.in); !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestInvalidID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := busstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, "xyz"); !errors.Is(err, busstore.ErrInvalidID) {
		t.Errorf("GetByID: expected ErrInvalidID, got %v", err)
	}
	if err := store.Delete(ctx, "xyz"); !errors.Is(err, busstore.ErrInvalidID) {
		t.Errorf("Delete: expected ErrInvalidID, got %v", err)
	}
	if _, err := store.GetByID(ctx, primitive.NewObjectID().Hex()); !errors.Is(err, busstore.ErrBusNotFound) {
		t.Errorf("GetByID miss: expected ErrBusNotFound, got %v", err)
	}
}

func TestFindRoutesAndHasRoute(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := busstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateBus(ctx, "A", "B")
	fx.CreateBus(ctx, "A", "C")
	fx.CreateBus(ctx, "C", "B")

	tests := []struct {
		from, to string
		want     int
	}{
		{"A", "B", 1},
		{"A", "", 2},
		{"", "B", 2},
		{"", "", 3},
		{"a", "b", 0},
		{"B", "A", 0},
	}
	for _, tt := range tests {
		got, err := store.FindRoutes(ctx, tt.from, tt.to)
		if err != nil {
			t.Fatalf("FindRoutes(%q,%q) failed: %v", tt.from, tt.to, err)
		}
		if len(got) != tt.want {
			t.Errorf("FindRoutes(%q,%q): got %d, want %d", tt.from, tt.to, len(got), tt.want)
		}
	}

	ok, err := store.HasRoute(ctx, "C", "B")
	if err != nil || !ok {
		t.Errorf("HasRoute(C,B): got %v, %v", ok, err)
	}
	ok, err = store.HasRoute(ctx, "B", "C")
	if err != nil || ok {
		t.Errorf("HasRoute(B,C): got %v, %v", ok, err)
	}
}
