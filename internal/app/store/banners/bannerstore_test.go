package bannerstore_test

import (
	"errors"
	"strings"
	"testing"

	bannerstore "github.com/dalemusser/waygo/internal/app/store/banners"
	"github.com/dalemusser/waygo/internal/app/system/apperr"
	"github.com/dalemusser/waygo/internal/app/system/validators"
	"github.com/dalemusser/waygo/internal/domain/models"
	"github.com/dalemusser/waygo/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBannerLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bannerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, err := store.Create(ctx, models.Banner{
		Title:       "<b>Summer</b> sale",
		Description: `<p>Cheap seats</p><script>alert(1)</script>`,
		Active:      true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if b.Title != "Summer sale" {
		t.Errorf("Title: got %q", b.Title)
	}
	if strings.Contains(b.Description, "script") {
		t.Errorf("Description not sanitized: %q", b.Description)
	}

	list, err := store.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List: got %d, %v", len(list), err)
	}

	patched, err := store.Patch(ctx, b.ID.Hex(), map[string]any{"subtitle": "<i>now</i>", "active": false})
	if err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
	if patched.Subtitle != "now" || patched.Active {
		t.Errorf("Patch result: %+v", patched)
	}
	if patched.Title != "Summer sale" {
		t.Errorf("Patch changed title: %q", patched.Title)
	}

	replaced, err := store.Replace(ctx, b.ID.Hex(), models.Banner{Title: "Winter"})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if replaced.Subtitle != "" || replaced.Title != "Winter" {
		t.Errorf("Replace result: %+v", replaced)
	}
	if replaced.CreatedAt.IsZero() {
		t.Error("Replace lost createdAt")
	}

	if err := store.Delete(ctx, b.ID.Hex()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, b.ID.Hex()); !errors.Is(err, bannerstore.ErrBannerNotFound) {
		t.Errorf("after delete: expected ErrBannerNotFound, got %v", err)
	}
}

func TestBannerErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bannerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	missing := primitive.NewObjectID().Hex()

	if _, err := store.Create(ctx, models.Banner{Title: "<p></p>"}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("Create empty title: got %v", err)
	}
	if _, err := store.GetByID(ctx, "nope"); !errors.Is(err, bannerstore.ErrInvalidID) {
		t.Errorf("GetByID bad id: got %v", err)
	}
	if _, err := store.Patch(ctx, missing, map[string]any{"title": "x"}); !errors.Is(err, bannerstore.ErrBannerNotFound) {
		t.Errorf("Patch missing: got %v", err)
	}
	if _, err := store.Patch(ctx, missing, map[string]any{"_id": "x"}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("Patch _id: got %v", err)
	}
	if _, err := store.Replace(ctx, missing, models.Banner{Title: "x"}); !errors.Is(err, bannerstore.ErrBannerNotFound) {
		t.Errorf("Replace missing: got %v", err)
	}
	if err := store.Delete(ctx, missing); !errors.Is(err, bannerstore.ErrBannerNotFound) {
		t.Errorf("Delete missing: got %v", err)
	}
}

func TestPatch_SchemaViolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	store := bannerstore.New(db)

	b, err := store.Create(ctx, models.Banner{Title: "Eid"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err = store.Patch(ctx, b.ID.Hex(), map[string]any{"active": "yes"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if apperr.Status(err) != 400 {
		t.Errorf("status: got %d", apperr.Status(err))
	}
}
