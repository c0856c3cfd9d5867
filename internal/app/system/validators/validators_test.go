package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/waygo/internal/app/system/validators"
	"github.com/dalemusser/waygo/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}
	for _, expected := range []string{"users", "buses", "banners", "blogs", "coupons", "payments"} {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func TestEnsureAll_RejectsInvalidDocuments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tests := []struct {
		coll string
		doc  bson.M
	}{
		{"users", bson.M{"name": "no email"}},
		{"users", bson.M{"email": "   "}},
		{"buses", bson.M{"from": "A"}},
		{"coupons", bson.M{"code": "X", "discount": "5", "discountType": "bogo"}},
		{"payments", bson.M{"email": "a@x.com", "amount": "5"}},
	}
	for _, tt := range tests {
		if _, err := db.Collection(tt.coll).InsertOne(ctx, tt.doc); err == nil {
			t.Errorf("%s: expected %v to be rejected", tt.coll, tt.doc)
		}
	}

	if _, err := db.Collection("buses").InsertOne(ctx, bson.M{"from": "A", "to": "B"}); err != nil {
		t.Errorf("valid bus rejected: %v", err)
	}
	if _, err := db.Collection("payments").InsertOne(ctx, bson.M{
		"email": "a@x.com", "amount": "5.00", "transactionId": "tx", "createdAt": time.Now(),
	}); err != nil {
		t.Errorf("valid payment rejected: %v", err)
	}
}
