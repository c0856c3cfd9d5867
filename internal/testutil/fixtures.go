package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waygo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures inserts test documents directly, bypassing store logic.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures for db.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given identity and returns it.
func (f *Fixtures) CreateUser(ctx context.Context, uid, email, displayName string) models.User {
	f.t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	u := models.User{
		ID:          primitive.NewObjectID(),
		UID:         uid,
		Email:       email,
		Name:        displayName,
		DisplayName: displayName,
		Phone:       "555-0100",
		Bio:         "fixture",
		Role:        models.DefaultUserRole,
		Status:      models.UserStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateBus inserts a route from -> to and returns it.
func (f *Fixtures) CreateBus(ctx context.Context, from, to string) models.Bus {
	f.t.Helper()

	b := models.Bus{
		ID:        primitive.NewObjectID(),
		From:      from,
		To:        to,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Fields:    map[string]any{"busName": from + " Express"},
	}
	if _, err := f.db.Collection("buses").InsertOne(ctx, b); err != nil {
		f.t.Fatalf("failed to create test bus: %v", err)
	}
	return b
}
