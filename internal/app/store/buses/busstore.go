// internal/app/store/buses/busstore.go
package busstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waygo/internal/app/system/apperr"
	"github.com/dalemusser/waygo/internal/app/system/patch"
	"github.com/dalemusser/waygo/internal/app/system/validators"
	"github.com/dalemusser/waygo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrBusNotFound = apperr.NotFound("Bus not found")
	ErrInvalidID   = apperr.Validation("Invalid bus ID")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("buses")}
}

func parseID(hexID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// List returns every bus.
func (s *Store) List(ctx context.Context) ([]models.Bus, error) {
	return s.find(ctx, bson.M{})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Bus, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find buses: %w", err)
	}
	buses := []models.Bus{}
	if err := cur.All(ctx, &buses); err != nil {
		return nil, fmt.Errorf("decode buses: %w", err)
	}
	return buses, nil
}

// GetByID returns the bus with the given hex id.
func (s *Store) GetByID(ctx context.Context, hexID string) (models.Bus, error) {
	oid, err := parseID(hexID)
	if err != nil {
		return models.Bus{}, err
	}
	var b models.Bus
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Bus{}, ErrBusNotFound
		}
		return models.Bus{}, fmt.Errorf("find bus: %w", err)
	}
	return b, nil
}

// Create inserts a bus. From and To are required and stored as sent. The
// carrier fields are stored as given; a price, when present, must be a
// non-negative number or numeric string.
func (s *Store) Create(ctx context.Context, b models.Bus) (models.Bus, error) {
	if strings.TrimSpace(b.From) == "" || strings.TrimSpace(b.To) == "" {
		return models.Bus{}, apperr.Validation("From and To are required")
	}
	if err := patch.CheckNames(b.Fields, "from", "to", "createdAt"); err != nil {
		return models.Bus{}, err
	}
	if err := CheckPrice(b.Field("price")); err != nil {
		return models.Bus{}, err
	}

	b.ID = primitive.NewObjectID()
	b.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, b); err != nil {
		if validators.Rejected(err) {
			return models.Bus{}, validators.ErrDocumentInvalid
		}
		return models.Bus{}, fmt.Errorf("insert bus: %w", err)
	}
	return b, nil
}

// CheckPrice accepts a missing price or a non-negative number or numeric
// string.
func CheckPrice(v any) error {
	if v == nil {
		return nil
	}
	p, err := models.DecimalOf(v)
	if err != nil || p.IsNegative() {
		return apperr.Validation("Invalid price")
	}
	return nil
}

// Delete removes the bus with the given hex id.
func (s *Store) Delete(ctx context.Context, hexID string) error {
	oid, err := parseID(hexID)
	if err != nil {
		return err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete bus: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrBusNotFound
	}
	return nil
}

func routeFilter(from, to string) bson.M {
	filter := bson.M{}
	if from != "" {
		filter["from"] = from
	}
	if to != "" {
		filter["to"] = to
	}
	return filter
}

// FindRoutes returns buses matching the non-empty terms exactly. Empty terms
// are not filtered on.
func (s *Store) FindRoutes(ctx context.Context, from, to string) ([]models.Bus, error) {
	return s.find(ctx, routeFilter(from, to))
}

// HasRoute reports whether at least one bus runs from -> to.
func (s *Store) HasRoute(ctx context.Context, from, to string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, routeFilter(from, to), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count buses: %w", err)
	}
	return n > 0, nil
}
