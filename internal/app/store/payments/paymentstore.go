// internal/app/store/payments/paymentstore.go
package paymentstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waygo/internal/app/system/apperr"
	"github.com/dalemusser/waygo/internal/app/system/validators"
	"github.com/dalemusser/waygo/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultCurrency = "usd"
	StatusSucceeded = "succeeded"
)

var ErrDuplicateTransaction = apperr.New(apperr.ErrConflict, "Payment already recorded")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("payments")}
}

// ParseAmount parses a money amount and requires it to be positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, apperr.Validation("Amount must be a positive number")
	}
	return d, nil
}

// List returns every payment, newest first.
func (s *Store) List(ctx context.Context) ([]models.Payment, error) {
	return s.find(ctx, bson.M{})
}

// ListByEmail returns the payments made by email, newest first.
func (s *Store) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return s.find(ctx, bson.M{"email": email})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}
	out := []models.Payment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return out, nil
}

// Create records a payment. The amount is stored in canonical decimal form
// with two places. A transaction id is generated when none is given.
func (s *Store) Create(ctx context.Context, p models.Payment) (models.Payment, error) {
	p.Email = strings.TrimSpace(p.Email)
	if p.Email == "" {
		return models.Payment{}, apperr.Validation("Email is required")
	}
	amount, err := ParseAmount(string(p.Amount))
	if err != nil {
		return models.Payment{}, err
	}
	p.Amount = models.Amount(amount.StringFixed(2))
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	p.Currency = strings.ToLower(p.Currency)
	if p.Status == "" {
		p.Status = StatusSucceeded
	}
	if p.TransactionID == "" {
		p.TransactionID = uuid.NewString()
	}
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Payment{}, ErrDuplicateTransaction
		}
		if validators.Rejected(err) {
			return models.Payment{}, validators.ErrDocumentInvalid
		}
		return models.Payment{}, fmt.Errorf("insert payment: %w", err)
	}
	return p, nil
}
