// internal/app/store/coupons/couponstore.go
package couponstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waygo/internal/app/system/apperr"
	"github.com/dalemusser/waygo/internal/app/system/htmlsanitize"
	"github.com/dalemusser/waygo/internal/app/system/patch"
	"github.com/dalemusser/waygo/internal/app/system/validators"
	"github.com/dalemusser/waygo/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrCouponNotFound = apperr.NotFound("Coupon not found")
	ErrInvalidID      = apperr.Validation("Invalid coupon ID")
	ErrDuplicateCode  = apperr.New(apperr.ErrConflict, "A coupon with this code already exists")
)

var hundred = decimal.NewFromInt(100)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("coupons")}
}

// NormalizeCode upper-cases and trims a coupon code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// validDiscount checks amount and type together and returns the canonical
// decimal string.
func validDiscount(amount, kind string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil || !d.IsPositive() {
		return "", apperr.Validation("Discount must be a positive number")
	}
	switch kind {
	case models.DiscountPercent:
		if d.GreaterThan(hundred) {
			return "", apperr.Validation("Percent discount cannot exceed 100")
		}
	case models.DiscountFlat:
	default:
		return "", apperr.Validation("Discount type must be percent or flat")
	}
	return d.String(), nil
}

func parseID(hexID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

func (s *Store) List(ctx context.Context) ([]models.Coupon, error) {
	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find coupons: %w", err)
	}
	out := []models.Coupon{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode coupons: %w", err)
	}
	return out, nil
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.Coupon, error) {
	var c models.Coupon
	if err := s.c.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Coupon{}, ErrCouponNotFound
		}
		return models.Coupon{}, fmt.Errorf("find coupon: %w", err)
	}
	return c, nil
}

func (s *Store) GetByID(ctx context.Context, hexID string) (models.Coupon, error) {
	oid, err := parseID(hexID)
	if err != nil {
		return models.Coupon{}, err
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// GetByCode looks a coupon up by code, ignoring case.
func (s *Store) GetByCode(ctx context.Context, code string) (models.Coupon, error) {
	return s.findOne(ctx, bson.M{"code": NormalizeCode(code)})
}

// Create inserts a coupon. The unique index on code turns a duplicate into
// ErrDuplicateCode. DiscountType defaults to percent.
func (s *Store) Create(ctx context.Context, c models.Coupon) (models.Coupon, error) {
	c.Code = NormalizeCode(c.Code)
	if c.Code == "" {
		return models.Coupon{}, apperr.Validation("Code is required")
	}
	if c.DiscountType == "" {
		c.DiscountType = models.DiscountPercent
	}
	d, err := validDiscount(string(c.Discount), c.DiscountType)
	if err != nil {
		return models.Coupon{}, err
	}
	c.Discount = models.Amount(d)
	c.Description = htmlsanitize.StripTags(c.Description)

	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Coupon{}, ErrDuplicateCode
		}
		if validators.Rejected(err) {
			return models.Coupon{}, validators.ErrDocumentInvalid
		}
		return models.Coupon{}, fmt.Errorf("insert coupon: %w", err)
	}
	return c, nil
}

// Patch applies a partial update. The code is fixed once created. When the
// discount or its type changes, the resulting pair is validated.
func (s *Store) Patch(ctx context.Context, hexID string, fields map[string]any) (models.Coupon, error) {
	oid, err := parseID(hexID)
	if err != nil {
		return models.Coupon{}, err
	}

	_, hasAmount := fields["discount"]
	_, hasKind := fields["discountType"]
	if hasAmount || hasKind {
		existing, err := s.findOne(ctx, bson.M{"_id": oid})
		if err != nil {
			return models.Coupon{}, err
		}
		amount, kind := string(existing.Discount), existing.DiscountType
		if hasAmount {
			n, err := models.DecimalOf(fields["discount"])
			if err != nil {
				return models.Coupon{}, apperr.Validation("Discount must be a positive number")
			}
			amount = n.String()
		}
		if hasKind {
			kind = fmt.Sprint(fields["discountType"])
		}
		d, err := validDiscount(amount, kind)
		if err != nil {
			return models.Coupon{}, err
		}
		if hasAmount {
			fields["discount"] = d
		}
	}
	if desc, ok := fields["description"].(string); ok {
		fields["description"] = htmlsanitize.StripTags(desc)
	}

	set, err := patch.Set(fields, time.Now().UTC(), "code", "createdAt")
	if err != nil {
		return models.Coupon{}, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Coupon
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Coupon{}, ErrCouponNotFound
		}
		if validators.Rejected(err) {
			return models.Coupon{}, validators.ErrDocumentInvalid
		}
		return models.Coupon{}, fmt.Errorf("patch coupon: %w", err)
	}
	return c, nil
}

func (s *Store) Delete(ctx context.Context, hexID string) error {
	oid, err := parseID(hexID)
	if err != nil {
		return err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete coupon: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrCouponNotFound
	}
	return nil
}
