// internal/app/store/banners/bannerstore.go
package bannerstore

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
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrBannerNotFound = apperr.NotFound("Banner not found")
	ErrInvalidID      = apperr.Validation("Invalid banner ID")
	ErrTitleRequired  = apperr.Validation("Title is required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("banners")}
}

func parseID(hexID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// clean strips markup from the short fields and sanitizes the description.
func clean(b *models.Banner) {
	b.Title = htmlsanitize.StripTags(b.Title)
	b.Subtitle = htmlsanitize.StripTags(b.Subtitle)
	b.Link = strings.TrimSpace(b.Link)
	b.Image = strings.TrimSpace(b.Image)
	b.Description = htmlsanitize.Sanitize(b.Description)
}

// cleanFields applies the same rules to a partial update.
func cleanFields(fields map[string]any) {
	for k, v := range fields {
		s, ok := v.(string)
		if !ok {
			continue
		}
		switch k {
		case "title", "subtitle":
			fields[k] = htmlsanitize.StripTags(s)
		case "description":
			fields[k] = htmlsanitize.Sanitize(s)
		case "link", "image":
			fields[k] = strings.TrimSpace(s)
		}
	}
}

// List returns banners, newest first.
func (s *Store) List(ctx context.Context) ([]models.Banner, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find banners: %w", err)
	}
	out := []models.Banner{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode banners: %w", err)
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, hexID string) (models.Banner, error) {
	oid, err := parseID(hexID)
	if err != nil {
		return models.Banner{}, err
	}
	var b models.Banner
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Banner{}, ErrBannerNotFound
		}
		return models.Banner{}, fmt.Errorf("find banner: %w", err)
	}
	return b, nil
}

func (s *Store) Create(ctx context.Context, b models.Banner) (models.Banner, error) {
	clean(&b)
	if b.Title == "" {
		return models.Banner{}, ErrTitleRequired
	}
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	b.CreatedAt = now
	b.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, b); err != nil {
		if validators.Rejected(err) {
			return models.Banner{}, validators.ErrDocumentInvalid
		}
		return models.Banner{}, fmt.Errorf("insert banner: %w", err)
	}
	return b, nil
}

// Patch applies a partial update and returns the updated banner.
func (s *Store) Patch(ctx context.Context, hexID string, fields map[string]any) (models.Banner, error) {
	oid, err := parseID(hexID)
	if err != nil {
		return models.Banner{}, err
	}
	cleanFields(fields)
	if t, ok := fields["title"]; ok && t == "" {
		return models.Banner{}, ErrTitleRequired
	}
	set, err := patch.Set(fields, time.Now().UTC(), "createdAt")
	if err != nil {
		return models.Banner{}, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Banner
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Banner{}, ErrBannerNotFound
		}
		if validators.Rejected(err) {
			return models.Banner{}, validators.ErrDocumentInvalid
		}
		return models.Banner{}, fmt.Errorf("patch banner: %w", err)
	}
	return b, nil
}

// Replace overwrites every field except _id and createdAt.
func (s *Store) Replace(ctx context.Context, hexID string, b models.Banner) (models.Banner, error) {
	oid, err := parseID(hexID)
	if err != nil {
		return models.Banner{}, err
	}
	clean(&b)
	if b.Title == "" {
		return models.Banner{}, ErrTitleRequired
	}

	existing, err := s.GetByID(ctx, hexID)
	if err != nil {
		return models.Banner{}, err
	}
	b.ID = oid
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = time.Now().UTC()

	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": oid}, b)
	if err != nil {
		if validators.Rejected(err) {
			return models.Banner{}, validators.ErrDocumentInvalid
		}
		return models.Banner{}, fmt.Errorf("replace banner: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.Banner{}, ErrBannerNotFound
	}
	return b, nil
}

func (s *Store) Delete(ctx context.Context, hexID string) error {
	oid, err := parseID(hexID)
	if err != nil {
		return err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrBannerNotFound
	}
	return nil
}
