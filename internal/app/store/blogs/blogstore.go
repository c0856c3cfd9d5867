// internal/app/store/blogs/blogstore.go
package blogstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/waygo/internal/app/system/apperr"
	"github.com/dalemusser/waygo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrBlogNotFound = apperr.NotFound("Blog not found")
	ErrInvalidID    = apperr.Validation("Invalid blog ID")
)

// Store is read-only. Posts are written by the content team directly.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("blogs")}
}

// List returns posts, most recently published first.
func (s *Store) List(ctx context.Context) ([]models.Blog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "publishedAt", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find blogs: %w", err)
	}
	out := []models.Blog{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, hexID string) (models.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return models.Blog{}, ErrInvalidID
	}
	var b models.Blog
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Blog{}, ErrBlogNotFound
		}
		return models.Blog{}, fmt.Errorf("find blog: %w", err)
	}
	return b, nil
}
