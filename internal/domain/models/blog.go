// internal/domain/models/blog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a read-only content post. Posts are authored outside this service.
type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Author      string             `bson:"author,omitempty" json:"author,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Content     string             `bson:"content,omitempty" json:"content,omitempty"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	PublishedAt *time.Time         `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
}
