// internal/domain/models/coupon.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon discount types.
const (
	DiscountPercent = "percent"
	DiscountFlat    = "flat"
)

// Coupon is a discount code. Code is stored upper-case and is unique.
type Coupon struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Code         string             `bson:"code" json:"code"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Discount     Amount             `bson:"discount" json:"discount"`
	DiscountType string             `bson:"discountType" json:"discountType"`
	ExpiresAt    *time.Time         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
