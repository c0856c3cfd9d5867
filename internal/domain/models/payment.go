// internal/domain/models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a completed checkout. The gateway itself is external;
// this is the service's own ledger entry.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Amount        Amount             `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency,omitempty" json:"currency,omitempty"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Status        string             `bson:"status,omitempty" json:"status,omitempty"`
	BusID         string             `bson:"busId,omitempty" json:"busId,omitempty"`
	CouponCode    string             `bson:"couponCode,omitempty" json:"couponCode,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
