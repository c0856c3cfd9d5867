// internal/domain/models/user.go
package models

import (
	"encoding/json"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a platform account. Identity comes from the external auth
// provider (UID); Email is unique in practice and enforced by an index.
//
// Field names are camelCase in both BSON and JSON so documents written by
// earlier deployments of the service decode unchanged.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UID   string             `bson:"uid,omitempty" json:"uid,omitempty"`
	Email string             `bson:"email" json:"email"`

	Name          string            `bson:"name,omitempty" json:"name,omitempty"`
	DisplayName   string            `bson:"displayName,omitempty" json:"displayName,omitempty"`
	Phone         string            `bson:"phone" json:"phone"`
	BirthDate     *string           `bson:"birthDate" json:"birthDate"`
	Address       string            `bson:"address" json:"address"`
	PostCode      string            `bson:"postCode" json:"postCode"`
	PhotoURL      string            `bson:"photoURL" json:"photoURL"`
	Bio           string            `bson:"bio" json:"bio"`
	Education     string            `bson:"education" json:"education"`
	Occupation    string            `bson:"occupation" json:"occupation"`
	PaymentMethod string            `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	SocialLinks   map[string]string `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	Notifications map[string]bool   `bson:"notifications,omitempty" json:"notifications,omitempty"`

	Role          string `bson:"role,omitempty" json:"role,omitempty"`     // student | admin | ...
	Status        string `bson:"status,omitempty" json:"status,omitempty"` // active | Requested | ...
	EmailVerified bool   `bson:"emailVerified" json:"emailVerified"`
	PhoneVerified bool   `bson:"phoneVerified" json:"phoneVerified"`
	LastLogin     string `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	LastActive    string `bson:"lastActive,omitempty" json:"lastActive,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
	Timestamp int64     `bson:"timestamp,omitempty" json:"timestamp,omitempty"` // epoch millis

	// Extra holds fields outside the model, kept so a client's full record
	// round-trips through the collection.
	Extra map[string]any `bson:",inline" json:"-"`
}

var userJSONFields = jsonFieldNames(reflect.TypeOf(User{}))

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return marshalWithExtra(plain(u), u.Extra)
}

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, userJSONFields)
	if err != nil {
		return err
	}
	p.Extra = extra
	*u = User(p)
	return nil
}

// User status values with special meaning.
const (
	UserStatusActive    = "active"
	UserStatusRequested = "Requested"
)

// DefaultUserRole is assigned at registration when none is supplied.
const DefaultUserRole = "student"
