package userstore

import (
	"time"

	"github.com/dalemusser/waygo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

// dynamicDefault computes a default from the document being registered and
// the registration time. Map-valued defaults are functions so every user
// gets its own copy.
type dynamicDefault func(doc bson.M, now time.Time) any

// registrationDefaults maps each optional field to the value stored when the
// registration leaves it empty (absent, null, "" or false).
var registrationDefaults = map[string]any{
	"phone":         "",
	"birthDate":     nil,
	"address":       "",
	"postCode":      "",
	"photoURL":      "",
	"bio":           "",
	"education":     "",
	"occupation":    "",
	"role":          models.DefaultUserRole,
	"status":        models.UserStatusActive,
	"paymentMethod": "none",
	"emailVerified": false,
	"phoneVerified": false,
	"displayName": dynamicDefault(func(doc bson.M, _ time.Time) any {
		return doc["name"]
	}),
	"socialLinks": dynamicDefault(func(bson.M, time.Time) any {
		return bson.M{"facebook": "", "twitter": "", "linkedin": "", "github": "", "portfolio": ""}
	}),
	"notifications": dynamicDefault(func(bson.M, time.Time) any {
		return bson.M{"email": true, "sms": false, "push": true}
	}),
	"lastLogin": dynamicDefault(func(_ bson.M, now time.Time) any {
		return now.Format(time.RFC3339)
	}),
	"lastActive": dynamicDefault(func(_ bson.M, now time.Time) any {
		return now.Format(time.RFC3339)
	}),
}

// applyDefaults fills every empty optional field of doc from
// registrationDefaults and stamps the creation timestamps.
func applyDefaults(doc bson.M, now time.Time) {
	for field, def := range registrationDefaults {
		if !isEmpty(doc[field]) {
			continue
		}
		if fn, ok := def.(dynamicDefault); ok {
			doc[field] = fn(doc, now)
			continue
		}
		doc[field] = def
	}
	doc["createdAt"] = now
	doc["updatedAt"] = now
	doc["timestamp"] = now.UnixMilli()
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	}
	return false
}

// toDoc converts u into a BSON document so fields can be handled uniformly.
func toDoc(u models.User) (bson.M, error) {
	raw, err := bson.Marshal(u)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
