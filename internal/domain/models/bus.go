// internal/domain/models/bus.go
package models

import (
	"encoding/json"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bus is a scheduled route. From and To are free text and matched exactly
// by the route filter. Every other carrier field (busName, operator,
// departureTime, price, seats, images, ...) lives in Fields and is stored
// and returned as the client sent it.
type Bus struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	From      string             `bson:"from" json:"from"`
	To        string             `bson:"to" json:"to"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`

	Fields map[string]any `bson:",inline" json:"-"`
}

var busJSONFields = jsonFieldNames(reflect.TypeOf(Bus{}))

// Field returns a carrier field, or nil when it is not set.
func (b Bus) Field(name string) any {
	return b.Fields[name]
}

func (b Bus) MarshalJSON() ([]byte, error) {
	type plain Bus
	return marshalWithExtra(plain(b), b.Fields)
}

func (b *Bus) UnmarshalJSON(data []byte) error {
	type plain Bus
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	fields, err := splitExtra(data, busJSONFields)
	if err != nil {
		return err
	}
	p.Fields = fields
	*b = Bus(p)
	return nil
}
