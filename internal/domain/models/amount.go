// internal/domain/models/amount.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Amount is a decimal quantity (money, discount) kept as a string in
// storage. JSON input may be a number or a string; stored numbers from
// older documents decode as well.
type Amount string

// Decimal parses a.
func (a Amount) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(string(a)))
}

// UnmarshalJSON accepts 25, 25.5, "25.50" and null. Strings are kept as
// sent so the caller can report a bad value with its own message.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*a = ""
		return nil
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*a = Amount(str)
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*a = Amount(d.String())
	return nil
}

// UnmarshalBSONValue reads strings and any BSON numeric type.
func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*a = ""
	case bsontype.String:
		*a = Amount(rv.StringValue())
	case bsontype.Double:
		*a = Amount(decimal.NewFromFloat(rv.Double()).String())
	case bsontype.Int32:
		*a = Amount(decimal.NewFromInt32(rv.Int32()).String())
	case bsontype.Int64:
		*a = Amount(decimal.NewFromInt(rv.Int64()).String())
	case bsontype.Decimal128:
		*a = Amount(rv.Decimal128().String())
	default:
		return fmt.Errorf("cannot decode %s into an Amount", t)
	}
	return nil
}

// DecimalOf converts a loosely typed value (JSON number, BSON number or
// numeric string) into a decimal.
func DecimalOf(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(n))
	case float64:
		return decimal.NewFromFloat(n), nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case json.Number:
		return decimal.NewFromString(n.String())
	case Amount:
		return n.Decimal()
	case fmt.Stringer:
		return decimal.NewFromString(n.String())
	}
	return decimal.Zero, fmt.Errorf("not a number: %T", v)
}
