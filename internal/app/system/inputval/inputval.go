// Package inputval validates decoded request bodies using struct tags.
package inputval

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/waygo/internal/app/system/apperr"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON names so messages match what the client sent.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Struct validates v. On failure it returns an apperr.ErrValidation whose
// message lists the offending fields, e.g. "invalid fields: email, uid".
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation(err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return apperr.Validation("invalid fields: " + strings.Join(fields, ", "))
}

// Fields returns the names of the fields that failed validation in err, or
// nil when err did not come from Struct.
func Fields(err error) []string {
	var e *apperr.Error
	if !errors.As(err, &e) {
		return nil
	}
	rest, ok := strings.CutPrefix(e.Msg, "invalid fields: ")
	if !ok {
		return nil
	}
	return strings.Split(rest, ", ")
}
