package inputval

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dalemusser/waygo/internal/app/system/apperr"
)

type registerInput struct {
	Email string `json:"email" validate:"required"`
	Name  string `json:"name" validate:"required"`
	UID   string `json:"uid" validate:"required"`
	Bio   string `json:"bio"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		in         registerInput
		wantFields []string
	}{
		{"complete", registerInput{Email: "a@b.c", Name: "A", UID: "u1"}, nil},
		{"missing uid", registerInput{Email: "a@b.c", Name: "A"}, []string{"uid"}},
		{"missing all", registerInput{Bio: "x"}, []string{"email", "name", "uid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("Struct() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if got := Fields(err); !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("Fields() = %v, want %v", got, tt.wantFields)
			}
		})
	}
}

func TestFields_NonValidationError(t *testing.T) {
	if got := Fields(errors.New("boom")); got != nil {
		t.Errorf("Fields() = %v, want nil", got)
	}
}
