package patch

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/waygo/internal/app/system/apperr"
)

func TestSet(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	set, err := Set(map[string]any{"phone": "1", "socialLinks.github": "ann"}, now)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if set["phone"] != "1" || set["socialLinks.github"] != "ann" {
		t.Errorf("fields not copied: %v", set)
	}
	if set["updatedAt"] != now {
		t.Errorf("updatedAt: got %v", set["updatedAt"])
	}
}

func TestSet_Rejects(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		fields map[string]any
		deny   []string
	}{
		{"empty", map[string]any{}, nil},
		{"empty key", map[string]any{"": 1}, nil},
		{"id", map[string]any{"_id": "x"}, nil},
		{"id path", map[string]any{"_id.x": "x"}, nil},
		{"operator", map[string]any{"$set": "x"}, nil},
		{"nested operator", map[string]any{"a.$b": "x"}, nil},
		{"empty segment", map[string]any{"a..b": "x"}, nil},
		{"denied", map[string]any{"createdAt": "x"}, []string{"createdAt"}},
		{"denied path", map[string]any{"code.x": "x"}, []string{"code"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Set(tt.fields, now, tt.deny...)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCheckNames(t *testing.T) {
	if err := CheckNames(nil); err != nil {
		t.Errorf("nil doc: %v", err)
	}
	if err := CheckNames(map[string]any{"gender": "f", "prefs": map[string]any{"a.b": 1}}); err != nil {
		t.Errorf("plain names: %v", err)
	}

	for _, doc := range []map[string]any{
		{"": 1},
		{"_id": "x"},
		{"a.b": 1},
		{"$where": "1"},
		{"createdAt": "x"},
	} {
		if err := CheckNames(doc, "createdAt"); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("%v: expected validation error, got %v", doc, err)
		}
	}
}
