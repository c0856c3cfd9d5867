// internal/app/policy/routepolicy/routepolicy.go
package routepolicy

import (
	"context"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/dalemusser/waygo/internal/app/system/apperr"
	"github.com/dalemusser/waygo/internal/domain/models"
)

var (
	// ErrSameLocation is returned when from and to name the same place.
	ErrSameLocation = apperr.New(apperr.ErrInvalidQuery, "From and To locations can't be the same")
	// ErrNoRoutes is returned when nothing matches, or when the reverse
	// direction exists and reverse blocking is on.
	ErrNoRoutes = apperr.NotFound("No buses available for the selected route")
)

// RouteFinder is the store surface the search needs.
type RouteFinder interface {
	FindRoutes(ctx context.Context, from, to string) ([]models.Bus, error)
	HasRoute(ctx context.Context, from, to string) (bool, error)
}

// Query holds the search terms. Empty means not supplied.
type Query struct {
	From string
	To   string
}

// Options controls the search.
type Options struct {
	// ReverseBlock answers "not found" for a from/to pair whenever the
	// opposite direction is also served.
	ReverseBlock bool
}

// Search applies the route policy:
//   - from and to equal ignoring case: ErrSameLocation, store not consulted
//   - exact match on the supplied terms as sent (no trimming), ANDed
//   - no matches: ErrNoRoutes
//   - both terms supplied, reverse blocking on, reverse route exists: ErrNoRoutes
//
// Store errors are returned unchanged.
func Search(ctx context.Context, finder RouteFinder, q Query, opts Options) ([]models.Bus, error) {
	from, to := q.From, q.To

	if from != "" && to != "" && text.Fold(from) == text.Fold(to) {
		return nil, ErrSameLocation
	}

	buses, err := finder.FindRoutes(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(buses) == 0 {
		return nil, ErrNoRoutes
	}

	if opts.ReverseBlock && from != "" && to != "" {
		reverse, err := finder.HasRoute(ctx, to, from)
		if err != nil {
			return nil, err
		}
		if reverse {
			return nil, ErrNoRoutes
		}
	}
	return buses, nil
}
