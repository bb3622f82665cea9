package ports

import (
	"context"

	"afalstore/internal/core/domain/model/courier"
)

// CityMappingStore resolves our city names to courier partner city codes.
// Read-only; lookups are exact.
type CityMappingStore interface {
	// Lookup returns the mapping for (courierType, cityName).
	// A missing mapping yields an error unwrapping to errs.ErrObjectNotFound.
	Lookup(ctx context.Context, courierType courier.Type, cityName string) (courier.CityMapping, error)
}
