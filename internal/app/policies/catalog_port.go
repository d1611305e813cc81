package policies

import (
	"context"
	"errors"

	domainquote "fleetquote/internal/domain/quote"
)

// ErrCatalogNotFound is returned when no pricing catalog exists for a vehicle.
var ErrCatalogNotFound = errors.New("policies: pricing catalog not found")

// CatalogPort loads the pricing catalog configured for one vehicle.
type CatalogPort interface {
	CatalogByVehicle(ctx context.Context, vehicleID string) (domainquote.Catalog, error)
}
