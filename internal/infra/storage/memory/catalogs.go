package memory

import (
	"context"
	"fmt"
	"sync"

	"fleetquote/internal/app/policies"
	domainquote "fleetquote/internal/domain/quote"
)

// CatalogRepository is an in-memory pricing catalog store, used for local
// runs and tests. Catalogs are stored by value so readers never observe a
// partially updated configuration.
type CatalogRepository struct {
	mu    sync.RWMutex
	items map[string]domainquote.Catalog
}

// NewCatalogRepository builds an empty repository.
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{items: make(map[string]domainquote.Catalog)}
}

// CatalogByVehicle returns the catalog or policies.ErrCatalogNotFound.
func (r *CatalogRepository) CatalogByVehicle(ctx context.Context, vehicleID string) (domainquote.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	catalog, ok := r.items[vehicleID]
	if !ok {
		return domainquote.Catalog{}, fmt.Errorf("%w: %s", policies.ErrCatalogNotFound, vehicleID)
	}
	return catalog, nil
}

// Save stores/updates a vehicle catalog entry.
func (r *CatalogRepository) Save(ctx context.Context, catalog domainquote.Catalog) error {
	if catalog.VehicleID == "" {
		return fmt.Errorf("memory: catalog vehicle id is empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[catalog.VehicleID] = catalog
	return nil
}

var _ policies.CatalogPort = (*CatalogRepository)(nil)
