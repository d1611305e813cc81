package quotes

import (
	"context"

	"fleetquote/internal/app/dto"
	"fleetquote/internal/app/policies"
	"fleetquote/internal/app/queries"
)

const getCatalogKey = "quotes.catalog"

// GetCatalogQuery reads back the stored pricing catalog of one vehicle.
type GetCatalogQuery struct {
	VehicleID string
}

func (q GetCatalogQuery) Key() string { return getCatalogKey }

type GetCatalogHandler struct {
	Catalogs policies.CatalogPort
}

func (h *GetCatalogHandler) Handle(ctx context.Context, q GetCatalogQuery) (dto.VehicleCatalog, error) {
	if h.Catalogs == nil {
		return dto.VehicleCatalog{}, policies.ErrCatalogNotFound
	}
	catalog, err := h.Catalogs.CatalogByVehicle(ctx, q.VehicleID)
	if err != nil {
		return dto.VehicleCatalog{}, err
	}
	return dto.MapCatalog(catalog), nil
}

var _ queries.Handler[GetCatalogQuery, dto.VehicleCatalog] = (*GetCatalogHandler)(nil)
