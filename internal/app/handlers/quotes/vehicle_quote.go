package quotes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetquote/internal/app/dto"
	"fleetquote/internal/app/policies"
	"fleetquote/internal/app/queries"
	domainquote "fleetquote/internal/domain/quote"
	"fleetquote/internal/domain/shared/daterange"
)

const vehicleQuoteKey = "quotes.vehicle"

// ErrUnknownExtra is returned when a selected extra id is not part of the
// vehicle's catalog.
var ErrUnknownExtra = errors.New("quotes: extra not in vehicle catalog")

// ExtraPick references a catalog extra by id together with a quantity.
type ExtraPick struct {
	ExtraID  string
	Quantity int
}

// VehicleQuoteQuery quotes a rental against the stored catalog of one vehicle.
type VehicleQuoteQuery struct {
	VehicleID string
	Pickup    time.Time
	Dropoff   time.Time
	Extras    []ExtraPick
}

func (q VehicleQuoteQuery) Key() string { return vehicleQuoteKey }

type VehicleQuoteHandler struct {
	Catalogs  policies.CatalogPort
	Calc      domainquote.Calculator
	Publisher Publisher
}

func (h *VehicleQuoteHandler) Handle(ctx context.Context, q VehicleQuoteQuery) (dto.PricingInfo, error) {
	if h.Catalogs == nil {
		return dto.PricingInfo{}, policies.ErrCatalogNotFound
	}
	dr, err := daterange.New(q.Pickup, q.Dropoff)
	if err != nil {
		return dto.PricingInfo{}, domainquote.ErrInvalidRange
	}
	catalog, err := h.Catalogs.CatalogByVehicle(ctx, q.VehicleID)
	if err != nil {
		return dto.PricingInfo{}, err
	}

	input := domainquote.QuoteInput{
		Range:  dr,
		Rules:  catalog.Rules,
		Offers: catalog.Offers,
	}
	for _, pick := range q.Extras {
		extra, ok := catalog.ExtraByID(pick.ExtraID)
		if !ok {
			return dto.PricingInfo{}, fmt.Errorf("%w: %s", ErrUnknownExtra, pick.ExtraID)
		}
		input.Extras = append(input.Extras, domainquote.ExtraSelection{Extra: extra, Quantity: pick.Quantity})
	}

	info, err := h.Calc.Quote(input)
	if err != nil {
		return dto.PricingInfo{}, err
	}
	h.Publisher.quoteComputed(ctx, q.VehicleID, dr, info)
	return dto.MapPricingInfo(info), nil
}

var _ queries.Handler[VehicleQuoteQuery, dto.PricingInfo] = (*VehicleQuoteHandler)(nil)
