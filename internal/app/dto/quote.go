package dto

import (
	"time"

	domainquote "fleetquote/internal/domain/quote"
	"fleetquote/internal/domain/shared/money"
)

// PricingRule is the wire shape of a seasonal pricing rule.
type PricingRule struct {
	ID               string      `json:"id"`
	Name             string      `json:"name,omitempty"`
	StartMonth       int         `json:"start_month"`
	StartDay         *int        `json:"start_day,omitempty"`
	EndMonth         int         `json:"end_month"`
	EndDay           *int        `json:"end_day,omitempty"`
	PricePerDayCents int64       `json:"price_per_day_cents"`
	Tiers            []PriceTier `json:"tier_pricing,omitempty"`
}

type PriceTier struct {
	MinDays          int   `json:"min_days"`
	PricePerDayCents int64 `json:"price_per_day_cents"`
}

type ActiveOffer struct {
	ID              string    `json:"id"`
	Name            string    `json:"name,omitempty"`
	DiscountPercent float64   `json:"discount_percentage"`
	MinimumDays     int       `json:"minimum_days"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidUntil      time.Time `json:"valid_until"`
}

type Extra struct {
	ID               string `json:"id"`
	Name             string `json:"name,omitempty"`
	PricePerDayCents int64  `json:"price_per_day_cents"`
	MaxQuantity      *int   `json:"max_quantity,omitempty"`
}

// ExtraSelection is an inline extra plus the quantity the renter picked.
type ExtraSelection struct {
	Extra
	Quantity int `json:"quantity"`
}

// VehicleCatalog is the stored pricing configuration of one vehicle.
type VehicleCatalog struct {
	VehicleID string        `json:"vehicle_id"`
	Currency  string        `json:"currency"`
	Rules     []PricingRule `json:"rules"`
	Offers    []ActiveOffer `json:"offers,omitempty"`
	Extras    []Extra       `json:"extras,omitempty"`
}

// ExtraLine is one row of the extras breakdown, in selection order.
type ExtraLine struct {
	ExtraID          string `json:"extra_id"`
	Name             string `json:"name,omitempty"`
	Quantity         int    `json:"quantity"`
	PricePerDayCents int64  `json:"price_per_day_cents"`
	TotalCents       int64  `json:"total_cents"`
}

// PricingInfo is the quote response body.
type PricingInfo struct {
	Days                 int         `json:"days"`
	Currency             string      `json:"currency"`
	BasePriceCents       int64       `json:"base_price_cents"`
	BestDiscountPercent  float64     `json:"best_discount_percentage"`
	TotalDiscountCents   int64       `json:"total_discount_amount_cents"`
	DiscountedPriceCents int64       `json:"discounted_price_cents"`
	AppliedOfferID       string      `json:"applied_offer_id,omitempty"`
	AppliedOfferName     string      `json:"applied_offer_name,omitempty"`
	ExtrasTotalCents     int64       `json:"extras_total_cents,omitempty"`
	ExtrasBreakdown      []ExtraLine `json:"extras_breakdown,omitempty"`
	SubtotalCents        int64       `json:"subtotal_cents"`
	TaxRateBps           int64       `json:"tax_rate_bps"`
	TaxAmountCents       int64       `json:"tax_amount_cents"`
	FinalTotalCents      int64       `json:"final_total_cents"`
}

// MapPricingInfo converts the domain result to its wire shape.
func MapPricingInfo(info domainquote.PricingInfo) PricingInfo {
	out := PricingInfo{
		Days:                 info.Days,
		Currency:             info.Currency,
		BasePriceCents:       info.BasePrice.Amount,
		BestDiscountPercent:  info.BestDiscountPct,
		TotalDiscountCents:   info.DiscountAmount.Amount,
		DiscountedPriceCents: info.DiscountedPrice.Amount,
		AppliedOfferID:       info.AppliedOfferID,
		AppliedOfferName:     info.AppliedOfferName,
		ExtrasTotalCents:     info.ExtrasTotal.Amount,
		SubtotalCents:        info.Subtotal.Amount,
		TaxRateBps:           info.TaxRateBps,
		TaxAmountCents:       info.TaxAmount.Amount,
		FinalTotalCents:      info.FinalTotal.Amount,
	}
	for _, line := range info.Extras {
		out.ExtrasBreakdown = append(out.ExtrasBreakdown, ExtraLine{
			ExtraID:          line.ExtraID,
			Name:             line.Name,
			Quantity:         line.Quantity,
			PricePerDayCents: line.PricePerDay.Amount,
			TotalCents:       line.Total.Amount,
		})
	}
	return out
}

// ToDomain converts a wire rule into its domain value object.
func (r PricingRule) ToDomain(currency string) domainquote.PricingRule {
	rule := domainquote.PricingRule{
		ID:          r.ID,
		Name:        r.Name,
		StartMonth:  time.Month(r.StartMonth),
		StartDay:    r.StartDay,
		EndMonth:    time.Month(r.EndMonth),
		EndDay:      r.EndDay,
		PricePerDay: money.Money{Amount: r.PricePerDayCents, Currency: currency},
	}
	for _, tier := range r.Tiers {
		rule.Tiers = append(rule.Tiers, domainquote.PriceTier{
			MinDays:     tier.MinDays,
			PricePerDay: money.Money{Amount: tier.PricePerDayCents, Currency: currency},
		})
	}
	return rule
}

func (o ActiveOffer) ToDomain() domainquote.ActiveOffer {
	return domainquote.ActiveOffer{
		ID:              o.ID,
		Name:            o.Name,
		DiscountPercent: o.DiscountPercent,
		MinimumDays:     o.MinimumDays,
		ValidFrom:       o.ValidFrom.UTC(),
		ValidUntil:      o.ValidUntil.UTC(),
	}
}

func (e Extra) ToDomain(currency string) domainquote.Extra {
	return domainquote.Extra{
		ID:          e.ID,
		Name:        e.Name,
		PricePerDay: money.Money{Amount: e.PricePerDayCents, Currency: currency},
		MaxQuantity: e.MaxQuantity,
	}
}

// ToDomain converts a stored catalog into domain value objects.
func (c VehicleCatalog) ToDomain() domainquote.Catalog {
	catalog := domainquote.Catalog{
		VehicleID: c.VehicleID,
		Currency:  c.Currency,
	}
	for _, rule := range c.Rules {
		catalog.Rules = append(catalog.Rules, rule.ToDomain(c.Currency))
	}
	for _, offer := range c.Offers {
		catalog.Offers = append(catalog.Offers, offer.ToDomain())
	}
	for _, extra := range c.Extras {
		catalog.Extras = append(catalog.Extras, extra.ToDomain(c.Currency))
	}
	return catalog
}

// MapCatalog converts a domain catalog back to its wire shape.
func MapCatalog(catalog domainquote.Catalog) VehicleCatalog {
	out := VehicleCatalog{
		VehicleID: catalog.VehicleID,
		Currency:  catalog.Currency,
	}
	for _, rule := range catalog.Rules {
		wire := PricingRule{
			ID:               rule.ID,
			Name:             rule.Name,
			StartMonth:       int(rule.StartMonth),
			StartDay:         rule.StartDay,
			EndMonth:         int(rule.EndMonth),
			EndDay:           rule.EndDay,
			PricePerDayCents: rule.PricePerDay.Amount,
		}
		for _, tier := range rule.Tiers {
			wire.Tiers = append(wire.Tiers, PriceTier{MinDays: tier.MinDays, PricePerDayCents: tier.PricePerDay.Amount})
		}
		out.Rules = append(out.Rules, wire)
	}
	for _, offer := range catalog.Offers {
		out.Offers = append(out.Offers, ActiveOffer{
			ID:              offer.ID,
			Name:            offer.Name,
			DiscountPercent: offer.DiscountPercent,
			MinimumDays:     offer.MinimumDays,
			ValidFrom:       offer.ValidFrom,
			ValidUntil:      offer.ValidUntil,
		})
	}
	for _, extra := range catalog.Extras {
		out.Extras = append(out.Extras, Extra{
			ID:               extra.ID,
			Name:             extra.Name,
			PricePerDayCents: extra.PricePerDay.Amount,
			MaxQuantity:      extra.MaxQuantity,
		})
	}
	return out
}
