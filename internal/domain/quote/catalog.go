package quote

import (
	"time"

	"fleetquote/internal/domain/shared/money"
)

// PricingRule prices rental days falling inside a recurring yearly season.
// The window is defined by month/day boundaries and may wrap the year
// boundary (e.g. December 15 through March 1). A nil StartDay or EndDay
// means the whole-month boundary: first day of StartMonth, last day of
// EndMonth.
type PricingRule struct {
	ID          string
	Name        string
	StartMonth  time.Month
	StartDay    *int
	EndMonth    time.Month
	EndDay      *int
	PricePerDay money.Money
	Tiers       []PriceTier
}

// PriceTier is a volume price break: rentals of at least MinDays total
// length are charged PricePerDay for days matched by the owning rule.
type PriceTier struct {
	MinDays     int
	PricePerDay money.Money
}

// EffectiveRate returns the per-day price for a rental of the given total
// length. Tier selection is by total trip length, applied uniformly to
// every day the rule matches.
func (r PricingRule) EffectiveRate(totalDays int) money.Money {
	rate := r.PricePerDay
	best := -1
	for _, tier := range r.Tiers {
		if tier.MinDays <= totalDays && tier.MinDays > best {
			best = tier.MinDays
			rate = tier.PricePerDay
		}
	}
	return rate
}

// ActiveOffer is a promotional discount supplied by the caller. Offers are
// immutable facts; the calculator never mutates them.
type ActiveOffer struct {
	ID              string
	Name            string
	DiscountPercent float64
	MinimumDays     int
	ValidFrom       time.Time
	ValidUntil      time.Time
}

// Extra is an optional per-day add-on. A nil MaxQuantity means the
// selectable quantity is unbounded.
type Extra struct {
	ID          string
	Name        string
	PricePerDay money.Money
	MaxQuantity *int
}

// ExtraSelection pairs an extra with the quantity the renter picked.
type ExtraSelection struct {
	Extra    Extra
	Quantity int
}

// Catalog is the full pricing configuration of one vehicle.
type Catalog struct {
	VehicleID string
	Currency  string
	Rules     []PricingRule
	Offers    []ActiveOffer
	Extras    []Extra
}

// ExtraByID looks up a catalog extra by id.
func (c Catalog) ExtraByID(id string) (Extra, bool) {
	for _, e := range c.Extras {
		if e.ID == id {
			return e, true
		}
	}
	return Extra{}, false
}
