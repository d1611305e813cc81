package quote

import (
	"fleetquote/internal/domain/shared/daterange"
	"fleetquote/internal/domain/shared/money"
)

// DefaultTaxRateBps is the VAT-style rate applied when none is configured,
// expressed in basis points (1900 = 19%).
const DefaultTaxRateBps int64 = 1900

// QuoteInput carries everything one quote needs. All fields are immutable
// value objects owned by the caller; the calculator reads them and writes
// nothing back.
type QuoteInput struct {
	Range  daterange.DateRange
	Rules  []PricingRule
	Offers []ActiveOffer
	Extras []ExtraSelection
}

// PricingInfo is the computed quote breakdown. Monetary fields are exact
// minor-unit amounts; percentage and tax rounding happen once, where each
// derived amount is produced.
type PricingInfo struct {
	Days             int
	Currency         string
	BasePrice        money.Money
	BestDiscountPct  float64
	DiscountAmount   money.Money
	DiscountedPrice  money.Money
	AppliedOfferID   string
	AppliedOfferName string
	ExtrasTotal      money.Money
	Extras           []ExtraLine
	Subtotal         money.Money
	TaxRateBps       int64
	TaxAmount        money.Money
	FinalTotal       money.Money
}

// Calculator computes rental quotes. It holds only configuration, never
// request state, so one instance is safe for concurrent use.
type Calculator struct {
	TaxRateBps int64
}

// NewCalculator returns a calculator with the default tax rate when zero
// is provided.
func NewCalculator(taxRateBps int64) Calculator {
	if taxRateBps <= 0 {
		taxRateBps = DefaultTaxRateBps
	}
	return Calculator{TaxRateBps: taxRateBps}
}

// Quote resolves the date range against the rule set, applies the best
// eligible offer and the selected extras, and assembles the final payable
// total including tax. Pure function: identical inputs always produce an
// identical PricingInfo.
func (c Calculator) Quote(input QuoteInput) (PricingInfo, error) {
	if err := input.Range.Validate(); err != nil {
		return PricingInfo{}, ErrInvalidRange
	}
	totalDays := input.Range.Days()

	base, err := resolveBasePrice(input.Range, input.Rules)
	if err != nil {
		return PricingInfo{}, err
	}

	info := PricingInfo{
		Days:       totalDays,
		Currency:   base.Currency,
		BasePrice:  base,
		TaxRateBps: c.taxRate(),
	}

	discount := money.Zero(base.Currency)
	if best, ok := selectBestOffer(input.Range, totalDays, input.Offers); ok {
		info.BestDiscountPct = best.DiscountPercent
		info.AppliedOfferID = best.ID
		info.AppliedOfferName = best.Name
		discount = base.Percent(best.DiscountPercent)
	}
	info.DiscountAmount = discount
	discounted, err := base.Sub(discount)
	if err != nil {
		return PricingInfo{}, err
	}
	info.DiscountedPrice = discounted

	lines, extrasTotal, err := aggregateExtras(input.Extras, totalDays, base.Currency)
	if err != nil {
		return PricingInfo{}, err
	}
	info.Extras = lines
	info.ExtrasTotal = extrasTotal

	subtotal, err := discounted.Add(extrasTotal)
	if err != nil {
		return PricingInfo{}, err
	}
	info.Subtotal = subtotal
	info.TaxAmount = subtotal.BasisPoints(info.TaxRateBps)
	final, err := subtotal.Add(info.TaxAmount)
	if err != nil {
		return PricingInfo{}, err
	}
	info.FinalTotal = final
	return info, nil
}

func (c Calculator) taxRate() int64 {
	if c.TaxRateBps <= 0 {
		return DefaultTaxRateBps
	}
	return c.TaxRateBps
}
