package quotes

import (
	"context"
	"time"

	"fleetquote/internal/app/dto"
	"fleetquote/internal/app/queries"
	domainquote "fleetquote/internal/domain/quote"
	"fleetquote/internal/domain/shared/daterange"
)

const computeQuoteKey = "quotes.compute"

// ComputeQuoteQuery quotes a rental against a catalog supplied inline in
// the request. Rules, offers and extras arrive already schema-validated;
// the handler only maps them into domain values and runs the calculator.
type ComputeQuoteQuery struct {
	Pickup   time.Time
	Dropoff  time.Time
	Currency string
	Rules    []dto.PricingRule
	Offers   []dto.ActiveOffer
	Extras   []dto.ExtraSelection
}

func (q ComputeQuoteQuery) Key() string { return computeQuoteKey }

type ComputeQuoteHandler struct {
	Calc      domainquote.Calculator
	Publisher Publisher
	// DefaultCurrency is applied when the request carries no currency.
	DefaultCurrency string
}

func (h *ComputeQuoteHandler) Handle(ctx context.Context, q ComputeQuoteQuery) (dto.PricingInfo, error) {
	dr, err := daterange.New(q.Pickup, q.Dropoff)
	if err != nil {
		return dto.PricingInfo{}, domainquote.ErrInvalidRange
	}

	currency := q.Currency
	if currency == "" {
		currency = h.DefaultCurrency
	}
	if currency == "" {
		currency = "EUR"
	}
	input := domainquote.QuoteInput{Range: dr}
	for _, rule := range q.Rules {
		input.Rules = append(input.Rules, rule.ToDomain(currency))
	}
	for _, offer := range q.Offers {
		input.Offers = append(input.Offers, offer.ToDomain())
	}
	for _, sel := range q.Extras {
		input.Extras = append(input.Extras, domainquote.ExtraSelection{
			Extra:    sel.Extra.ToDomain(currency),
			Quantity: sel.Quantity,
		})
	}

	info, err := h.Calc.Quote(input)
	if err != nil {
		return dto.PricingInfo{}, err
	}
	h.Publisher.quoteComputed(ctx, "", dr, info)
	return dto.MapPricingInfo(info), nil
}

var _ queries.Handler[ComputeQuoteQuery, dto.PricingInfo] = (*ComputeQuoteHandler)(nil)
