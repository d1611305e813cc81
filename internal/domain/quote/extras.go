package quote

import (
	"fleetquote/internal/domain/shared/money"
)

// ExtraLine is one priced row of the extras breakdown.
type ExtraLine struct {
	ExtraID     string
	Name        string
	Quantity    int
	PricePerDay money.Money
	Total       money.Money
}

// aggregateExtras validates quantities and prices every selected extra for
// the whole rental. The breakdown keeps the order extras were supplied in,
// stable for display. Zero-quantity selections are kept as zero-total
// lines for the same reason.
func aggregateExtras(selections []ExtraSelection, totalDays int, currency string) ([]ExtraLine, money.Money, error) {
	total := money.Zero(currency)
	if len(selections) == 0 {
		return nil, total, nil
	}
	lines := make([]ExtraLine, 0, len(selections))
	for _, sel := range selections {
		if sel.Quantity < 0 {
			return nil, money.Money{}, InvalidQuantityError{ExtraID: sel.Extra.ID, Quantity: sel.Quantity, Max: sel.Extra.MaxQuantity}
		}
		if sel.Extra.MaxQuantity != nil && sel.Quantity > *sel.Extra.MaxQuantity {
			return nil, money.Money{}, InvalidQuantityError{ExtraID: sel.Extra.ID, Quantity: sel.Quantity, Max: sel.Extra.MaxQuantity}
		}
		lineTotal := sel.Extra.PricePerDay.Multiply(int64(sel.Quantity) * int64(totalDays))
		lines = append(lines, ExtraLine{
			ExtraID:     sel.Extra.ID,
			Name:        sel.Extra.Name,
			Quantity:    sel.Quantity,
			PricePerDay: sel.Extra.PricePerDay,
			Total:       lineTotal,
		})
		sum, err := total.Add(lineTotal)
		if err != nil {
			return nil, money.Money{}, err
		}
		total = sum
	}
	return lines, total, nil
}
