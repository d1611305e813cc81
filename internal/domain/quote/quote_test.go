package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetquote/internal/domain/shared/daterange"
	"fleetquote/internal/domain/shared/money"
)

func intPtr(v int) *int { return &v }

func mustRange(t *testing.T, pickup, dropoff time.Time) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(pickup, dropoff)
	require.NoError(t, err)
	return dr
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fullYearRule covers every calendar day with a flat rate.
func fullYearRule(id string, cents int64) PricingRule {
	return PricingRule{
		ID:          id,
		Name:        "all year",
		StartMonth:  time.January,
		EndMonth:    time.December,
		PricePerDay: money.Must(cents, "EUR"),
	}
}

func TestQuoteFlatRuleScenario(t *testing.T) {
	// Flat 50.00/day, Jan 1 - Jan 4 (3 nights), no offers, no extras.
	calc := NewCalculator(0)
	info, err := calc.Quote(QuoteInput{
		Range: mustRange(t, date(2026, time.January, 1), date(2026, time.January, 4)),
		Rules: []PricingRule{fullYearRule("flat", 5000)},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, info.Days)
	assert.Equal(t, int64(15000), info.BasePrice.Amount)
	assert.Equal(t, int64(15000), info.DiscountedPrice.Amount)
	assert.Zero(t, info.BestDiscountPct)
	assert.Empty(t, info.AppliedOfferName)
	assert.Equal(t, int64(15000), info.Subtotal.Amount)
	assert.Equal(t, int64(2850), info.TaxAmount.Amount)
	assert.Equal(t, int64(17850), info.FinalTotal.Amount)
	assert.Equal(t, "EUR", info.Currency)
}

func TestQuoteInvalidRange(t *testing.T) {
	calc := NewCalculator(0)
	_, err := calc.Quote(QuoteInput{
		Range: daterange.DateRange{Pickup: date(2026, time.May, 10), Dropoff: date(2026, time.May, 10)},
		Rules: []PricingRule{fullYearRule("flat", 5000)},
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestQuoteZeroNightRange(t *testing.T) {
	calc := NewCalculator(0)
	_, err := calc.Quote(QuoteInput{
		Range: daterange.DateRange{
			Pickup:  time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC),
			Dropoff: time.Date(2026, time.June, 1, 18, 0, 0, 0, time.UTC),
		},
		Rules: []PricingRule{fullYearRule("flat", 5000)},
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestQuoteNoMatchingRule(t *testing.T) {
	summerOnly := PricingRule{
		ID:          "summer",
		StartMonth:  time.June,
		EndMonth:    time.August,
		PricePerDay: money.Must(7000, "EUR"),
	}
	calc := NewCalculator(0)
	_, err := calc.Quote(QuoteInput{
		Range: mustRange(t, date(2026, time.October, 1), date(2026, time.October, 3)),
		Rules: []PricingRule{summerOnly},
	})
	var noRule NoRuleError
	require.ErrorAs(t, err, &noRule)
	assert.Equal(t, MonthDay{Month: time.October, Day: 1}, noRule.Day)
}

func TestQuoteAmbiguousRules(t *testing.T) {
	calc := NewCalculator(0)
	_, err := calc.Quote(QuoteInput{
		Range: mustRange(t, date(2026, time.July, 10), date(2026, time.July, 12)),
		Rules: []PricingRule{fullYearRule("b-rule", 5000), fullYearRule("a-rule", 6000)},
	})
	var ambiguous AmbiguousRuleError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, MonthDay{Month: time.July, Day: 10}, ambiguous.Day)
	assert.Equal(t, []string{"a-rule", "b-rule"}, ambiguous.RuleIDs)
}

func TestQuoteWrapAroundSeason(t *testing.T) {
	// High season Dec 15 - Mar 1 wraps the year boundary; a February
	// booking must resolve entirely inside it.
	high := PricingRule{
		ID:          "high",
		Name:        "high season",
		StartMonth:  time.December,
		StartDay:    intPtr(15),
		EndMonth:    time.March,
		EndDay:      intPtr(1),
		PricePerDay: money.Must(6500, "EUR"),
	}
	low := PricingRule{
		ID:          "low",
		Name:        "low season",
		StartMonth:  time.March,
		StartDay:    intPtr(2),
		EndMonth:    time.December,
		EndDay:      intPtr(14),
		PricePerDay: money.Must(4500, "EUR"),
	}
	calc := NewCalculator(0)
	info, err := calc.Quote(QuoteInput{
		Range: mustRange(t, date(2026, time.February, 20), date(2026, time.February, 25)),
		Rules: []PricingRule{high, low},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5*6500), info.BasePrice.Amount)
}

func TestQuoteSeasonTransition(t *testing.T) {
	// Booking straddling the Mar 1 / Mar 2 season edge: 2 high days + 3 low days.
	high := PricingRule{
		ID: "high", StartMonth: time.December, StartDay: intPtr(15),
		EndMonth: time.March, EndDay: intPtr(1),
		PricePerDay: money.Must(6500, "EUR"),
	}
	low := PricingRule{
		ID: "low", StartMonth: time.March, StartDay: intPtr(2),
		EndMonth: time.December, EndDay: intPtr(14),
		PricePerDay: money.Must(4500, "EUR"),
	}
	calc := NewCalculator(0)
	info, err := calc.Quote(QuoteInput{
		Range: mustRange(t, date(2026, time.February, 28), date(2026, time.March, 5)),
		Rules: []PricingRule{high, low},
	})
	require.NoError(t, err)
	// Feb 28, Mar 1 at high rate; Mar 2-4 at low rate. 2026 is not a leap year.
	assert.Equal(t, 5, info.Days)
	assert.Equal(t, int64(2*6500+3*4500), info.BasePrice.Amount)
}

func TestQuoteRuleOrderInvariance(t *testing.T) {
	high := PricingRule{
		ID: "high", StartMonth: time.December, StartDay: intPtr(15),
		EndMonth: time.March, EndDay: intPtr(1),
		PricePerDay: money.Must(6500, "EUR"),
	}
	low := PricingRule{
		ID: "low", StartMonth: time.March, StartDay: intPtr(2),
		EndMonth: time.December, EndDay: intPtr(14),
		PricePerDay: money.Must(4500, "EUR"),
	}
	input := QuoteInput{
		Range: mustRange(t, date(2026, time.February, 27), date(2026, time.March, 10)),
	}
	calc := NewCalculator(0)

	input.Rules = []PricingRule{high, low}
	forward, err := calc.Quote(input)
	require.NoError(t, err)

	input.Rules = []PricingRule{low, high}
	backward, err := calc.Quote(input)
	require.NoError(t, err)

	assert.Equal(t, forward, backward)
}

func TestQuoteBestOfferSelection(t *testing.T) {
	offer := func(id string, pct float64, minDays int) ActiveOffer {
		return ActiveOffer{
			ID:              id,
			Name:            id,
			DiscountPercent: pct,
			MinimumDays:     minDays,
			ValidFrom:       date(2026, time.January, 1),
			ValidUntil:      date(2026, time.December, 31),
		}
	}

	tests := []struct {
		name        string
		offers      []ActiveOffer
		wantPct     float64
		wantOfferID string
	}{
		{
			name:        "highest percentage wins",
			offers:      []ActiveOffer{offer("ten", 10, 3), offer("fifteen", 15, 3)},
			wantPct:     15,
			wantOfferID: "fifteen",
		},
		{
			name: "minimum days filters out",
			offers: []ActiveOffer{
				offer("long-stay", 25, 10),
				offer("short-stay", 10, 3),
			},
			wantPct:     10,
			wantOfferID: "short-stay",
		},
		{
			name: "percentage tie broken by earlier valid_from",
			offers: []ActiveOffer{
				{ID: "later", DiscountPercent: 15, MinimumDays: 1, ValidFrom: date(2026, time.March, 1), ValidUntil: date(2026, time.December, 31)},
				{ID: "earlier", DiscountPercent: 15, MinimumDays: 1, ValidFrom: date(2026, time.January, 1), ValidUntil: date(2026, time.December, 31)},
			},
			wantPct:     15,
			wantOfferID: "earlier",
		},
		{
			name: "full tie broken by lowest id",
			offers: []ActiveOffer{
				{ID: "b-offer", DiscountPercent: 15, MinimumDays: 1, ValidFrom: date(2026, time.January, 1), ValidUntil: date(2026, time.December, 31)},
				{ID: "a-offer", DiscountPercent: 15, MinimumDays: 1, ValidFrom: date(2026, time.January, 1), ValidUntil: date(2026, time.December, 31)},
			},
			wantPct:     15,
			wantOfferID: "a-offer",
		},
		{
			name: "expired offer ignored",
			offers: []ActiveOffer{
				{ID: "expired", DiscountPercent: 30, MinimumDays: 1, ValidFrom: date(2025, time.January, 1), ValidUntil: date(2025, time.December, 31)},
			},
			wantPct:     0,
			wantOfferID: "",
		},
	}

	calc := NewCalculator(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 5-night stay, flat 100.00/day.
			info, err := calc.Quote(QuoteInput{
				Range:  mustRange(t, date(2026, time.June, 1), date(2026, time.June, 6)),
				Rules:  []PricingRule{fullYearRule("flat", 10000)},
				Offers: tt.offers,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPct, info.BestDiscountPct)
			assert.Equal(t, tt.wantOfferID, info.AppliedOfferID)
			wantDiscount := info.BasePrice.Percent(tt.wantPct)
			assert.Equal(t, wantDiscount.Amount, info.DiscountAmount.Amount)
			assert.Equal(t, info.BasePrice.Amount-wantDiscount.Amount, info.DiscountedPrice.Amount)
			assert.LessOrEqual(t, info.DiscountedPrice.Amount, info.BasePrice.Amount)
			if tt.wantPct == 0 {
				assert.Equal(t, info.BasePrice.Amount, info.DiscountedPrice.Amount)
			}
		})
	}
}

func TestQuoteTierPricing(t *testing.T) {
	tiered := fullYearRule("tiered", 5000)
	tiered.Tiers = []PriceTier{
		{MinDays: 7, PricePerDay: money.Must(4000, "EUR")},
		{MinDays: 14, PricePerDay: money.Must(3500, "EUR")},
	}
	calc := NewCalculator(0)

	tests := []struct {
		name     string
		days     int
		wantBase int64
	}{
		{"below first tier keeps list rate", 3, 3 * 5000},
		{"first tier unlocked at 7 days", 7, 7 * 4000},
		{"deepest tier at 14 days", 15, 15 * 3500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := calc.Quote(QuoteInput{
				Range: mustRange(t, date(2026, time.May, 1), date(2026, time.May, 1+tt.days)),
				Rules: []PricingRule{tiered},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.days, info.Days)
			assert.Equal(t, tt.wantBase, info.BasePrice.Amount)
		})
	}
}

func TestQuoteExtras(t *testing.T) {
	childSeat := Extra{ID: "child-seat", Name: "Child seat", PricePerDay: money.Must(500, "EUR"), MaxQuantity: intPtr(2)}
	gps := Extra{ID: "gps", Name: "GPS", PricePerDay: money.Must(300, "EUR"), MaxQuantity: intPtr(1)}
	driver := Extra{ID: "extra-driver", Name: "Additional driver", PricePerDay: money.Must(800, "EUR")}

	calc := NewCalculator(0)
	base := QuoteInput{
		Range: mustRange(t, date(2026, time.June, 1), date(2026, time.June, 4)), // 3 days
		Rules: []PricingRule{fullYearRule("flat", 5000)},
	}

	t.Run("breakdown keeps selection order and sums to total", func(t *testing.T) {
		input := base
		input.Extras = []ExtraSelection{
			{Extra: gps, Quantity: 1},
			{Extra: childSeat, Quantity: 2},
			{Extra: driver, Quantity: 1},
		}
		info, err := calc.Quote(input)
		require.NoError(t, err)

		require.Len(t, info.Extras, 3)
		assert.Equal(t, "gps", info.Extras[0].ExtraID)
		assert.Equal(t, "child-seat", info.Extras[1].ExtraID)
		assert.Equal(t, "extra-driver", info.Extras[2].ExtraID)
		assert.Equal(t, int64(3*300), info.Extras[0].Total.Amount)
		assert.Equal(t, int64(3*2*500), info.Extras[1].Total.Amount)
		assert.Equal(t, int64(3*800), info.Extras[2].Total.Amount)

		var sum int64
		for _, line := range info.Extras {
			sum += line.Total.Amount
		}
		assert.Equal(t, sum, info.ExtrasTotal.Amount)
		assert.Equal(t, info.DiscountedPrice.Amount+info.ExtrasTotal.Amount, info.Subtotal.Amount)
	})

	t.Run("quantity above maximum rejected", func(t *testing.T) {
		input := base
		input.Extras = []ExtraSelection{{Extra: childSeat, Quantity: 3}}
		_, err := calc.Quote(input)
		var invalid InvalidQuantityError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "child-seat", invalid.ExtraID)
		assert.Equal(t, 3, invalid.Quantity)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		input := base
		input.Extras = []ExtraSelection{{Extra: driver, Quantity: -1}}
		_, err := calc.Quote(input)
		var invalid InvalidQuantityError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "extra-driver", invalid.ExtraID)
	})

	t.Run("unbounded extra accepts large quantity", func(t *testing.T) {
		input := base
		input.Extras = []ExtraSelection{{Extra: driver, Quantity: 5}}
		info, err := calc.Quote(input)
		require.NoError(t, err)
		assert.Equal(t, int64(3*5*800), info.ExtrasTotal.Amount)
	})
}

func TestQuoteTotalsIdentity(t *testing.T) {
	childSeat := Extra{ID: "child-seat", PricePerDay: money.Must(500, "EUR"), MaxQuantity: intPtr(2)}
	calc := NewCalculator(2100) // non-default rate to exercise configuration
	info, err := calc.Quote(QuoteInput{
		Range: mustRange(t, date(2026, time.June, 1), date(2026, time.June, 8)),
		Rules: []PricingRule{fullYearRule("flat", 4999)},
		Offers: []ActiveOffer{{
			ID: "promo", Name: "Promo", DiscountPercent: 12.5, MinimumDays: 5,
			ValidFrom: date(2026, time.January, 1), ValidUntil: date(2026, time.December, 31),
		}},
		Extras: []ExtraSelection{{Extra: childSeat, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2100), info.TaxRateBps)
	assert.Equal(t, info.BasePrice.Amount-info.DiscountAmount.Amount, info.DiscountedPrice.Amount)
	assert.Equal(t, info.DiscountedPrice.Amount+info.ExtrasTotal.Amount, info.Subtotal.Amount)
	assert.Equal(t, info.Subtotal.Amount+info.TaxAmount.Amount, info.FinalTotal.Amount)
}

func TestQuoteIdempotence(t *testing.T) {
	input := QuoteInput{
		Range: mustRange(t, date(2026, time.June, 1), date(2026, time.June, 6)),
		Rules: []PricingRule{fullYearRule("flat", 5000)},
		Offers: []ActiveOffer{{
			ID: "promo", DiscountPercent: 15, MinimumDays: 3,
			ValidFrom: date(2026, time.January, 1), ValidUntil: date(2026, time.December, 31),
		}},
		Extras: []ExtraSelection{{Extra: Extra{ID: "gps", PricePerDay: money.Must(300, "EUR"), MaxQuantity: intPtr(1)}, Quantity: 1}},
	}
	calc := NewCalculator(0)
	first, err := calc.Quote(input)
	require.NoError(t, err)
	second, err := calc.Quote(input)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQuoteCompleteCoverageNeverErrors(t *testing.T) {
	// Two complementary seasons cover every day of the year; any range
	// inside one year must resolve without configuration errors.
	high := PricingRule{
		ID: "high", StartMonth: time.December, StartDay: intPtr(15),
		EndMonth: time.March, EndDay: intPtr(1),
		PricePerDay: money.Must(6500, "EUR"),
	}
	low := PricingRule{
		ID: "low", StartMonth: time.March, StartDay: intPtr(2),
		EndMonth: time.December, EndDay: intPtr(14),
		PricePerDay: money.Must(4500, "EUR"),
	}
	calc := NewCalculator(0)
	start := date(2026, time.January, 1)
	for offset := 0; offset < 365; offset += 13 {
		pickup := start.AddDate(0, 0, offset)
		_, err := calc.Quote(QuoteInput{
			Range: mustRange(t, pickup, pickup.AddDate(0, 0, 4)),
			Rules: []PricingRule{high, low},
		})
		require.NoError(t, err, "pickup %s", pickup)
	}
}
