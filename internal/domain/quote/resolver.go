package quote

import (
	"sort"
	"time"

	"fleetquote/internal/domain/shared/daterange"
	"fleetquote/internal/domain/shared/money"
)

// resolveBasePrice walks every day of the range, matches it against the
// rule set and sums the effective daily rates. Exactly one rule must cover
// each day; zero or multiple matches surface as errors because both mean
// the vehicle's rule configuration is broken upstream.
//
// The result does not depend on the order of rules: matching is checked
// for uniqueness, so reordering can only change which error is reported
// for a misconfigured day, never a successful sum.
func resolveBasePrice(dr daterange.DateRange, rules []PricingRule) (money.Money, error) {
	totalDays := dr.Days()
	var base money.Money
	err := dr.EachDay(func(day time.Time) error {
		md := MonthDayOf(day)
		var matched []PricingRule
		for _, rule := range rules {
			if rule.Matches(md) {
				matched = append(matched, rule)
			}
		}
		switch len(matched) {
		case 0:
			return NoRuleError{Day: md}
		case 1:
		default:
			ids := make([]string, 0, len(matched))
			for _, rule := range matched {
				ids = append(ids, rule.ID)
			}
			sort.Strings(ids)
			return AmbiguousRuleError{Day: md, RuleIDs: ids}
		}
		rate := matched[0].EffectiveRate(totalDays)
		if base.Currency == "" {
			base = money.Zero(rate.Currency)
		}
		sum, err := base.Add(rate)
		if err != nil {
			return err
		}
		base = sum
		return nil
	})
	if err != nil {
		return money.Money{}, err
	}
	return base, nil
}
