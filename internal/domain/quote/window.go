package quote

import (
	"fmt"
	"time"
)

// Season windows recur yearly and are compared on a day-of-year scalar of
// a fixed 366-day calendar, so February 29 has a stable position and a
// window may wrap the year boundary without being split in two.
const anchorYear = 2024 // any leap year works; it only anchors the scalar

// MonthDay is a calendar day without a year, the unit of season matching.
type MonthDay struct {
	Month time.Month
	Day   int
}

func (md MonthDay) String() string {
	return fmt.Sprintf("%s %d", md.Month, md.Day)
}

// MonthDayOf extracts the month/day pair of a concrete date.
func MonthDayOf(t time.Time) MonthDay {
	t = t.UTC()
	return MonthDay{Month: t.Month(), Day: t.Day()}
}

// ordinal maps the month/day pair onto the 1..366 scalar.
func (md MonthDay) ordinal() int {
	return time.Date(anchorYear, md.Month, md.Day, 0, 0, 0, 0, time.UTC).YearDay()
}

func lastDayOfMonth(m time.Month) int {
	return time.Date(anchorYear, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// window is a rule's season normalized to scalar bounds, both inclusive.
type window struct {
	start int
	end   int
}

func (r PricingRule) window() window {
	startDay := 1
	if r.StartDay != nil {
		startDay = *r.StartDay
	}
	endDay := lastDayOfMonth(r.EndMonth)
	if r.EndDay != nil {
		endDay = *r.EndDay
	}
	return window{
		start: MonthDay{Month: r.StartMonth, Day: startDay}.ordinal(),
		end:   MonthDay{Month: r.EndMonth, Day: endDay}.ordinal(),
	}
}

// contains checks cyclic interval membership: a window whose end precedes
// its start wraps the year boundary.
func (w window) contains(ordinal int) bool {
	if w.start <= w.end {
		return ordinal >= w.start && ordinal <= w.end
	}
	return ordinal >= w.start || ordinal <= w.end
}

// Matches reports whether the rule's season covers the given calendar day.
func (r PricingRule) Matches(day MonthDay) bool {
	return r.window().contains(day.ordinal())
}
