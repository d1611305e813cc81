package quote

import (
	"errors"
	"fmt"
)

// ErrInvalidRange mirrors the daterange sentinel so callers can match it
// without importing both packages.
var ErrInvalidRange = errors.New("quote: dropoff must be after pickup")

// NoRuleError reports a calendar day no pricing rule covers. It indicates
// incomplete rule configuration upstream.
type NoRuleError struct {
	Day MonthDay
}

func (e NoRuleError) Error() string {
	return fmt.Sprintf("quote: no pricing rule matches %s", e.Day)
}

// AmbiguousRuleError reports a calendar day more than one pricing rule
// covers. Overlapping coverage is misconfigured rule data; the calculator
// never silently picks one.
type AmbiguousRuleError struct {
	Day     MonthDay
	RuleIDs []string
}

func (e AmbiguousRuleError) Error() string {
	return fmt.Sprintf("quote: %d pricing rules match %s: %v", len(e.RuleIDs), e.Day, e.RuleIDs)
}

// InvalidQuantityError reports an extra selection with a negative quantity
// or one above the extra's maximum.
type InvalidQuantityError struct {
	ExtraID  string
	Quantity int
	Max      *int
}

func (e InvalidQuantityError) Error() string {
	if e.Max != nil && e.Quantity > *e.Max {
		return fmt.Sprintf("quote: extra %s quantity %d exceeds maximum %d", e.ExtraID, e.Quantity, *e.Max)
	}
	return fmt.Sprintf("quote: extra %s quantity %d is invalid", e.ExtraID, e.Quantity)
}
