package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: dropoff must be after pickup")
)

// DateRange represents a half-open rental interval [Pickup, Dropoff).
type DateRange struct {
	Pickup  time.Time
	Dropoff time.Time
}

func New(pickup, dropoff time.Time) (DateRange, error) {
	dr := DateRange{Pickup: pickup.UTC(), Dropoff: dropoff.UTC()}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.Pickup.IsZero() || dr.Dropoff.IsZero() {
		return ErrInvalidRange
	}
	if !dr.Dropoff.After(dr.Pickup) {
		return ErrInvalidRange
	}
	// Same-calendar-day ranges cover zero nights and cannot be priced.
	if dr.Days() < 1 {
		return ErrInvalidRange
	}
	return nil
}

// Days returns the number of rental days (nights) covered by the range.
func (dr DateRange) Days() int {
	from := truncateToDay(dr.Pickup)
	to := truncateToDay(dr.Dropoff)
	return int(to.Sub(from).Hours() / 24)
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.Pickup.Before(other.Dropoff) && other.Pickup.Before(dr.Dropoff)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = t.UTC()
	return (t.Equal(dr.Pickup) || t.After(dr.Pickup)) && t.Before(dr.Dropoff)
}

// EachDay walks every calendar day of the range in order, pickup day first,
// dropoff day excluded. The walk restarts from the beginning on every call.
func (dr DateRange) EachDay(fn func(day time.Time) error) error {
	if err := dr.Validate(); err != nil {
		return err
	}
	from := truncateToDay(dr.Pickup)
	to := truncateToDay(dr.Dropoff)
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		if err := fn(day); err != nil {
			return err
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
