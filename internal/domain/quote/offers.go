package quote

import (
	"fleetquote/internal/domain/shared/daterange"
)

// eligible reports whether the offer can apply to the booking: the rental
// is long enough and the offer's activation window [ValidFrom, ValidUntil]
// touches the booking interval [Pickup, Dropoff).
func (o ActiveOffer) eligible(dr daterange.DateRange, totalDays int) bool {
	if o.MinimumDays > totalDays {
		return false
	}
	return o.ValidFrom.Before(dr.Dropoff) && !o.ValidUntil.Before(dr.Pickup)
}

// betterOffer is the selection comparator: highest discount wins, ties go
// to the earlier ValidFrom, then to the lower id. Kept explicit so the
// tie-break order stays auditable.
func betterOffer(a, b ActiveOffer) bool {
	if a.DiscountPercent != b.DiscountPercent {
		return a.DiscountPercent > b.DiscountPercent
	}
	if !a.ValidFrom.Equal(b.ValidFrom) {
		return a.ValidFrom.Before(b.ValidFrom)
	}
	return a.ID < b.ID
}

// selectBestOffer picks the single best eligible offer. Offers never
// stack; discounts are mutually exclusive promotions. The second return
// is false when no offer is eligible.
func selectBestOffer(dr daterange.DateRange, totalDays int, offers []ActiveOffer) (ActiveOffer, bool) {
	var best ActiveOffer
	found := false
	for _, offer := range offers {
		if !offer.eligible(dr, totalDays) {
			continue
		}
		if !found || betterOffer(offer, best) {
			best = offer
			found = true
		}
	}
	return best, found
}
