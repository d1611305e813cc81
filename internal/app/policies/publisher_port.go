package policies

import (
	"context"
	"time"
)

// QuoteComputedEvent is emitted after a successful quote so downstream
// consumers (analytics, booking funnels) can observe quoting activity.
type QuoteComputedEvent struct {
	EventID         string    `json:"event_id"`
	VehicleID       string    `json:"vehicle_id,omitempty"`
	Pickup          time.Time `json:"pickup"`
	Dropoff         time.Time `json:"dropoff"`
	Days            int       `json:"days"`
	Currency        string    `json:"currency"`
	FinalTotalCents int64     `json:"final_total_cents"`
	AppliedOfferID  string    `json:"applied_offer_id,omitempty"`
	ComputedAt      time.Time `json:"computed_at"`
}

// QuotePublisher pushes quote events to the message broker. Publishing is
// best effort; quoting never fails because the broker is down.
type QuotePublisher interface {
	PublishQuoteComputed(ctx context.Context, event QuoteComputedEvent) error
}
