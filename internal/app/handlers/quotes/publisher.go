package quotes

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fleetquote/internal/app/policies"
	domainquote "fleetquote/internal/domain/quote"
	"fleetquote/internal/domain/shared/daterange"
)

// Publisher emits quote-computed events when a sink is configured.
// Quoting itself stays pure; a broker failure is logged and swallowed.
type Publisher struct {
	Sink   policies.QuotePublisher
	Logger *slog.Logger
	Now    func() time.Time
}

func (p Publisher) quoteComputed(ctx context.Context, vehicleID string, dr daterange.DateRange, info domainquote.PricingInfo) {
	if p.Sink == nil {
		return
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	event := policies.QuoteComputedEvent{
		EventID:         uuid.NewString(),
		VehicleID:       vehicleID,
		Pickup:          dr.Pickup,
		Dropoff:         dr.Dropoff,
		Days:            info.Days,
		Currency:        info.Currency,
		FinalTotalCents: info.FinalTotal.Amount,
		AppliedOfferID:  info.AppliedOfferID,
		ComputedAt:      now().UTC(),
	}
	if err := p.Sink.PublishQuoteComputed(ctx, event); err != nil && p.Logger != nil {
		p.Logger.Warn("quote event publish failed", "vehicle_id", vehicleID, "error", err)
	}
}
