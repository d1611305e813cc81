package kafka

import (
	"context"
	"encoding/json"
	"errors"

	"fleetquote/internal/app/policies"
	"fleetquote/internal/infra/obs"
)

const quoteComputedTopic = "pricing.quote.computed"

// QuotePublisher serializes quote events onto the quote-computed topic.
// The message key is the vehicle id so per-vehicle ordering is preserved;
// anonymous inline quotes fall back to the event id.
type QuotePublisher struct {
	Producer    *Producer
	TopicPrefix string
}

func (p QuotePublisher) PublishQuoteComputed(ctx context.Context, event policies.QuoteComputedEvent) error {
	if p.Producer == nil {
		return errors.New("kafka: producer not configured")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	key := event.VehicleID
	if key == "" {
		key = event.EventID
	}
	headers := map[string]string{"content-type": "application/json"}
	if requestID := obs.RequestIDFromContext(ctx); requestID != "" {
		headers["x-request-id"] = requestID
	}
	return p.Producer.Publish(ctx, p.TopicPrefix+quoteComputedTopic, key, payload, headers)
}

var _ policies.QuotePublisher = QuotePublisher{}
