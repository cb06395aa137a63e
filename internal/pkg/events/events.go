package events

import (
	"context"
	"time"
)

const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"
	BookingStatus    = "booking.status"
	OrderCreated     = "order.created"
	OrderStatus      = "order.status"
	PaymentStatus    = "payment.status"
)

// Event is pushed to the user's websocket connections and published to the
// message broker under Type as routing key.
type Event struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

func New(eventType string, userID int64, payload any) Event {
	return Event{
		Type:       eventType,
		UserID:     userID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to every publisher and returns the first error.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var first error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OrNoop returns p, or a publisher that drops events when p is nil.
func OrNoop(p Publisher) Publisher {
	if p == nil {
		return Noop{}
	}
	return p
}
