package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"fitzone/internal/pkg/events"
	"fitzone/internal/pkg/logger"
	"fitzone/internal/pkg/pagination"
)

type Service struct {
	repo *Repository
	log  logrus.FieldLogger
	now  func() time.Time
}

func NewService(repo *Repository, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, log: logger.OrDiscard(log), now: time.Now}
}

// Publish stores an inbox entry for e. Events with no inbox text are
// ignored.
func (s *Service) Publish(ctx context.Context, e events.Event) error {
	if e.UserID <= 0 {
		return nil
	}
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return err
	}
	title, body, ok := render(e.Type, gjson.ParseBytes(data))
	if !ok {
		return nil
	}
	return s.repo.Create(ctx, &Notification{
		UserID:    e.UserID,
		Type:      e.Type,
		Title:     title,
		Body:      body,
		Data:      data,
		CreatedAt: e.OccurredAt,
	})
}

func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool, p pagination.Params) ([]Notification, int64, error) {
	items, total, err := s.repo.List(ctx, userID, unreadOnly, p)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []Notification{}
	}
	return items, total, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkAsRead(ctx, id, userID, s.now())
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, userID, s.now())
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	return s.repo.Delete(ctx, id, userID)
}

// Cleanup drops read notifications older than keep.
func (s *Service) Cleanup(ctx context.Context, keep time.Duration) (int, error) {
	n, err := s.repo.DeleteReadBefore(ctx, s.now().Add(-keep))
	return int(n), err
}

func render(eventType string, p gjson.Result) (title, body string, ok bool) {
	slot := fmt.Sprintf("%s at %s", p.Get("booking_date").String(), p.Get("start_time").String())
	number := p.Get("order_number").String()

	switch eventType {
	case events.BookingCreated:
		return "Class booked", "Your class on " + slot + " is booked.", true
	case events.BookingCancelled:
		return "Booking cancelled", "Your booking on " + slot + " was cancelled.", true
	case events.BookingStatus:
		switch p.Get("status").String() {
		case "completed":
			return "Class completed", "Nice work! Your class on " + slot + " is marked completed.", true
		case "no-show":
			return "Missed class", "You were marked absent for the class on " + slot + ".", true
		}
	case events.OrderCreated:
		return "Order placed", fmt.Sprintf("Order %s for ₹%.2f has been placed.", number, p.Get("total").Float()), true
	case events.OrderStatus:
		status := p.Get("status").String()
		return "Order " + status, fmt.Sprintf("Order %s is now %s.", number, status), true
	case events.PaymentStatus:
		switch p.Get("payment_status").String() {
		case "paid":
			return "Payment received", "We received your payment for order " + number + ".", true
		case "failed":
			return "Payment failed", "Payment for order " + number + " did not go through. You can retry from your orders page.", true
		case "refunded":
			return "Refund initiated", "A refund for order " + number + " has been initiated.", true
		}
	}
	return "", "", false
}
