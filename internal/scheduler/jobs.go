package scheduler

import (
	"context"
	"time"
)

const (
	JobRecurringBookings = "recurring_bookings"
	JobStaleOrders       = "stale_orders"
	JobNotifications     = "notification_cleanup"
)

type RecurringMaterializer interface {
	MaterializeAll(ctx context.Context) (int, error)
}

type StaleOrderCanceller interface {
	CancelStale(ctx context.Context, ttl time.Duration) (int, error)
}

type NotificationCleaner interface {
	Cleanup(ctx context.Context, keep time.Duration) (int, error)
}

type Config struct {
	RecurringSpec  string
	StaleOrderSpec string
	StaleOrderTTL  time.Duration

	NotificationSpec      string
	NotificationRetention time.Duration
}

// Register adds the recurring-booking and stale-order jobs, plus the
// notification cleanup when notifications is non-nil.
func (s *Scheduler) Register(cfg Config, recurring RecurringMaterializer, orders StaleOrderCanceller, notifications NotificationCleaner) error {
	if err := s.Add(JobRecurringBookings, cfg.RecurringSpec, recurring.MaterializeAll); err != nil {
		return err
	}
	if err := s.Add(JobStaleOrders, cfg.StaleOrderSpec, func(ctx context.Context) (int, error) {
		return orders.CancelStale(ctx, cfg.StaleOrderTTL)
	}); err != nil {
		return err
	}
	if notifications == nil {
		return nil
	}
	return s.Add(JobNotifications, cfg.NotificationSpec, func(ctx context.Context) (int, error) {
		return notifications.Cleanup(ctx, cfg.NotificationRetention)
	})
}
