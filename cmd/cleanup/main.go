// Command cleanup runs the background jobs once, for deployments that keep
// the API scheduler disabled or want a manual pass.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"fitzone/internal/config"
	"fitzone/internal/database"
	"fitzone/internal/domain/booking"
	"fitzone/internal/domain/classes"
	"fitzone/internal/domain/notification"
	"fitzone/internal/domain/order"
	"fitzone/internal/pkg/logger"
	"fitzone/internal/scheduler"
)

func main() {
	staleOrders := flag.Bool("stale-orders", true, "cancel unpaid online orders older than STALE_ORDER_TTL")
	recurring := flag.Bool("recurring", true, "materialise recurring bookings up to RECURRING_HORIZON_DAYS")
	notifications := flag.Bool("notifications", true, "delete read notifications older than NOTIFICATION_RETENTION")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("db connect failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed := false
	if *staleOrders {
		orders := order.NewService(order.NewRepository(db), nil, nil, log)
		_, err := scheduler.Run(ctx, log, scheduler.JobStaleOrders, func(ctx context.Context) (int, error) {
			return orders.CancelStale(ctx, cfg.StaleOrderTTL)
		})
		failed = failed || err != nil
	}
	if *recurring {
		svc := booking.NewRecurringService(booking.NewRepository(db), classes.NewRepository(db), nil, cfg.RecurringHorizonDays, log)
		_, err := scheduler.Run(ctx, log, scheduler.JobRecurringBookings, svc.MaterializeAll)
		failed = failed || err != nil
	}
	if *notifications {
		inbox := notification.NewService(notification.NewRepository(db), log)
		_, err := scheduler.Run(ctx, log, scheduler.JobNotifications, func(ctx context.Context) (int, error) {
			return inbox.Cleanup(ctx, cfg.NotificationRetention)
		})
		failed = failed || err != nil
	}

	if failed {
		os.Exit(1)
	}
}
