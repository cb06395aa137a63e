package admin

import (
	"context"
	"time"

	"fitzone/internal/domain/auth"
	"fitzone/internal/domain/order"
)

type Statistics struct {
	Members        int64                  `json:"members"`
	Trainers       int64                  `json:"trainers"`
	ActiveClasses  int64                  `json:"active_classes"`
	BookingsToday  int64                  `json:"bookings_today"`
	OrdersByStatus map[order.Status]int64 `json:"orders_by_status"`
	Revenue        float64                `json:"revenue"`
}

type Service struct {
	users    UserCounter
	classes  ClassCounter
	bookings BookingCounter
	orders   OrderStats
	now      func() time.Time
}

func NewService(users UserCounter, classes ClassCounter, bookings BookingCounter, orders OrderStats) *Service {
	return &Service{
		users:    users,
		classes:  classes,
		bookings: bookings,
		orders:   orders,
		now:      time.Now,
	}
}

func (s *Service) GetStatistics(ctx context.Context) (*Statistics, error) {
	roles, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	activeClasses, err := s.classes.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	today, err := s.bookings.CountOnDate(ctx, s.now().Format(time.DateOnly))
	if err != nil {
		return nil, err
	}

	orderStats, err := s.orders.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		Members:        roles[auth.RoleMember],
		Trainers:       roles[auth.RoleTrainer],
		ActiveClasses:  activeClasses,
		BookingsToday:  today,
		OrdersByStatus: orderStats.ByStatus,
		Revenue:        orderStats.Revenue,
	}, nil
}
