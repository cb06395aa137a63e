package admin

import (
	"context"

	"fitzone/internal/domain/auth"
	"fitzone/internal/domain/order"
)

type UserCounter interface {
	CountByRole(ctx context.Context) (map[auth.Role]int64, error)
}

type ClassCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

type BookingCounter interface {
	CountOnDate(ctx context.Context, date string) (int64, error)
}

type OrderStats interface {
	Stats(ctx context.Context) (*order.Stats, error)
}
