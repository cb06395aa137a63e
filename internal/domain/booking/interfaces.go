package booking

import (
	"context"

	"fitzone/internal/domain/classes"
	"fitzone/internal/pkg/pagination"
)

type BookingRepository interface {
	Reserve(ctx context.Context, b *Booking, capacity int, reactivateCancelled bool) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	Update(ctx context.Context, b *Booking) error
	ListByMember(ctx context.Context, memberID int64, status Status, p pagination.Params) ([]Booking, int64, error)
	ListByClassDate(ctx context.Context, classID int64, date string) ([]Booking, error)

	CreateRecurring(ctx context.Context, rb *RecurringBooking) error
	GetRecurring(ctx context.Context, id int64) (*RecurringBooking, error)
	SetRecurringStatus(ctx context.Context, id int64, status RecurringStatus) error
	MarkGenerated(ctx context.Context, id int64, created int, through string) error
	HasActiveRecurring(ctx context.Context, memberID, classID int64) (bool, error)
	ListRecurringByMember(ctx context.Context, memberID int64) ([]RecurringBooking, error)
	ListActiveRecurring(ctx context.Context) ([]RecurringBooking, error)
	IncrementRecurringCounter(ctx context.Context, id int64, status Status) error
	CancelFutureFromTemplate(ctx context.Context, templateID int64, fromDate, reason string) ([]Booking, error)
}

type ClassReader interface {
	GetByID(ctx context.Context, id int64) (*classes.FitnessClass, error)
}
