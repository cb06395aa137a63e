package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"fitzone/internal/domain/classes"
	"fitzone/internal/pkg/events"
	"fitzone/internal/pkg/logger"
	"fitzone/internal/pkg/metrics"
	"fitzone/internal/pkg/pagination"
)

type Service struct {
	bookings BookingRepository
	classes  ClassReader
	events   events.Publisher
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewService(bookings BookingRepository, classes ClassReader, pub events.Publisher, log logrus.FieldLogger) *Service {
	return &Service{
		bookings: bookings,
		classes:  classes,
		events:   events.OrNoop(pub),
		log:      logger.OrDiscard(log),
		now:      time.Now,
	}
}

func (s *Service) today() string {
	return s.now().Format(DateLayout)
}

// CreateBooking books memberID into one occurrence of a class.
func (s *Service) CreateBooking(ctx context.Context, memberID int64, req CreateBookingRequest) (*Booking, error) {
	date, err := parseDate(req.BookingDate)
	if err != nil {
		return nil, ErrValidation
	}

	class, err := s.loadActiveClass(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if date.Weekday() != class.Weekday() {
		return nil, ErrWrongDay
	}

	now := s.now()
	today := now.Format(DateLayout)
	if req.BookingDate < today {
		return nil, ErrPastDate
	}
	if req.BookingDate == today && class.StartTime <= now.Format("15:04") {
		return nil, ErrPastDate
	}

	b := &Booking{
		MemberID:    memberID,
		ClassID:     class.ID,
		TrainerID:   class.TrainerID,
		BookingDate: req.BookingDate,
		StartTime:   class.StartTime,
		EndTime:     class.EndTime,
		Status:      StatusConfirmed,
		Notes:       strings.TrimSpace(req.Notes),
	}
	if err := s.bookings.Reserve(ctx, b, class.Capacity, true); err != nil {
		return nil, err
	}
	b.ClassName = class.Name

	metrics.BookingCreated("member")
	s.publish(ctx, events.BookingCreated, b)
	s.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"member_id":  memberID,
		"class_id":   b.ClassID,
		"date":       b.BookingDate,
	}).Info("booking created")
	return b, nil
}

func (s *Service) ListMine(ctx context.Context, memberID int64, status Status, p pagination.Params) ([]Booking, int64, error) {
	switch status {
	case "", StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
	default:
		return nil, 0, ErrValidation
	}
	return s.bookings.ListByMember(ctx, memberID, status, p)
}

// Cancel is allowed for the booking's member or an admin, and only while
// the booking is confirmed.
func (s *Service) Cancel(ctx context.Context, actor Actor, id int64, reason string) (*Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.MemberID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if b.Status != StatusConfirmed {
		return nil, ErrInvalidStatusTransition
	}

	now := s.now()
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.CancellationReason = strings.TrimSpace(reason)
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, events.BookingCancelled, b)
	return b, nil
}

// UpdateStatus marks attendance. Trainers may only mark bookings for their
// own classes.
func (s *Service) UpdateStatus(ctx context.Context, actor Actor, id int64, status Status) (*Booking, error) {
	if status != StatusCompleted && status != StatusNoShow {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && b.TrainerID != actor.UserID {
		return nil, ErrForbidden
	}
	if b.Status != StatusConfirmed {
		return nil, ErrInvalidStatusTransition
	}

	b.Status = status
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	if b.RecurringBookingID != nil {
		if err := s.bookings.IncrementRecurringCounter(ctx, *b.RecurringBookingID, status); err != nil {
			s.log.WithError(err).WithField("recurring_booking_id", *b.RecurringBookingID).Warn("recurring counter not updated")
		}
	}

	s.publish(ctx, events.BookingStatus, b)
	return b, nil
}

func (s *Service) ListForClass(ctx context.Context, actor Actor, classID int64, date string) ([]Booking, error) {
	if _, err := parseDate(date); err != nil {
		return nil, ErrValidation
	}
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, classes.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && class.TrainerID != actor.UserID {
		return nil, ErrForbidden
	}
	return s.bookings.ListByClassDate(ctx, classID, date)
}

func (s *Service) loadActiveClass(ctx context.Context, id int64) (*classes.FitnessClass, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, classes.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !class.IsActive {
		return nil, ErrClassInactive
	}
	return class, nil
}

func (s *Service) publish(ctx context.Context, eventType string, b *Booking) {
	if err := s.events.Publish(ctx, events.New(eventType, b.MemberID, eventOf(b))); err != nil {
		s.log.WithError(err).WithField("event", eventType).Warn("event not published")
	}
}
