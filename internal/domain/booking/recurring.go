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
)

const DefaultHorizonDays = 14

type RecurringService struct {
	bookings BookingRepository
	classes  ClassReader
	events   events.Publisher
	log      logrus.FieldLogger
	horizon  int
	now      func() time.Time
}

func NewRecurringService(bookings BookingRepository, classes ClassReader, pub events.Publisher, horizonDays int, log logrus.FieldLogger) *RecurringService {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &RecurringService{
		bookings: bookings,
		classes:  classes,
		events:   events.OrNoop(pub),
		log:      logger.OrDiscard(log),
		horizon:  horizonDays,
		now:      time.Now,
	}
}

// Create registers a template and materialises its first sessions. A start
// date that is not on the class weekday moves forward to the next one.
func (s *RecurringService) Create(ctx context.Context, memberID int64, req CreateRecurringRequest) (*RecurringBooking, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrValidation
	}

	class, err := s.classes.GetByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, classes.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !class.IsActive {
		return nil, ErrClassInactive
	}

	today := dateOnly(s.now())
	if start.Before(today) {
		return nil, ErrPastDate
	}
	start = NextWeekday(start, class.Weekday())

	var endDate *string
	if req.EndDate != nil && *req.EndDate != "" {
		end, err := parseDate(*req.EndDate)
		if err != nil || end.Before(start) {
			return nil, ErrValidation
		}
		v := end.Format(DateLayout)
		endDate = &v
	}

	exists, err := s.bookings.HasActiveRecurring(ctx, memberID, class.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRecurring
	}

	rb := &RecurringBooking{
		MemberID:  memberID,
		ClassID:   class.ID,
		TrainerID: class.TrainerID,
		Frequency: req.Frequency,
		DayOfWeek: class.DayOfWeek,
		StartDate: start.Format(DateLayout),
		EndDate:   endDate,
		StartTime: class.StartTime,
		EndTime:   class.EndTime,
		Status:    RecurringActive,
		Notes:     strings.TrimSpace(req.Notes),
	}
	if err := s.bookings.CreateRecurring(ctx, rb); err != nil {
		return nil, err
	}

	if _, err := s.materializeOne(ctx, rb, class); err != nil {
		s.log.WithError(err).WithField("recurring_booking_id", rb.ID).Warn("initial materialisation failed")
	}
	return rb, nil
}

func (s *RecurringService) ListMine(ctx context.Context, memberID int64) ([]RecurringBooking, error) {
	return s.bookings.ListRecurringByMember(ctx, memberID)
}

func (s *RecurringService) Pause(ctx context.Context, actor Actor, id int64) (*RecurringBooking, error) {
	return s.transition(ctx, actor, id, RecurringActive, RecurringPaused)
}

func (s *RecurringService) Resume(ctx context.Context, actor Actor, id int64) (*RecurringBooking, error) {
	rb, err := s.transition(ctx, actor, id, RecurringPaused, RecurringActive)
	if err != nil {
		return nil, err
	}
	if class, err := s.classes.GetByID(ctx, rb.ClassID); err == nil && class.IsActive {
		if _, err := s.materializeOne(ctx, rb, class); err != nil {
			s.log.WithError(err).WithField("recurring_booking_id", rb.ID).Warn("materialisation after resume failed")
		}
	}
	return rb, nil
}

// Cancel ends the template and cancels the confirmed sessions it created
// from today on.
func (s *RecurringService) Cancel(ctx context.Context, actor Actor, id int64) (*RecurringBooking, error) {
	rb, err := s.bookings.GetRecurring(ctx, id)
	if err != nil {
		return nil, err
	}
	if rb.MemberID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if rb.Status == RecurringCancelled {
		return nil, ErrInvalidStatusTransition
	}

	rb.Status = RecurringCancelled
	if err := s.bookings.SetRecurringStatus(ctx, rb.ID, rb.Status); err != nil {
		return nil, err
	}

	cancelled, err := s.bookings.CancelFutureFromTemplate(ctx, rb.ID, s.now().Format(DateLayout), "recurring booking cancelled")
	if err != nil {
		return nil, err
	}
	for i := range cancelled {
		if err := s.events.Publish(ctx, events.New(events.BookingCancelled, cancelled[i].MemberID, eventOf(&cancelled[i]))); err != nil {
			s.log.WithError(err).Warn("event not published")
		}
	}
	s.log.WithFields(logrus.Fields{"recurring_booking_id": rb.ID, "cancelled_sessions": len(cancelled)}).Info("recurring booking cancelled")
	return rb, nil
}

func (s *RecurringService) transition(ctx context.Context, actor Actor, id int64, from, to RecurringStatus) (*RecurringBooking, error) {
	rb, err := s.bookings.GetRecurring(ctx, id)
	if err != nil {
		return nil, err
	}
	if rb.MemberID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if rb.Status != from {
		return nil, ErrInvalidStatusTransition
	}
	rb.Status = to
	if err := s.bookings.SetRecurringStatus(ctx, rb.ID, to); err != nil {
		return nil, err
	}
	return rb, nil
}

// MaterializeAll expands every active template up to the horizon. It is
// safe to run repeatedly: slots that already exist are skipped.
func (s *RecurringService) MaterializeAll(ctx context.Context) (int, error) {
	templates, err := s.bookings.ListActiveRecurring(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range templates {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		rb := &templates[i]

		class, err := s.classes.GetByID(ctx, rb.ClassID)
		if err != nil {
			s.log.WithError(err).WithField("recurring_booking_id", rb.ID).Warn("class lookup failed")
			continue
		}
		if !class.IsActive {
			continue
		}

		n, err := s.materializeOne(ctx, rb, class)
		if err != nil {
			s.log.WithError(err).WithField("recurring_booking_id", rb.ID).Warn("materialisation failed")
			continue
		}
		created += n
	}
	return created, nil
}

func (s *RecurringService) materializeOne(ctx context.Context, rb *RecurringBooking, class *classes.FitnessClass) (int, error) {
	anchor, err := parseDate(rb.StartDate)
	if err != nil {
		return 0, err
	}

	today := dateOnly(s.now())
	from := today
	if rb.LastGeneratedDate != "" {
		if last, err := parseDate(rb.LastGeneratedDate); err == nil && !last.Before(from) {
			from = last.AddDate(0, 0, 1)
		}
	}
	to := today.AddDate(0, 0, s.horizon)
	if rb.EndDate != nil {
		if end, err := parseDate(*rb.EndDate); err == nil && end.Before(to) {
			to = end
		}
	}

	nowClock := s.now().Format("15:04")
	created := 0
	var firstFull time.Time
	for _, day := range Occurrences(rb.Frequency, anchor, from, to) {
		date := day.Format(DateLayout)
		if date == today.Format(DateLayout) && class.StartTime <= nowClock {
			continue
		}

		id := rb.ID
		b := &Booking{
			MemberID:           rb.MemberID,
			ClassID:            rb.ClassID,
			TrainerID:          class.TrainerID,
			BookingDate:        date,
			StartTime:          class.StartTime,
			EndTime:            class.EndTime,
			Status:             StatusConfirmed,
			RecurringBookingID: &id,
			Notes:              rb.Notes,
		}
		err := s.bookings.Reserve(ctx, b, class.Capacity, false)
		switch {
		case errors.Is(err, ErrDuplicateBooking):
			continue
		case errors.Is(err, ErrClassFull):
			if firstFull.IsZero() {
				firstFull = day
			}
			continue
		case err != nil:
			return created, err
		}

		created++
		metrics.BookingCreated("recurring")
		if err := s.events.Publish(ctx, events.New(events.BookingCreated, b.MemberID, eventOf(b))); err != nil {
			s.log.WithError(err).Warn("event not published")
		}
	}

	if to.Before(from) {
		return created, nil
	}
	// full days are retried on the next run
	if !firstFull.IsZero() {
		to = firstFull.AddDate(0, 0, -1)
	}
	through := to.Format(DateLayout)
	if err := s.bookings.MarkGenerated(ctx, rb.ID, created, through); err != nil {
		return created, err
	}
	rb.TotalSessions += created
	rb.LastGeneratedDate = through
	return created, nil
}
