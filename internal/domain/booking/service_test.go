package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fitzone/internal/database/dbtest"
	"fitzone/internal/domain/classes"
	"fitzone/internal/pkg/dberr"
	"fitzone/internal/pkg/events"
	"fitzone/internal/pkg/pagination"
)

// Monday 2026-03-02 10:00
var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)

type recorder struct {
	got []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.got = append(r.got, e)
	return nil
}

type fixture struct {
	db        *gorm.DB
	repo      *Repository
	classes   *classes.Repository
	svc       *Service
	recurring *RecurringService
	events    *recorder
	class     *classes.FitnessClass
}

func setup(t *testing.T, capacity int) *fixture {
	t.Helper()
	db := dbtest.Open(t, &classes.FitnessClass{}, &Booking{}, &RecurringBooking{})

	classRepo := classes.NewRepository(db)
	class := &classes.FitnessClass{
		Name: "Tuesday HIIT", Category: "hiit", TrainerID: 7, DayOfWeek: 2,
		StartTime: "07:00", EndTime: "08:00", Capacity: capacity, Price: 250, IsActive: true,
	}
	require.NoError(t, classRepo.Create(context.Background(), class))

	repo := NewRepository(db)
	rec := &recorder{}
	svc := NewService(repo, classRepo, rec, nil)
	svc.now = func() time.Time { return fixedNow }
	rsvc := NewRecurringService(repo, classRepo, rec, 14, nil)
	rsvc.now = func() time.Time { return fixedNow }

	return &fixture{db: db, repo: repo, classes: classRepo, svc: svc, recurring: rsvc, events: rec, class: class}
}

func TestDuplicateSlot_RejectedByUniqueIndex(t *testing.T) {
	f := setup(t, 10)
	ctx := context.Background()

	b := Booking{MemberID: 1, ClassID: f.class.ID, TrainerID: 7, BookingDate: "2026-03-03", StartTime: "07:00", EndTime: "08:00", Status: StatusConfirmed}
	require.NoError(t, f.db.WithContext(ctx).Create(&b).Error)

	dup := b
	dup.ID = 0
	err := f.db.WithContext(ctx).Create(&dup).Error
	require.Error(t, err)
	assert.True(t, dberr.IsUniqueViolation(err))
}

func TestCreateBooking_Success(t *testing.T) {
	f := setup(t, 10)

	b, err := f.svc.CreateBooking(context.Background(), 1, CreateBookingRequest{ClassID: f.class.ID, BookingDate: "2026-03-03"})
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, "07:00", b.StartTime)
	assert.Equal(t, "08:00", b.EndTime)
	assert.Equal(t, int64(7), b.TrainerID)
	require.Len(t, f.events.got, 1)
	assert.Equal(t, events.BookingCreated, f.events.got[0].Type)
	assert.Equal(t, int64(1), f.events.got[0].UserID)
}

func TestCreateBooking_DuplicateIsConflict(t *testing.T) {
	f := setup(t, 10)
	ctx := context.Background()
	req := CreateBookingRequest{ClassID: f.class.ID, BookingDate: "2026-03-03"}

	_, err := f.svc.CreateBooking(ctx, 1, req)
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(ctx, 1, req)
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestCreateBooking_ClassFull(t *testing.T) {
	f := setup(t, 1)
	ctx := context.Background()
	req := CreateBookingRequest{ClassID: f.class.ID, BookingDate: "2026-03-03"}

	_, err := f.svc.CreateBooking(ctx, 1, req)
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(ctx, 2, req)
	assert.ErrorIs(t, err, ErrClassFull)

	// the holder retrying still gets the duplicate error
	_, err = f.svc.CreateBooking(ctx, 1, req)
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestCreateBooking_DateRules(t *testing.T) {
	f := setup(t, 10)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, 1, CreateBookingRequest{ClassID: f.class.ID, BookingDate: "2026-03-04"})
	assert.ErrorIs(t, err, ErrWrongDay)

	_, err = f.svc.CreateBooking(ctx, 1, CreateBookingRequest{ClassID: f.class.ID, BookingDate: "2026-02-24"})
	assert.ErrorIs(t, err, ErrPastDate)

	_, err = f.svc.CreateBooking(ctx, 1, CreateBookingRequest{ClassID: 999, BookingDate: "2026-03-03"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancel_ThenRebookReactivates(t *testing.T) {
	f := setup(t, 1)
	ctx := context.Background()
	req := CreateBookingRequest{ClassID: f.class.ID, BookingDate: "2026-03-03"}

	b, err := f.svc.CreateBooking(ctx, 1, req)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, Actor{UserID: 2, Role: "member"}, b.ID, "")
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := f.svc.Cancel(ctx, Actor{UserID: 1, Role: "member"}, b.ID, "sick")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = f.svc.Cancel(ctx, Actor{UserID: 1, Role: "member"}, b.ID, "")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	again, err := f.svc.CreateBooking(ctx, 1, req)
	require.NoError(t, err)
	assert.Equal(t, b.ID, again.ID)
	assert.Equal(t, StatusConfirmed, again.Status)
	assert.Nil(t, again.CancelledAt)

	var count int64
	f.db.Model(&Booking{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateStatus(t *testing.T) {
	f := setup(t, 10)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, 1, CreateBookingRequest{ClassID: f.class.ID, BookingDate: "2026-03-03"})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, Actor{UserID: 8, Role: "trainer"}, b.ID, StatusCompleted)
	assert.ErrorIs(t, err, ErrForbidden)

	done, err := f.svc.UpdateStatus(ctx, Actor{UserID: 7, Role: "trainer"}, b.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)

	_, err = f.svc.UpdateStatus(ctx, Actor{UserID: 7, Role: "trainer"}, b.ID, StatusNoShow)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	_, err = f.svc.Cancel(ctx, Actor{UserID: 1, Role: "member"}, b.ID, "")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestListMineAndForClass(t *testing.T) {
	f := setup(t, 10)
	ctx := context.Background()

	for _, date := range []string{"2026-03-03", "2026-03-10"} {
		_, err := f.svc.CreateBooking(ctx, 1, CreateBookingRequest{ClassID: f.class.ID, BookingDate: date})
		require.NoError(t, err)
	}

	items, total, err := f.svc.ListMine(ctx, 1, "", pagination.New(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "2026-03-10", items[0].BookingDate)
	assert.Equal(t, "Tuesday HIIT", items[0].ClassName)

	_, _, err = f.svc.ListMine(ctx, 1, "bogus", pagination.New(1, 10))
	assert.ErrorIs(t, err, ErrValidation)

	roster, err := f.svc.ListForClass(ctx, Actor{UserID: 7, Role: "trainer"}, f.class.ID, "2026-03-03")
	require.NoError(t, err)
	assert.Len(t, roster, 1)

	_, err = f.svc.ListForClass(ctx, Actor{UserID: 8, Role: "trainer"}, f.class.ID, "2026-03-03")
	assert.ErrorIs(t, err, ErrForbidden)
}
