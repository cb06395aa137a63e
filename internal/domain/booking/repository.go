package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitzone/internal/pkg/dberr"
	"fitzone/internal/pkg/pagination"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Reserve inserts b after checking class capacity for the date. The class
// row is locked for the duration so concurrent reservations are counted
// one at a time. When reactivateCancelled is set, a cancelled booking in
// the same slot is revived instead of inserting a new row.
func (r *Repository) Reserve(ctx context.Context, b *Booking, capacity int, reactivateCancelled bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var classID int64
		if err := tx.Table("fitness_classes").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", b.ClassID).
			Take(&classID).Error; err != nil {
			return err
		}

		var taken int64
		if err := tx.Model(&Booking{}).
			Where("class_id = ? AND booking_date = ? AND status <> ?", b.ClassID, b.BookingDate, StatusCancelled).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken >= int64(capacity) {
			var mine int64
			if err := tx.Model(&Booking{}).
				Where("member_id = ? AND class_id = ? AND booking_date = ? AND start_time = ? AND status <> ?",
					b.MemberID, b.ClassID, b.BookingDate, b.StartTime, StatusCancelled).
				Count(&mine).Error; err != nil {
				return err
			}
			if mine > 0 {
				return ErrDuplicateBooking
			}
			return ErrClassFull
		}

		if reactivateCancelled {
			var prev Booking
			err := tx.Where("member_id = ? AND class_id = ? AND booking_date = ? AND start_time = ? AND status = ?",
				b.MemberID, b.ClassID, b.BookingDate, b.StartTime, StatusCancelled).
				Take(&prev).Error
			if err == nil {
				prev.Status = StatusConfirmed
				prev.EndTime = b.EndTime
				prev.TrainerID = b.TrainerID
				prev.Notes = b.Notes
				prev.CancelledAt = nil
				prev.CancellationReason = ""
				if err := tx.Save(&prev).Error; err != nil {
					return err
				}
				*b = prev
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		return tx.Create(b).Error
	})

	if dberr.IsUniqueViolation(err, SlotIndex) {
		return ErrDuplicateBooking
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	var b Booking
	if err := r.withClassName(ctx).Where("bookings.id = ?", id).Take(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repository) Update(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *Repository) ListByMember(ctx context.Context, memberID int64, status Status, p pagination.Params) ([]Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&Booking{}).Where("member_id = ?", memberID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Booking
	err := r.withClassName(ctx).
		Where("bookings.member_id = ?", memberID).
		Scopes(func(db *gorm.DB) *gorm.DB {
			if status != "" {
				return db.Where("bookings.status = ?", status)
			}
			return db
		}).
		Order("bookings.booking_date DESC, bookings.start_time DESC, bookings.id DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&out).Error
	return out, total, err
}

func (r *Repository) ListByClassDate(ctx context.Context, classID int64, date string) ([]Booking, error) {
	var out []Booking
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND booking_date = ?", classID, date).
		Order("status ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *Repository) CountOnDate(ctx context.Context, date string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Where("booking_date = ? AND status <> ?", date, StatusCancelled).
		Count(&n).Error
	return n, err
}

func (r *Repository) withClassName(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Select("bookings.*, fitness_classes.name AS class_name").
		Joins("LEFT JOIN fitness_classes ON fitness_classes.id = bookings.class_id")
}

func (r *Repository) CreateRecurring(ctx context.Context, rb *RecurringBooking) error {
	return r.db.WithContext(ctx).Create(rb).Error
}

func (r *Repository) GetRecurring(ctx context.Context, id int64) (*RecurringBooking, error) {
	var rb RecurringBooking
	if err := r.db.WithContext(ctx).First(&rb, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rb, nil
}

// SetRecurringStatus touches only the status column so counters updated
// concurrently by attendance marking are preserved.
func (r *Repository) SetRecurringStatus(ctx context.Context, id int64, status RecurringStatus) error {
	return r.db.WithContext(ctx).Model(&RecurringBooking{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
}

// MarkGenerated adds created to total_sessions and records the last date
// covered by materialisation.
func (r *Repository) MarkGenerated(ctx context.Context, id int64, created int, through string) error {
	return r.db.WithContext(ctx).Model(&RecurringBooking{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_sessions":      gorm.Expr("total_sessions + ?", created),
			"last_generated_date": through,
			"updated_at":          time.Now(),
		}).Error
}

func (r *Repository) HasActiveRecurring(ctx context.Context, memberID, classID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&RecurringBooking{}).
		Where("member_id = ? AND class_id = ? AND status <> ?", memberID, classID, RecurringCancelled).
		Count(&n).Error
	return n > 0, err
}

func (r *Repository) ListRecurringByMember(ctx context.Context, memberID int64) ([]RecurringBooking, error) {
	var out []RecurringBooking
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *Repository) ListActiveRecurring(ctx context.Context) ([]RecurringBooking, error) {
	var out []RecurringBooking
	err := r.db.WithContext(ctx).
		Where("status = ?", RecurringActive).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *Repository) IncrementRecurringCounter(ctx context.Context, id int64, status Status) error {
	column := ""
	switch status {
	case StatusCompleted:
		column = "completed_sessions"
	case StatusNoShow:
		column = "missed_sessions"
	default:
		return nil
	}
	return r.db.WithContext(ctx).Model(&RecurringBooking{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

// CancelFutureFromTemplate cancels confirmed bookings generated by the
// template on or after fromDate and returns them as cancelled.
func (r *Repository) CancelFutureFromTemplate(ctx context.Context, templateID int64, fromDate, reason string) ([]Booking, error) {
	var out []Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recurring_booking_id = ? AND booking_date >= ? AND status = ?", templateID, fromDate, StatusConfirmed).
			Order("booking_date").
			Find(&out).Error; err != nil {
			return err
		}
		if len(out) == 0 {
			return nil
		}

		ids := make([]int64, len(out))
		for i := range out {
			ids[i] = out[i].ID
		}
		now := time.Now()
		if err := tx.Model(&Booking{}).
			Where("id IN ? AND status = ?", ids, StatusConfirmed).
			Updates(map[string]any{
				"status":              StatusCancelled,
				"cancelled_at":        now,
				"cancellation_reason": reason,
				"updated_at":          now,
			}).Error; err != nil {
			return err
		}
		for i := range out {
			out[i].Status = StatusCancelled
			out[i].CancelledAt = &now
			out[i].CancellationReason = reason
			out[i].UpdatedAt = now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
