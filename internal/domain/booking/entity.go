package booking

import "time"

const DateLayout = "2006-01-02"

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no-show"
)

// SlotIndex is the unique index that keeps a member from holding two
// bookings for the same class occurrence.
const SlotIndex = "idx_booking_member_class_slot"

type Booking struct {
	ID                 int64      `gorm:"primaryKey" json:"id"`
	MemberID           int64      `gorm:"not null;uniqueIndex:idx_booking_member_class_slot,priority:1" json:"member_id"`
	ClassID            int64      `gorm:"not null;index;uniqueIndex:idx_booking_member_class_slot,priority:2" json:"class_id"`
	TrainerID          int64      `gorm:"not null;index" json:"trainer_id"`
	BookingDate        string     `gorm:"type:varchar(10);not null;index;uniqueIndex:idx_booking_member_class_slot,priority:3" json:"booking_date"`
	StartTime          string     `gorm:"size:5;not null;uniqueIndex:idx_booking_member_class_slot,priority:4" json:"start_time"`
	EndTime            string     `gorm:"size:5;not null" json:"end_time"`
	Status             Status     `gorm:"size:20;not null;index" json:"status"`
	RecurringBookingID *int64     `gorm:"index" json:"recurring_booking_id,omitempty"`
	Notes              string     `gorm:"type:text" json:"notes,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	ClassName string `gorm:"->;-:migration" json:"class_name,omitempty"`
}

func (Booking) TableName() string { return "bookings" }

type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

type RecurringStatus string

const (
	RecurringActive    RecurringStatus = "active"
	RecurringPaused    RecurringStatus = "paused"
	RecurringCancelled RecurringStatus = "cancelled"
)

// RecurringBooking is a template the scheduler expands into Booking rows.
type RecurringBooking struct {
	ID                int64           `gorm:"primaryKey" json:"id"`
	MemberID          int64           `gorm:"not null;index" json:"member_id"`
	ClassID           int64           `gorm:"not null;index" json:"class_id"`
	TrainerID         int64           `gorm:"not null" json:"trainer_id"`
	Frequency         Frequency       `gorm:"size:10;not null" json:"frequency"`
	DayOfWeek         int             `gorm:"not null" json:"day_of_week"`
	StartDate         string          `gorm:"type:varchar(10);not null" json:"start_date"`
	EndDate           *string         `gorm:"type:varchar(10)" json:"end_date,omitempty"`
	StartTime         string          `gorm:"size:5;not null" json:"start_time"`
	EndTime           string          `gorm:"size:5;not null" json:"end_time"`
	Status            RecurringStatus `gorm:"size:20;not null;index" json:"status"`
	TotalSessions     int             `gorm:"not null;default:0" json:"total_sessions"`
	CompletedSessions int             `gorm:"not null;default:0" json:"completed_sessions"`
	MissedSessions    int             `gorm:"not null;default:0" json:"missed_sessions"`
	LastGeneratedDate string          `gorm:"type:varchar(10)" json:"last_generated_date,omitempty"`
	Notes             string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (RecurringBooking) TableName() string { return "recurring_bookings" }
