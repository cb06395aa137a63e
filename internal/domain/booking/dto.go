package booking

type CreateBookingRequest struct {
	ClassID     int64  `json:"class_id" binding:"required,gt=0"`
	BookingDate string `json:"booking_date" binding:"required,datetime=2006-01-02"`
	Notes       string `json:"notes" binding:"omitempty,max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required,oneof=completed no-show"`
}

type CreateRecurringRequest struct {
	ClassID   int64     `json:"class_id" binding:"required,gt=0"`
	Frequency Frequency `json:"frequency" binding:"required,oneof=weekly monthly"`
	StartDate string    `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   *string   `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Notes     string    `json:"notes" binding:"omitempty,max=500"`
}

type Actor struct {
	UserID int64
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == "admin" }
func (a Actor) IsStaff() bool { return a.Role == "admin" || a.Role == "trainer" }

// BookingEvent is the websocket/broker payload for booking changes.
type BookingEvent struct {
	BookingID   int64  `json:"booking_id"`
	ClassID     int64  `json:"class_id"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	Status      Status `json:"status"`
}

func eventOf(b *Booking) BookingEvent {
	return BookingEvent{
		BookingID:   b.ID,
		ClassID:     b.ClassID,
		BookingDate: b.BookingDate,
		StartTime:   b.StartTime,
		Status:      b.Status,
	}
}
