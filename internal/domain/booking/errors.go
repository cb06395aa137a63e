package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("not_found")
	ErrForbidden               = errors.New("forbidden")
	ErrClassFull               = errors.New("class is full")
	ErrDuplicateBooking        = errors.New("already booked for this class slot")
	ErrPastDate                = errors.New("booking date is in the past")
	ErrWrongDay                = errors.New("class does not run on that day")
	ErrClassInactive           = errors.New("class is not active")
	ErrInvalidStatusTransition = errors.New("invalid_status_transition")
	ErrDuplicateRecurring      = errors.New("an active recurring booking already exists for this class")
)
