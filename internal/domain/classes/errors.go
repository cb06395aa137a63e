package classes

import "errors"

var (
	ErrNotFound        = errors.New("class not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidSchedule = errors.New("invalid schedule")
	ErrInvalidTrainer  = errors.New("trainer not found")
)
