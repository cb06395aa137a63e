package product

import "errors"

var (
	ErrNotFound          = errors.New("product not found")
	ErrSlugTaken         = errors.New("slug already in use")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrValidation        = errors.New("validation error")
)
