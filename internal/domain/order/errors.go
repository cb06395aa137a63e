package order

import "errors"

var (
	ErrNotFound                = errors.New("order not found")
	ErrForbidden               = errors.New("forbidden")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrProductUnavailable      = errors.New("product unavailable")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrNotCancellable          = errors.New("order can no longer be cancelled")
	ErrPaymentNotExpected      = errors.New("order does not await online payment")
)

// StockError names the product that ran short.
type StockError struct {
	ProductID int64
	Name      string
	Available int
}

func (e *StockError) Error() string { return "insufficient stock for " + e.Name }

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
