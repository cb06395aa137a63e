package payment

import "errors"

var (
	ErrDisabled         = errors.New("payments are not configured")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrGateway          = errors.New("payment gateway error")
	ErrTxNotFound       = errors.New("payment transaction not found")
)
