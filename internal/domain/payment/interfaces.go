package payment

import (
	"context"
	"time"

	"fitzone/internal/domain/order"
)

type transactionRepo interface {
	Create(ctx context.Context, t *Transaction) error
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Transaction, error)
	MarkFailed(ctx context.Context, gatewayOrderID, rawBody, reason string) error
	MarkPaidIdempotent(ctx context.Context, gatewayOrderID, paymentID, rawBody string, paidAt time.Time) (bool, error)
}

type orderPayments interface {
	Get(ctx context.Context, actor order.Actor, id int64) (*order.Order, error)
	AttachGatewayOrder(ctx context.Context, userID, orderID int64, gatewayOrderID string) (*order.Order, error)
	MarkPaid(ctx context.Context, gatewayOrderID, paymentID string) (*order.Order, bool, error)
	MarkPaymentFailed(ctx context.Context, gatewayOrderID string) (*order.Order, error)
}
