package payment

import "time"

type TransactionStatus string

const (
	TxCreated TransactionStatus = "created"
	TxPaid    TransactionStatus = "paid"
	TxFailed  TransactionStatus = "failed"
)

// Transaction is one gateway order opened for a store order. Raw bodies of
// verification calls and webhooks are kept for support.
type Transaction struct {
	ID               int64             `gorm:"primaryKey" json:"id"`
	OrderID          int64             `gorm:"index;not null" json:"order_id"`
	UserID           int64             `gorm:"index;not null" json:"user_id"`
	GatewayOrderID   string            `gorm:"type:varchar(64);uniqueIndex;not null" json:"gateway_order_id"`
	GatewayPaymentID string            `gorm:"type:varchar(64)" json:"gateway_payment_id,omitempty"`
	Amount           int64             `gorm:"not null" json:"amount"`
	Currency         string            `gorm:"type:varchar(3);not null" json:"currency"`
	Status           TransactionStatus `gorm:"type:varchar(20);default:'created';index" json:"status"`
	RawBody          string            `gorm:"type:text" json:"-"`
	FailureReason    string            `gorm:"type:text" json:"failure_reason,omitempty"`
	PaidAt           *time.Time        `json:"paid_at,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (Transaction) TableName() string { return "payment_transactions" }
