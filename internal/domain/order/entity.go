package order

import (
	"time"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	_, ok := rank[s]
	return ok || s == StatusCancelled
}

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type ShippingAddress struct {
	Name    string `json:"name" binding:"required,max=120"`
	Phone   string `json:"phone" binding:"required,min=10,max=15"`
	Line1   string `json:"line1" binding:"required,max=200"`
	Line2   string `json:"line2,omitempty" binding:"omitempty,max=200"`
	City    string `json:"city" binding:"required,max=80"`
	State   string `json:"state" binding:"required,max=80"`
	Pincode string `json:"pincode" binding:"required,len=6,numeric"`
}

type Order struct {
	ID               int64                               `gorm:"primaryKey" json:"id"`
	OrderNumber      string                              `gorm:"size:32;not null;uniqueIndex" json:"order_number"`
	UserID           int64                               `gorm:"not null;index" json:"user_id"`
	Items            []OrderItem                         `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Subtotal         float64                             `gorm:"not null" json:"subtotal"`
	Shipping         float64                             `gorm:"not null" json:"shipping"`
	Discount         float64                             `gorm:"not null" json:"discount"`
	PromoCode        string                              `gorm:"size:32" json:"promo_code,omitempty"`
	Total            float64                             `gorm:"not null" json:"total"`
	Status           Status                              `gorm:"size:20;not null;index" json:"status"`
	PaymentMethod    PaymentMethod                       `gorm:"size:20;not null" json:"payment_method"`
	PaymentStatus    PaymentStatus                       `gorm:"size:20;not null" json:"payment_status"`
	ShippingAddress  datatypes.JSONType[ShippingAddress] `json:"shipping_address"`
	GatewayOrderID   *string                             `gorm:"size:64;uniqueIndex" json:"gateway_order_id,omitempty"`
	GatewayPaymentID string                              `gorm:"size:64" json:"gateway_payment_id,omitempty"`
	PaidAt           *time.Time                          `json:"paid_at,omitempty"`
	CancelledAt      *time.Time                          `json:"cancelled_at,omitempty"`
	CancelReason     string                              `gorm:"size:255" json:"cancel_reason,omitempty"`
	CreatedAt        time.Time                           `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time                           `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is a snapshot of the product at checkout time.
type OrderItem struct {
	ID        int64   `gorm:"primaryKey" json:"id"`
	OrderID   int64   `gorm:"not null;index" json:"order_id"`
	ProductID int64   `gorm:"not null;index" json:"product_id"`
	Name      string  `gorm:"size:160;not null" json:"name"`
	Price     float64 `gorm:"not null" json:"price"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	LineTotal float64 `gorm:"not null" json:"line_total"`
}

func (OrderItem) TableName() string { return "order_items" }

var rank = map[Status]int{
	StatusPending:    0,
	StatusConfirmed:  1,
	StatusProcessing: 2,
	StatusShipped:    3,
	StatusDelivered:  4,
}

// CanTransition allows forward moves along the fulfilment lifecycle and
// cancellation before processing starts.
func CanTransition(from, to Status) bool {
	if to == StatusCancelled {
		return from == StatusPending || from == StatusConfirmed
	}
	f, ok := rank[from]
	if !ok {
		return false
	}
	t, ok := rank[to]
	return ok && t > f
}

func (o *Order) Cancellable() bool {
	return CanTransition(o.Status, StatusCancelled)
}

// AwaitsOnlinePayment is true for online orders still waiting to be paid.
func (o *Order) AwaitsOnlinePayment() bool {
	return o.PaymentMethod == PaymentOnline && o.Status == StatusPending && o.PaymentStatus != PaymentPaid
}
