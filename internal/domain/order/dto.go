package order

type CheckoutRequest struct {
	ShippingAddress ShippingAddress `json:"shipping_address" binding:"required"`
	PaymentMethod   PaymentMethod   `json:"payment_method" binding:"required,oneof=cod online"`
	PromoCode       string          `json:"promo_code" binding:"omitempty,max=32"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=255"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"omitempty,max=255"`
}

type Actor struct {
	UserID int64
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == "admin" }

type ListFilter struct {
	UserID int64
	Status Status
}

type Stats struct {
	ByStatus map[Status]int64 `json:"by_status"`
	Revenue  float64          `json:"revenue"`
}

// OrderEvent is the realtime/broker payload for order changes.
type OrderEvent struct {
	OrderID       int64         `json:"order_id"`
	OrderNumber   string        `json:"order_number"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Total         float64       `json:"total"`
}

func eventOf(o *Order) OrderEvent {
	return OrderEvent{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Total:         o.Total,
	}
}
