package payment

type CreateOrderRequest struct {
	OrderID int64 `json:"order_id" binding:"required,gt=0"`
}

type CreateOrderResponse struct {
	KeyID          string `json:"key_id"`
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	OrderNumber    string `json:"order_number"`
}

type VerifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

type WebhookResult struct {
	Event   string `json:"event"`
	Handled bool   `json:"handled"`
}
