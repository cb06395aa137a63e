package payment

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterWebhookRoutes(r *gin.RouterGroup) {
	razorpay := r.Group("/payments/razorpay")
	{
		razorpay.POST("/webhook", h.Webhook)
	}
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	razorpay := r.Group("/payments/razorpay")
	{
		razorpay.POST("/order", h.CreateOrder)
		razorpay.POST("/verify", h.Verify)
	}
}
