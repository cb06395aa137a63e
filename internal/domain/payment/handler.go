package payment

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"fitzone/internal/domain/order"
	"fitzone/internal/pkg/logger"
	"fitzone/internal/pkg/request"
	"fitzone/internal/pkg/response"
	"fitzone/internal/pkg/validator"
)

const maxWebhookBody = 1 << 20

type Handler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHandler(service *Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: logger.OrDiscard(log)}
}

// CreateOrder godoc
// @Summary      Create Razorpay order
// @Description  Opens a gateway order for a pending online store order
// @Tags         Payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CreateOrderRequest true "Store order"
// @Success      200 {object} CreateOrderResponse
// @Router       /payments/razorpay/order [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	resp, err := h.service.CreateOrder(c.Request.Context(), request.UserID(c), req.OrderID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Verify godoc
// @Summary      Verify Razorpay payment
// @Description  Validates the checkout signature and marks the order paid (idempotent)
// @Tags         Payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body VerifyRequest true "Checkout result"
// @Router       /payments/razorpay/verify [post]
func (h *Handler) Verify(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	var req VerifyRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	o, err := h.service.Verify(c.Request.Context(), request.UserID(c), req, string(body))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
}

// Webhook godoc
// @Summary      Razorpay webhook
// @Description  Applies signed payment.captured / payment.failed events
// @Tags         Payments
// @Produce      json
// @Param        X-Razorpay-Signature header string true "HMAC-SHA256 of the body"
// @Router       /payments/razorpay/webhook [post]
func (h *Handler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unreadable body")
		return
	}

	res, err := h.service.HandleWebhook(c.Request.Context(), body, c.GetHeader("X-Razorpay-Signature"))
	if err != nil {
		h.log.WithError(err).Warn("razorpay webhook rejected")
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrDisabled):
		response.Error(c, http.StatusServiceUnavailable, "PAYMENTS_DISABLED", "Online payments are not available")
	case errors.Is(err, ErrInvalidSignature):
		response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Payment signature verification failed")
	case errors.Is(err, ErrGateway):
		response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "Could not reach the payment gateway")
	case errors.Is(err, order.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	case errors.Is(err, order.ErrPaymentNotExpected):
		response.Error(c, http.StatusConflict, "PAYMENT_NOT_EXPECTED", "Order is not awaiting online payment")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
