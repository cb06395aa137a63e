package order

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitzone/internal/domain/pricing"
	"fitzone/internal/pkg/pagination"
	"fitzone/internal/pkg/request"
	"fitzone/internal/pkg/response"
	"fitzone/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Checkout godoc
// @Summary Place an order from the cart
// @Tags orders
// @Security BearerAuth
// @Router /orders/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	o, err := h.service.Checkout(c.Request.Context(), request.UserID(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, o)
}

func (h *Handler) ListMine(c *gin.Context) {
	p := pagination.FromQuery(c)
	items, total, err := h.service.ListMine(c.Request.Context(), request.UserID(c), p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, items, p.Meta(total))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}
	o, err := h.service.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}
	var req CancelRequest
	// body is optional
	_ = c.ShouldBindJSON(&req)

	o, err := h.service.Cancel(c.Request.Context(), actorFrom(c), id, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
}

func (h *Handler) AdminList(c *gin.Context) {
	p := pagination.FromQuery(c)
	items, total, err := h.service.AdminList(c.Request.Context(), Status(c.Query("status")), p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, items, p.Meta(total))
}

func (h *Handler) AdminUpdateStatus(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}
	o, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var promoErr *pricing.PromoError
	var stockErr *StockError
	switch {
	case errors.As(err, &promoErr):
		response.Error(c, http.StatusBadRequest, promoErr.Code, promoErr.Message)
	case errors.As(err, &stockErr):
		response.ErrorWithDetails(c, http.StatusConflict, "INSUFFICIENT_STOCK",
			fmt.Sprintf("Only %d left of %s", stockErr.Available, stockErr.Name),
			gin.H{"product_id": stockErr.ProductID, "available": stockErr.Available})
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	case errors.Is(err, ErrEmptyCart):
		response.Error(c, http.StatusBadRequest, "EMPTY_CART", "Your cart is empty")
	case errors.Is(err, ErrProductUnavailable):
		response.Error(c, http.StatusConflict, "PRODUCT_UNAVAILABLE", "A product in your cart is no longer available")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown order status")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Order cannot move to that status")
	case errors.Is(err, ErrNotCancellable):
		response.Error(c, http.StatusConflict, "NOT_CANCELLABLE", "Order can no longer be cancelled")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func actorFrom(c *gin.Context) Actor {
	return Actor{UserID: request.UserID(c), Role: request.Role(c)}
}
