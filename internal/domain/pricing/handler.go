package pricing

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitzone/internal/pkg/request"
	"fitzone/internal/pkg/response"
)

// CartTotals reports the shopper's current cart subtotal.
type CartTotals interface {
	Subtotal(ctx context.Context, userID int64) (float64, error)
}

// OrderHistory tells whether the shopper has placed an order before.
type OrderHistory interface {
	IsFirstOrder(ctx context.Context, userID int64) (bool, error)
}

type ValidatePromoRequest struct {
	Code     string   `json:"code" binding:"required,max=32"`
	Subtotal *float64 `json:"subtotal" binding:"omitempty,gte=0"`
}

type ValidatePromoResponse struct {
	Valid bool   `json:"valid"`
	Promo Promo  `json:"promo"`
	Quote Quote  `json:"quote"`
	Note  string `json:"note,omitempty"`
}

type Handler struct {
	cart   CartTotals
	orders OrderHistory
}

func NewHandler(cart CartTotals, orders OrderHistory) *Handler {
	return &Handler{cart: cart, orders: orders}
}

// ValidatePromo previews a promo code against the given subtotal, or the
// caller's cart when subtotal is omitted.
func (h *Handler) ValidatePromo(c *gin.Context) {
	var req ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Promo code is required")
		return
	}

	ctx := c.Request.Context()
	userID := request.UserID(c)

	var subtotal float64
	if req.Subtotal != nil {
		subtotal = *req.Subtotal
	} else {
		s, err := h.cart.Subtotal(ctx, userID)
		if err != nil {
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read cart")
			return
		}
		subtotal = s
	}

	first, err := h.orders.IsFirstOrder(ctx, userID)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read order history")
		return
	}

	q, err := Calculate(subtotal, first, req.Code)
	if err != nil {
		var pe *PromoError
		if errors.As(err, &pe) {
			response.Error(c, http.StatusBadRequest, pe.Code, pe.Message)
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		return
	}

	p, _ := Lookup(req.Code)
	response.Success(c, http.StatusOK, ValidatePromoResponse{Valid: true, Promo: p, Quote: q})
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/store/promo/validate", h.ValidatePromo)
}
