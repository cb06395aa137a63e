package cart

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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

func (h *Handler) Get(c *gin.Context) {
	cart, err := h.service.Get(c.Request.Context(), request.UserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}
	cart, err := h.service.AddItem(c.Request.Context(), request.UserID(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	productID, ok := request.ParamID(c, "productId")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}
	cart, err := h.service.SetQuantity(c.Request.Context(), request.UserID(c), productID, *req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	productID, ok := request.ParamID(c, "productId")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}
	cart, err := h.service.RemoveItem(c.Request.Context(), request.UserID(c), productID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), request.UserID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, &Cart{Items: []CartItem{}})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrItemNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Item is not in your cart")
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, ErrProductInactive):
		response.Error(c, http.StatusBadRequest, "PRODUCT_UNAVAILABLE", "Product is no longer available")
	case errors.Is(err, ErrInsufficientStock):
		response.Error(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", "Not enough stock for the requested quantity")
	case errors.Is(err, ErrInvalidQuantity):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Quantity must not be negative")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
