package booking

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitzone/internal/pkg/pagination"
	"fitzone/internal/pkg/request"
	"fitzone/internal/pkg/response"
	"fitzone/internal/pkg/validator"
)

type Handler struct {
	service   *Service
	recurring *RecurringService
}

func NewHandler(service *Service, recurring *RecurringService) *Handler {
	return &Handler{service: service, recurring: recurring}
}

// CreateBooking
// @Summary		Book a class occurrence
// @Tags		Bookings
// @Security	BearerAuth
// @Param		body	body	CreateBookingRequest	true	"payload"
// @Success		201	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}	"CLASS_FULL or DUPLICATE_BOOKING"
// @Router		/bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), request.UserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) ListMine(c *gin.Context) {
	p := pagination.FromQuery(c)
	items, total, err := h.service.ListMine(c.Request.Context(), request.UserID(c), Status(c.Query("status")), p)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, items, p.Meta(total))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req CancelBookingRequest
	// body is optional
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}

	b, err := h.service.Cancel(c.Request.Context(), actorFrom(c), id, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "status must be completed or no-show")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), actorFrom(c), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ListForClass(c *gin.Context) {
	classID, ok := request.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid class ID")
		return
	}

	date := c.Query("date")
	if date == "" {
		date = h.service.today()
	}

	items, err := h.service.ListForClass(c.Request.Context(), actorFrom(c), classID, date)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) CreateRecurring(c *gin.Context) {
	var req CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	rb, err := h.recurring.Create(c.Request.Context(), request.UserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rb)
}

func (h *Handler) ListMyRecurring(c *gin.Context) {
	items, err := h.recurring.ListMine(c.Request.Context(), request.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) PauseRecurring(c *gin.Context) {
	h.recurringAction(c, h.recurring.Pause)
}

func (h *Handler) ResumeRecurring(c *gin.Context) {
	h.recurringAction(c, h.recurring.Resume)
}

func (h *Handler) CancelRecurring(c *gin.Context) {
	h.recurringAction(c, h.recurring.Cancel)
}

func (h *Handler) recurringAction(c *gin.Context, op func(context.Context, Actor, int64) (*RecurringBooking, error)) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid recurring booking ID")
		return
	}

	rb, err := op(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rb)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
	case errors.Is(err, ErrPastDate):
		response.Error(c, http.StatusBadRequest, "PAST_DATE", "Booking date must be today or later and before the class starts")
	case errors.Is(err, ErrWrongDay):
		response.Error(c, http.StatusBadRequest, "WRONG_DAY", "The class does not run on the selected date")
	case errors.Is(err, ErrClassInactive):
		response.Error(c, http.StatusBadRequest, "CLASS_INACTIVE", "This class is no longer offered")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrClassFull):
		response.Error(c, http.StatusConflict, "CLASS_FULL", "This class is fully booked for the selected date")
	case errors.Is(err, ErrDuplicateBooking):
		response.Error(c, http.StatusConflict, "DUPLICATE_BOOKING", "You have already booked this class for the selected date")
	case errors.Is(err, ErrDuplicateRecurring):
		response.Error(c, http.StatusConflict, "DUPLICATE_RECURRING", err.Error())
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "The booking cannot move to that status")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func actorFrom(c *gin.Context) Actor {
	return Actor{UserID: request.UserID(c), Role: request.Role(c)}
}
