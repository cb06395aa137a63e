package classes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

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

func (h *Handler) List(c *gin.Context) {
	p := pagination.FromQuery(c)
	f := ListFilter{
		Category:  c.Query("category"),
		TrainerID: request.QueryInt64(c, "trainer_id"),
	}
	if day := c.Query("day"); day != "" {
		d, err := strconv.Atoi(day)
		if err != nil || d < 0 || d > 6 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "day must be between 0 (Sunday) and 6 (Saturday)")
			return
		}
		f.DayOfWeek = &d
	}

	items, total, err := h.service.List(c.Request.Context(), f, p)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list classes")
		return
	}
	response.Paginated(c, http.StatusOK, items, p.Meta(total))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid class ID")
		return
	}

	class, err := h.service.Get(c.Request.Context(), id, false)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, class)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	class, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, class)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid class ID")
		return
	}

	var req UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	class, err := h.service.Update(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, class)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid class ID")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), actorFrom(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "is_active": false})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Class not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only manage your own classes")
	case errors.Is(err, ErrInvalidSchedule):
		response.Error(c, http.StatusBadRequest, "INVALID_SCHEDULE", "Day must be 0-6, times HH:MM with end after start, capacity above zero")
	case errors.Is(err, ErrInvalidTrainer):
		response.Error(c, http.StatusBadRequest, "INVALID_TRAINER", "Trainer not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func actorFrom(c *gin.Context) Actor {
	return Actor{UserID: request.UserID(c), Role: request.Role(c)}
}
