package sitecontent

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

func (h *Handler) Team(c *gin.Context) {
	items, err := h.service.Team(c.Request.Context())
	respond(c, http.StatusOK, items, err)
}

func (h *Handler) Testimonials(c *gin.Context) {
	items, err := h.service.Testimonials(c.Request.Context())
	respond(c, http.StatusOK, items, err)
}

func (h *Handler) AllTeam(c *gin.Context) {
	items, err := h.service.AllTeam(c.Request.Context())
	respond(c, http.StatusOK, items, err)
}

func (h *Handler) AllTestimonials(c *gin.Context) {
	items, err := h.service.AllTestimonials(c.Request.Context())
	respond(c, http.StatusOK, items, err)
}

func (h *Handler) CreateTeamMember(c *gin.Context) {
	var req TeamMemberRequest
	if !bind(c, &req) {
		return
	}
	m, err := h.service.CreateTeamMember(c.Request.Context(), req)
	respond(c, http.StatusCreated, m, err)
}

func (h *Handler) UpdateTeamMember(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req TeamMemberRequest
	if !bind(c, &req) {
		return
	}
	m, err := h.service.UpdateTeamMember(c.Request.Context(), id, req)
	respond(c, http.StatusOK, m, err)
}

func (h *Handler) DeleteTeamMember(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	err := h.service.DeleteTeamMember(c.Request.Context(), id)
	respond(c, http.StatusOK, gin.H{"id": id, "deleted": true}, err)
}

func (h *Handler) CreateTestimonial(c *gin.Context) {
	var req TestimonialRequest
	if !bind(c, &req) {
		return
	}
	t, err := h.service.CreateTestimonial(c.Request.Context(), req)
	respond(c, http.StatusCreated, t, err)
}

func (h *Handler) UpdateTestimonial(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req TestimonialRequest
	if !bind(c, &req) {
		return
	}
	t, err := h.service.UpdateTestimonial(c.Request.Context(), id, req)
	respond(c, http.StatusOK, t, err)
}

func (h *Handler) DeleteTestimonial(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	err := h.service.DeleteTestimonial(c.Request.Context(), id)
	respond(c, http.StatusOK, gin.H{"id": id, "deleted": true}, err)
}

func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return false
	}
	return true
}

func paramID(c *gin.Context) (int64, bool) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
	}
	return id, ok
}

func respond(c *gin.Context, status int, data any, err error) {
	switch {
	case err == nil:
		response.Success(c, status, data)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Content not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
