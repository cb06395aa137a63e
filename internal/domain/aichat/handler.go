package aichat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitzone/internal/pkg/response"
	"fitzone/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Chat godoc
// @Summary Ask the gym assistant
// @Tags ai-chat
// @Accept json
// @Produce json
// @Router /ai-chat [post]
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message is required (max 2000 characters)", validator.Details(err))
		return
	}
	response.Success(c, http.StatusOK, h.service.Reply(c.Request.Context(), req))
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup, limit ...gin.HandlerFunc) {
	api.Group("/ai-chat", limit...).POST("", h.Chat)
}
