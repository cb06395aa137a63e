package auth

import (
	"errors"
	"net/http"

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

// Register creates a member account and returns an access token.
// @Summary		Register member
// @Tags		Auth
// @Param		body	body	RegisterRequest	true	"payload"
// @Success		201	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register")
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Login
// @Summary		Login
// @Tags		Auth
// @Param		body	body	LoginRequest	true	"credentials"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, ErrAccountDisabled):
			response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), request.UserID(c))
	if err != nil {
		h.userError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), request.UserID(c), req)
	if err != nil {
		h.userError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), request.UserID(c), req); err != nil {
		if errors.Is(err, ErrWrongPassword) {
			response.Error(c, http.StatusBadRequest, "WRONG_PASSWORD", "Current password is incorrect")
			return
		}
		h.userError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "updated"})
}

func (h *Handler) ListTrainers(c *gin.Context) {
	trainers, err := h.service.ListTrainers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load trainers")
		return
	}
	response.Success(c, http.StatusOK, trainers)
}

func (h *Handler) AdminListUsers(c *gin.Context) {
	p := pagination.FromQuery(c)
	f := UserFilter{
		Role:   Role(c.Query("role")),
		Search: c.Query("q"),
	}
	switch c.Query("is_active") {
	case "true":
		v := true
		f.IsActive = &v
	case "false":
		v := false
		f.IsActive = &v
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), f, p)
	if err != nil {
		if errors.Is(err, ErrInvalidRole) {
			response.Error(c, http.StatusBadRequest, "INVALID_ROLE", "Role must be member, trainer or admin")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list users")
		return
	}
	response.Paginated(c, http.StatusOK, users, p.Meta(total))
}

func (h *Handler) AdminUpdateUser(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.AdminUpdateUser(c.Request.Context(), request.UserID(c), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, "INVALID_ROLE", "Role must be member, trainer or admin")
		case errors.Is(err, ErrCannotModifySelf):
			response.Error(c, http.StatusBadRequest, "CANNOT_MODIFY_SELF", err.Error())
		default:
			h.userError(c, err)
		}
		return
	}
	response.Success(c, http.StatusOK, user)
}

func (h *Handler) AdminCreateTrainer(c *gin.Context) {
	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	user, err := h.service.CreateTrainer(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create trainer")
		return
	}
	response.Success(c, http.StatusCreated, user)
}

func (h *Handler) userError(c *gin.Context, err error) {
	if errors.Is(err, ErrUserNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
}
