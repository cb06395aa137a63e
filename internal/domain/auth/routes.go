package auth

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts /auth/*. limit wraps the credential endpoints.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup, limit ...gin.HandlerFunc) {
	authGroup := api.Group("/auth", limit...)
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	api.GET("/trainers", h.ListTrainers)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
		userGroup.PUT("/me", h.UpdateMe)
		userGroup.PUT("/me/password", h.ChangePassword)
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/users", h.AdminListUsers)
	admin.PATCH("/users/:id", h.AdminUpdateUser)
	admin.POST("/trainers", h.AdminCreateTrainer)
}
