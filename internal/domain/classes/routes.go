package classes

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	g := api.Group("/classes")
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
	}
}

// RegisterStaffRoutes expects a group already restricted to trainers/admins.
func (h *Handler) RegisterStaffRoutes(staff *gin.RouterGroup) {
	g := staff.Group("/classes")
	{
		g.POST("", h.Create)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}
