package order

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/orders")
	{
		g.POST("/checkout", h.Checkout)
		g.GET("/me", h.ListMine)
		g.GET("/:id", h.Get)
		g.POST("/:id/cancel", h.Cancel)
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	g := admin.Group("/orders")
	{
		g.GET("", h.AdminList)
		g.PATCH("/:id/status", h.AdminUpdateStatus)
	}
}
