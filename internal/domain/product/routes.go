package product

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	g := api.Group("/store/products")
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	g := admin.Group("/products")
	{
		g.GET("", h.AdminList)
		g.POST("", h.Create)
		g.PUT("/:id", h.Update)
		g.POST("/:id/stock", h.AdjustStock)
		g.DELETE("/:id", h.Delete)
	}
}
