package cart

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/cart")
	{
		g.GET("", h.Get)
		g.DELETE("", h.Clear)
		g.POST("/items", h.AddItem)
		g.PUT("/items/:productId", h.UpdateItem)
		g.DELETE("/items/:productId", h.RemoveItem)
	}
}
