package upload

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts /upload on an authenticated group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	g := r.Group("/upload")
	{
		g.POST("", h.Upload)
		g.GET("", h.ListMy)
		g.DELETE("/:id", h.Delete)
	}
}
