package sitecontent

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	g := api.Group("/site-content")
	{
		g.GET("/team", h.Team)
		g.GET("/testimonials", h.Testimonials)
	}
}

// RegisterAdminRoutes expects an admin-only group mounted at /api.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	g := admin.Group("/site-content")
	{
		g.GET("/team/all", h.AllTeam)
		g.POST("/team", h.CreateTeamMember)
		g.PUT("/team/:id", h.UpdateTeamMember)
		g.DELETE("/team/:id", h.DeleteTeamMember)

		g.GET("/testimonials/all", h.AllTestimonials)
		g.POST("/testimonials", h.CreateTestimonial)
		g.PUT("/testimonials/:id", h.UpdateTestimonial)
		g.DELETE("/testimonials/:id", h.DeleteTestimonial)
	}
}
