package booking

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	bookings := protected.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("/me", h.ListMine)
		bookings.POST("/:id/cancel", h.Cancel)
	}

	recurring := protected.Group("/recurring-bookings")
	{
		recurring.POST("", h.CreateRecurring)
		recurring.GET("/me", h.ListMyRecurring)
		recurring.POST("/:id/pause", h.PauseRecurring)
		recurring.POST("/:id/resume", h.ResumeRecurring)
		recurring.POST("/:id/cancel", h.CancelRecurring)
	}
}

// RegisterStaffRoutes expects a group restricted to trainers/admins.
func (h *Handler) RegisterStaffRoutes(staff *gin.RouterGroup) {
	staff.GET("/classes/:id/bookings", h.ListForClass)
	staff.PATCH("/bookings/:id/status", h.UpdateStatus)
}
