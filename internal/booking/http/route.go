package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	bookings := g.Group("/bookings")
	{
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.POST("", h.Create)
		bookings.PATCH("/:id", h.Update)
		bookings.PATCH("/:id/status", h.UpdateStatus)
		bookings.PATCH("/:id/payment", h.UpdatePayment)
		bookings.DELETE("/:id", h.Cancel)
		bookings.POST("/check-conflicts", h.CheckConflicts)
		bookings.POST("/recurring", h.CreateRecurring)
	}

	groups := g.Group("/recurring-groups")
	{
		groups.GET("/:id", h.GetRecurringGroup)
	}
}
