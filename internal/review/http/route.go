package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	reviews := g.Group("/reviews")
	{
		reviews.GET("", h.List)
		reviews.GET("/:id", h.Get)
		reviews.POST("", h.Create)
		reviews.DELETE("/:id", h.Delete)
	}

	g.GET("/bookings/:id/review", h.GetByBooking)
}
