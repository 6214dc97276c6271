package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.POST("/bookings/:id/photos", h.Upload)
	g.GET("/bookings/:id/photos", h.ListByBooking)

	photos := g.Group("/photos")
	{
		photos.GET("/:id", h.Download)
		photos.GET("/:id/thumbnail", h.Thumbnail)
		photos.DELETE("/:id", h.Delete)
	}
}
