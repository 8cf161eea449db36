package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the reservation endpoints. The verification pair is
// a front-desk operation and requires an operating role, like the staff
// listing.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffOnly, createLimit gin.HandlerFunc) {
	group := g.Group("/reservations")

	group.Use(authMiddleware)
	{
		group.POST("", createLimit, h.Create)
		group.GET("/my", h.ListMine)
		group.GET("/:id", h.Get)
		group.PUT("/:id/edit", h.Edit)
		group.PUT("/:id/cancel", h.Cancel)

		group.GET("", staffOnly, h.List)
		group.POST("/find", staffOnly, h.Find)
		group.POST("/verify", staffOnly, h.Verify)
	}
}

// RegisterAvailabilityRoutes mounts the public availability views under the
// courts prefix. They read reservation data, so they live on this handler.
func RegisterAvailabilityRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/courts")

	group.GET("/available", h.AvailableCourts)
	group.GET("/:id/occupied-times", h.OccupiedTimes)
	group.GET("/:id/unavailable-dates", h.UnavailableDates)
}
