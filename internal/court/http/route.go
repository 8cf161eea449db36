package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts court endpoints. Reads are public so the booking
// front-end can browse courts without a session; writes require staff, and
// retiring a court is reserved to admins.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffOnly, adminOnly gin.HandlerFunc) {
	group := g.Group("/courts")

	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.GET("/:id/image", h.GetImage)

	group.Use(authMiddleware, staffOnly)
	{
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", adminOnly, h.Delete)
		group.POST("/:id/image", h.UploadImage)
	}
}
