package inventory

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	parts := r.Group("/parts")
	{
		parts.GET("", h.List)
		parts.POST("", h.Create)
		parts.GET("/:id", h.Get)
		parts.PATCH("/:id/stock", h.AdjustStock)
	}
}
