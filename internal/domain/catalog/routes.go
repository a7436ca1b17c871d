package catalog

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	services := r.Group("/services")
	{
		services.GET("", h.List)
		services.POST("", h.Create)
		services.GET("/:id", h.Get)
		services.PUT("/:id", h.Update)
		services.PATCH("/:id/toggle", h.Toggle)
		services.DELETE("/:id", h.Delete)
	}
}
