package bundle

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	packages := r.Group("/packages")
	{
		packages.GET("", h.List)
		packages.POST("", h.Create)
		packages.POST("/quote", h.Quote)
		packages.GET("/:id", h.Get)
		packages.PUT("/:id", h.Update)
		packages.DELETE("/:id", h.Delete)
	}
}
