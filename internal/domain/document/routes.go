package document

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	docs := r.Group("/documents")
	{
		docs.GET("", h.List)
		docs.POST("", h.Create)
		docs.GET("/:id", h.Get)
		docs.PATCH("/:id/status", h.UpdateStatus)
	}
}
