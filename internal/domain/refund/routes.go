package refund

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes exposes the policy and the refund calculator.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	refunds := r.Group("/refunds")
	{
		refunds.GET("/policy", h.GetPolicy)
		refunds.POST("/evaluate", h.Evaluate)
	}
}

// RegisterAdminRoutes mounts refund management under an admin-only group.
// There is no delete route: refunds are kept for audit.
func RegisterAdminRoutes(admin *gin.RouterGroup, h *Handler) {
	refunds := admin.Group("/refunds")
	{
		refunds.GET("", h.List)
		refunds.POST("", h.Create)
		refunds.GET("/stats", h.Stats)
		refunds.GET("/:id", h.Get)
		refunds.PATCH("/:id/advance", h.UpdateAdvance)
		refunds.POST("/:id/transition", h.Transition)
	}
}
