package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts /auth. authMW guards the status endpoint.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMW gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", authMW, h.Me)
	}
}
