package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"autoshop/internal/pkg/jwt"
	"autoshop/internal/pkg/response"
)

type tokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// JWTAuth authenticates the request by its bearer token and stores user_id
// (int64) and role on the context. Browsers cannot set headers on a websocket
// upgrade, so a ?token= query parameter is accepted for GET requests.
func JWTAuth(tokens tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, code, msg := bearerToken(c)
		if code != "" {
			response.CustomError(c, http.StatusUnauthorized, code, msg)
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(raw)
		if err != nil {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (token, code, message string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if q := c.Query("token"); q != "" && c.Request.Method == http.MethodGet {
			return q, "", ""
		}
		return "", "AUTH_HEADER_MISSING", "Authorization header is required"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'"
	}
	return parts[1], "", ""
}
