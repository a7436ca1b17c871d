package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"autoshop/internal/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(t *testing.T, svc *jwt.Service, mw ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	router := gin.New()
	router.Use(JWTAuth(svc))
	router.Use(mw...)
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetInt64("user_id"),
			"role":    c.GetString("role"),
		})
	})
	return router
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour)
	validToken, err := jwtService.GenerateToken(42, "service_center")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	protectedRouter(t, jwtService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42,"role":"service_center"}`, w.Body.String())
}

func TestJWTAuth_QueryToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour)
	validToken, err := jwtService.GenerateToken(7, "admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	protectedRouter(t, jwtService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected?token="+validToken, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	other := jwt.New("other-secret", time.Hour)
	foreign, err := other.GenerateToken(1, "admin")
	require.NoError(t, err)

	for _, token := range []string{"invalid-jwt-here", foreign} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		protectedRouter(t, jwt.New("secret", time.Hour)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	}
}

func TestJWTAuth_NoToken(t *testing.T) {
	w := httptest.NewRecorder()
	protectedRouter(t, jwt.New("secret", time.Hour)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_HEADER_MISSING")
}

func TestJWTAuth_WrongFormat(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dGVzdA==")
	protectedRouter(t, jwt.New("secret", time.Hour)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT")
}

func TestRequireRole(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	router := protectedRouter(t, jwtService, RequireRole("admin", "service_center"))

	tests := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"service_center", http.StatusOK},
		{"customer", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			token, err := jwtService.GenerateToken(3, tt.role)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://shop.example.com"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorLogger_RecoversPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	router := gin.New()
	router.Use(RequestID(), ErrorLogger(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) { panic("gearbox exploded") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "request panic", logs.All()[0].Message)
}
