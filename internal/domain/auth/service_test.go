package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"autoshop/internal/database"
	"autoshop/internal/pkg/jwt"
	"autoshop/internal/pkg/validator"
)

func setupTestService(t *testing.T) (*Service, *jwt.Service) {
	t.Helper()
	db := database.OpenTest(t, &User{})
	tokens := jwt.New("test-secret", time.Hour)
	return NewService(NewUserRepository(db), tokens, zap.NewNop()), tokens
}

func TestService_RegisterAndLogin(t *testing.T) {
	svc, tokens := setupTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{Name: "Dana", Email: " Dana@Example.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", u.Email)
	assert.Equal(t, RoleCustomer, u.Role)
	assert.NotEqual(t, "secret123", u.PasswordHash)

	res, err := svc.Login(ctx, LoginRequest{Email: "dana@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)

	claims, err := tokens.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "customer", claims.Role)

	me, err := svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, me.LastLoginAt)
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Dana", Email: "dana@example.com", Password: "secret123"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterRequest{Name: "Dana", Email: "DANA@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_RegisterValidation(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "not-an-email", Password: "short"})
	errs, ok := validator.AsErrors(err)
	require.True(t, ok)
	assert.True(t, errs.Has(validator.MissingRequiredField))
}

func TestService_LoginLocksAfterRepeatedFailures(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.CreateUser(ctx, "Admin", "admin@autoshop.local", "", "correct-horse", RoleAdmin)
	require.NoError(t, err)

	for i := 1; i < maxFailedLoginAttempts; i++ {
		_, err = svc.Login(ctx, LoginRequest{Email: "admin@autoshop.local", Password: "wrong-pass"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err = svc.Login(ctx, LoginRequest{Email: "admin@autoshop.local", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrAccountLocked)

	_, err = svc.Login(ctx, LoginRequest{Email: "admin@autoshop.local", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrAccountLocked)

	now = now.Add(lockoutDuration + time.Second)
	res, err := svc.Login(ctx, LoginRequest{Email: "admin@autoshop.local", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, res.User.Role)
}

func TestService_LoginUnknownEmail(t *testing.T) {
	svc, _ := setupTestService(t)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := setupTestService(t)
	u, err := svc.CreateUser(context.Background(), "Bolat", "bolat@example.com", "", "secret123", RoleServiceCenter)
	require.NoError(t, err)

	r := gin.New()
	fakeAuth := func(c *gin.Context) {
		c.Set("user_id", u.ID)
		c.Set("role", string(u.Role))
		c.Next()
	}
	RegisterRoutes(r.Group("/api/v1"), NewHandler(svc, zap.NewNop()), fakeAuth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data StatusResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.Authenticated)
	assert.Equal(t, "bolat@example.com", body.Data.User.Email)
	assert.NotContains(t, w.Body.String(), "password")

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"bolat@example.com","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}
