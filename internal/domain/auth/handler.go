package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"autoshop/internal/pkg/response"
	"autoshop/internal/pkg/validator"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, log: log}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !response.BindJSON(c, &req) {
		return
	}
	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Me reports the signed-in user. It runs behind JWTAuth.
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	u, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "User no longer exists")
			return
		}
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, StatusResponse{Authenticated: true, User: u})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if errs, ok := validator.AsErrors(err); ok {
		response.Validation(c, errs)
		return
	}
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.CustomError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, ErrAccountLocked):
		response.CustomError(c, http.StatusLocked, "ACCOUNT_LOCKED", "Too many failed attempts, try again later")
	case errors.Is(err, ErrEmailAlreadyExists):
		response.CustomError(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
	default:
		h.log.Error("auth request failed", zap.Error(err), zap.String("path", c.FullPath()))
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
