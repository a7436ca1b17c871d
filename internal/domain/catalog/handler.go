package catalog

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

func (h *Handler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), ListSpec.ParseQuery(c.Request.URL.Query()))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := response.ParamID(c, "service")
	if !ok {
		return
	}
	svc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !response.BindJSON(c, &req) {
		return
	}
	svc, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, svc)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := response.ParamID(c, "service")
	if !ok {
		return
	}
	var req UpdateServiceRequest
	if !response.BindJSON(c, &req) {
		return
	}
	svc, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) Toggle(c *gin.Context) {
	id, ok := response.ParamID(c, "service")
	if !ok {
		return
	}
	svc, err := h.service.ToggleActive(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, svc)
}

// Delete soft-deletes; ?hard=true removes the row and is limited to admins.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := response.ParamID(c, "service")
	if !ok {
		return
	}
	hard := c.Query("hard") == "true"
	if hard && c.GetString("role") != "admin" {
		h.handleError(c, ErrForbidden)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, hard); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "hard": hard})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if errs, ok := validator.AsErrors(err); ok {
		response.Validation(c, errs)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		response.CustomError(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
	case errors.Is(err, ErrForbidden):
		response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Only admins can permanently delete services")
	default:
		h.log.Error("service request failed", zap.Error(err), zap.String("path", c.FullPath()))
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
