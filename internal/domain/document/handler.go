package document

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
	id, ok := response.ParamID(c, "document")
	if !ok {
		return
	}
	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if !response.BindJSON(c, &req) {
		return
	}
	d, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, d)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := response.ParamID(c, "document")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !response.BindJSON(c, &req) {
		return
	}
	if errs := validator.Validate(&req); len(errs) > 0 {
		response.Validation(c, errs)
		return
	}
	d, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if errs, ok := validator.AsErrors(err); ok {
		response.Validation(c, errs)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		response.CustomError(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
	case errors.Is(err, ErrInvalidTransition):
		response.CustomError(c, http.StatusConflict, "INVALID_TRANSITION", err)
	default:
		h.log.Error("document request failed", zap.Error(err), zap.String("path", c.FullPath()))
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
