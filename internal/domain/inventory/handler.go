package inventory

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"autoshop/internal/pkg/listing"
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
	views := make([]View, len(result.Items))
	for i, p := range result.Items {
		views[i] = p.View()
	}
	response.Success(c, http.StatusOK, listing.Result[View]{
		Items:    views,
		Total:    result.Total,
		Visible:  result.Visible,
		Pages:    result.Pages,
		PageSize: result.PageSize,
		HasMore:  result.HasMore,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := response.ParamID(c, "part")
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p.View())
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePartRequest
	if !response.BindJSON(c, &req) {
		return
	}
	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p.View())
}

func (h *Handler) AdjustStock(c *gin.Context) {
	id, ok := response.ParamID(c, "part")
	if !ok {
		return
	}
	var req AdjustStockRequest
	if !response.BindJSON(c, &req) {
		return
	}
	p, err := h.service.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p.View())
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if errs, ok := validator.AsErrors(err); ok {
		response.Validation(c, errs)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		response.CustomError(c, http.StatusNotFound, "NOT_FOUND", "Part not found")
	case errors.Is(err, ErrDuplicatePart):
		response.CustomError(c, http.StatusConflict, "CONFLICT", err)
	case errors.Is(err, ErrInsufficientStock):
		response.CustomError(c, http.StatusConflict, "INSUFFICIENT_STOCK", err)
	default:
		h.log.Error("part request failed", zap.Error(err), zap.String("path", c.FullPath()))
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
