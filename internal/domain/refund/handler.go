package refund

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

// GetPolicy returns the refund tiers and their explanation.
func (h *Handler) GetPolicy(c *gin.Context) {
	p := h.service.Policy()
	response.Success(c, http.StatusOK, PolicyResponse{Tiers: p.Tiers, Lines: p.Lines()})
}

// Evaluate previews the refund for a cancellation.
func (h *Handler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if !response.BindJSON(c, &req) {
		return
	}
	if errs := validator.Validate(&req); len(errs) > 0 {
		response.Validation(c, errs)
		return
	}

	result, err := h.service.Quote(req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if !response.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) List(c *gin.Context) {
	q := ListSpec.ParseQuery(c.Request.URL.Query())

	result, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := response.ParamID(c, "refund")
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) UpdateAdvance(c *gin.Context) {
	id, ok := response.ParamID(c, "refund")
	if !ok {
		return
	}
	var req UpdateAdvanceRequest
	if !response.BindJSON(c, &req) {
		return
	}

	b, err := h.service.UpdateAdvance(c.Request.Context(), id, req.AdvanceAmount)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Transition(c *gin.Context) {
	id, ok := response.ParamID(c, "refund")
	if !ok {
		return
	}
	var req TransitionRequest
	if !response.BindJSON(c, &req) {
		return
	}
	if errs := validator.Validate(&req); len(errs) > 0 {
		response.Validation(c, errs)
		return
	}
	if !req.Status.Valid() {
		response.CustomError(c, http.StatusBadRequest, "INVALID_STATUS", "status must be Pending, Processed or Completed")
		return
	}

	b, err := h.service.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if errs, ok := validator.AsErrors(err); ok {
		response.Validation(c, errs)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		response.CustomError(c, http.StatusNotFound, "NOT_FOUND", "Refund not found")
	case errors.Is(err, ErrDuplicateBooking):
		response.CustomError(c, http.StatusConflict, "CONFLICT", err)
	case errors.Is(err, ErrInvalidTransition):
		response.CustomError(c, http.StatusConflict, "INVALID_TRANSITION", err)
	case errors.Is(err, ErrBreakdownLocked):
		response.CustomError(c, http.StatusConflict, "BREAKDOWN_LOCKED", err)
	default:
		h.log.Error("refund request failed", zap.Error(err), zap.String("path", c.FullPath()))
		response.CustomError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
