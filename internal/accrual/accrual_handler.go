package accrual

import (
	"net/http"
	"time"

	accrualerrors "plugohris/internal/accrual/errors"
	"plugohris/internal/shared/apperror"
	"plugohris/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("accrual.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("accrual.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("accrual request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Run triggers a balance recalculation. Synchronous by default; with
// async=true the run is enqueued for cmd/consumer instead.
func (h *Handler) Run(c *gin.Context) {
	var req RecalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	asOf := time.Now().UTC()
	if req.AsOfDate != "" {
		parsed, err := time.Parse("2006-01-02", req.AsOfDate)
		if err != nil {
			h.writeServiceError(c, accrualerrors.ErrInvalidAsOfDate)
			return
		}
		asOf = parsed
	}

	if req.Async {
		if err := h.service.ScheduleRecalculation(c.Request.Context(), asOf, c.GetString("user_id")); err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusAccepted, gin.H{"scheduled": true, "as_of_date": asOf.Format("2006-01-02")}, nil)
		return
	}

	result, err := h.service.Recalculate(c.Request.Context(), asOf)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}
