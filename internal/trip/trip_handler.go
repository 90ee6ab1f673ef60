package trip

import (
	"net/http"
	"strconv"

	"plugohris/internal/domain"
	"plugohris/internal/middleware"
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
	l := zap.L().Named("trip.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("trip.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("business trip request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func actorFromContext(c *gin.Context) domain.Actor {
	return domain.Actor{
		EmployeeID: c.GetString("employee_id"),
		Role:       middleware.ActorRole(c),
	}
}

func statusFilter(c *gin.Context) (*Status, bool) {
	raw := c.Query("status")
	if raw == "" {
		return nil, true
	}
	switch Status(raw) {
	case StatusPending, StatusApproved, StatusRejected:
		status := Status(raw)
		return &status, true
	}
	return nil, false
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), c.GetString("employee_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetOwn(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "unknown status filter", nil)
		return
	}

	resp, err := h.service.GetOwn(c.Request.Context(), c.GetString("employee_id"), status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	writePaginated(c, resp)
}

func (h *Handler) GetPending(c *gin.Context) {
	resp, err := h.service.GetPendingForApprover(c.Request.Context(), actorFromContext(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	writePaginated(c, resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "unknown status filter", nil)
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	writePaginated(c, resp)
}

func (h *Handler) Approve(c *gin.Context) {
	resp, err := h.service.Approve(c.Request.Context(), c.Param("id"), actorFromContext(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), c.Param("id"), actorFromContext(c), req.RejectionReason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func writePaginated(c *gin.Context, resp []TripResponse) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}
