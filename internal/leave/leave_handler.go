package leave

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"plugohris/internal/domain"
	"plugohris/internal/middleware"
	"plugohris/internal/shared/apperror"
	"plugohris/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const balanceReportTTL = 2 * time.Minute

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
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
	status, ok := ParseStatus(raw)
	if !ok {
		return nil, false
	}
	return &status, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLeaveRequest
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
	h.invalidateBalanceCache(c, resp.EmployeeID)
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
	h.invalidateBalanceCache(c, resp.EmployeeID)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectLeaveRequest
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

// GetBalanceReport serves the caller's own balance view, cached briefly
// in redis because the sum over approved requests is a table scan.
func (h *Handler) GetBalanceReport(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	cacheKey := fmt.Sprintf("leave:balance:%s", employeeID)

	if h.rdb != nil {
		if cached, err := h.rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var resp BalanceReportResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				response.Success(c, http.StatusOK, resp, nil)
				return
			}
		}
	}

	resp, err := h.service.GetBalanceReport(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := h.rdb.Set(c.Request.Context(), cacheKey, payload, balanceReportTTL).Err(); err != nil {
				h.logger.Warn("balance report cache write failed", zap.Error(err))
			}
		}
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) invalidateBalanceCache(c *gin.Context, employeeID string) {
	if h.rdb == nil || employeeID == "" {
		return
	}
	cacheKey := fmt.Sprintf("leave:balance:%s", employeeID)
	if err := h.rdb.Del(c.Request.Context(), cacheKey).Err(); err != nil {
		h.logger.Warn("balance report cache invalidation failed", zap.Error(err))
	}
}

func writePaginated(c *gin.Context, resp []LeaveResponse) {
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
