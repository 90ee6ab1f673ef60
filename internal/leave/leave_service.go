package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"plugohris/internal/domain"
	"plugohris/internal/events"
	leaveerrors "plugohris/internal/leave/errors"
	"plugohris/internal/leavetype"
	"plugohris/internal/messaging/kafka"
	"plugohris/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minRejectionReasonLen = 10

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetOwn(ctx context.Context, employeeID string, status *Status) ([]LeaveResponse, error)
	GetPendingForApprover(ctx context.Context, actor domain.Actor) ([]LeaveResponse, error)
	GetAll(ctx context.Context, status *Status) ([]LeaveResponse, error)
	Approve(ctx context.Context, id string, actor domain.Actor) (LeaveResponse, error)
	Reject(ctx context.Context, id string, actor domain.Actor, reason string) (LeaveResponse, error)
	GetBalanceReport(ctx context.Context, employeeID string) (BalanceReportResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
	)

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrEmployeeMissing
	}
	typeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveTypeRef
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}

	lt, err := s.repo.FindLeaveType(ctx, typeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrInvalidLeaveTypeRef
		}
		return LeaveResponse{}, err
	}

	today := truncateToDate(time.Now())
	if start.Before(today) {
		return LeaveResponse{}, leaveerrors.ErrStartDateInPast
	}
	if end.Before(start) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	days := CountBusinessDays(start, end)
	if days < 1 {
		return LeaveResponse{}, leaveerrors.ErrEmptyRequest
	}

	emp, err := s.repo.FindEmployee(ctx, empID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeMissing
		}
		return LeaveResponse{}, err
	}

	if lt.Name == leavetype.AnnualLeaveName {
		requested := decimal.NewFromInt(int64(days))
		if emp.LeaveBalance.LessThan(requested) {
			return LeaveResponse{}, leaveerrors.ErrInsufficientBalance.WithDetails(map[string]any{
				"available": emp.LeaveBalance.String(),
				"requested": days,
			})
		}
	}

	overlaps, err := s.repo.HasOverlapping(ctx, empID.String(), start, end)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlaps {
		return LeaveResponse{}, leaveerrors.ErrOverlappingRequest
	}

	lr := &LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    empID,
		LeaveTypeID:   typeID,
		StartDate:     start,
		EndDate:       end,
		DaysRequested: days,
		Reason:        req.Reason,
		DocumentLinks: req.DocumentLinks,
		Status:        StatusPending,
	}
	if err := s.repo.Create(ctx, lr); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	lr.Employee = emp
	lr.LeaveType = lt
	s.logger.Info("create leave success",
		zap.String("leave_id", lr.ID.String()),
		zap.Int("days_requested", days),
	)
	return mapToResponse(*lr), nil
}

func (s *service) GetOwn(ctx context.Context, employeeID string, status *Status) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrEmployeeMissing
	}
	requests, err := s.repo.FindByEmployee(ctx, employeeID, status)
	if err != nil {
		return nil, err
	}
	return mapAll(requests), nil
}

func (s *service) GetPendingForApprover(ctx context.Context, actor domain.Actor) ([]LeaveResponse, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		pending := StatusPending
		requests, err := s.repo.FindAll(ctx, &pending)
		if err != nil {
			return nil, err
		}
		return mapAll(requests), nil
	case domain.RoleManager:
		requests, err := s.repo.FindPendingByManager(ctx, actor.EmployeeID)
		if err != nil {
			return nil, err
		}
		return mapAll(requests), nil
	case domain.RoleEmployee:
		return nil, leaveerrors.ErrForbiddenApprover
	}
	return nil, leaveerrors.ErrForbiddenApprover
}

func (s *service) GetAll(ctx context.Context, status *Status) ([]LeaveResponse, error) {
	requests, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapAll(requests), nil
}

func (s *service) Approve(ctx context.Context, id string, actor domain.Actor) (LeaveResponse, error) {
	return s.action(ctx, id, actor, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, id string, actor domain.Actor, reason string) (LeaveResponse, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) < minRejectionReasonLen {
		return LeaveResponse{}, leaveerrors.ErrRejectionReason
	}
	return s.action(ctx, id, actor, StatusRejected, &reason)
}

// action runs the shared approval gate. The status transition and, for
// approvals of the annual type, the balance deduction commit together;
// the guarded update makes a concurrent second action fail cleanly.
func (s *service) action(ctx context.Context, id string, actor domain.Actor, to Status, rejectionReason *string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !lr.Status.CanTransitionTo(to) {
		return LeaveResponse{}, leaveerrors.ErrAlreadyActioned
	}
	if err := s.authorizeActor(lr, actor); err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("action leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	moved, err := qtx.TransitionStatus(ctx, id, StatusPending, to, actor.EmployeeID, rejectionReason)
	if err != nil {
		s.logger.Error("action leave transition failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !moved {
		return LeaveResponse{}, leaveerrors.ErrAlreadyActioned
	}

	if to == StatusApproved && lr.LeaveType != nil && lr.LeaveType.Name == leavetype.AnnualLeaveName {
		if err := qtx.DeductBalance(ctx, lr.EmployeeID.String(), lr.DaysRequested); err != nil {
			s.logger.Error("action leave balance deduction failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if s.outbox != nil {
		if err := s.enqueueActionedEvent(ctx, tx, lr, to, actor); err != nil {
			s.logger.Error("enqueue leave actioned event failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("action leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	now := time.Now().UTC()
	approver := actor.EmployeeID
	lr.Status = to
	lr.ApprovedBy = mustParseUUIDPtr(approver)
	lr.ApprovedAt = &now
	lr.RejectionReason = rejectionReason

	s.logger.Info("action leave success",
		zap.String("leave_id", id),
		zap.String("status", string(to)),
		zap.String("actioned_by", approver),
	)
	return mapToResponse(*lr), nil
}

// authorizeActor is the role gate. The switch is exhaustive over Role
// so adding a role forces a decision here.
func (s *service) authorizeActor(lr *LeaveRequest, actor domain.Actor) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleManager:
		if lr.Employee == nil || lr.Employee.ManagerID == nil {
			return leaveerrors.ErrForbiddenApprover
		}
		if lr.Employee.ManagerID.String() != actor.EmployeeID {
			return leaveerrors.ErrForbiddenApprover
		}
		return nil
	case domain.RoleEmployee:
		return leaveerrors.ErrForbiddenApprover
	}
	return leaveerrors.ErrForbiddenApprover
}

func (s *service) enqueueActionedEvent(ctx context.Context, tx *sql.Tx, lr *LeaveRequest, to Status, actor domain.Actor) error {
	typeName := ""
	if lr.LeaveType != nil {
		typeName = lr.LeaveType.Name
	}
	eventType := "leave_approved"
	if to == StatusRejected {
		eventType = "leave_rejected"
	}
	event := events.LeaveActionedEvent{
		EventType:     eventType,
		LeaveID:       lr.ID.String(),
		EmployeeID:    lr.EmployeeID.String(),
		LeaveTypeName: typeName,
		Status:        string(to),
		DaysRequested: lr.DaysRequested,
		ActionedBy:    actor.EmployeeID,
		OccurredAt:    time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   lr.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetBalanceReport(ctx context.Context, employeeID string) (BalanceReportResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceReportResponse{}, leaveerrors.ErrEmployeeMissing
	}
	emp, err := s.repo.FindEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceReportResponse{}, leaveerrors.ErrEmployeeMissing
		}
		return BalanceReportResponse{}, err
	}
	consumed, err := s.repo.SumApprovedDays(ctx, employeeID)
	if err != nil {
		return BalanceReportResponse{}, err
	}
	usable := emp.LeaveBalance.Sub(decimal.NewFromInt(int64(consumed)))
	return BalanceReportResponse{
		EmployeeID:      employeeID,
		EntitledBalance: emp.LeaveBalance.String(),
		DaysConsumed:    consumed,
		UsableBalance:   usable.String(),
	}, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func mustParseUUIDPtr(s string) *uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func mapAll(requests []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(requests))
	for i, lr := range requests {
		resp[i] = mapToResponse(lr)
	}
	return resp
}

func mapToResponse(lr LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:            lr.ID.String(),
		EmployeeID:    lr.EmployeeID.String(),
		LeaveTypeID:   lr.LeaveTypeID.String(),
		StartDate:     lr.StartDate.Format("2006-01-02"),
		EndDate:       lr.EndDate.Format("2006-01-02"),
		DaysRequested: lr.DaysRequested,
		Reason:        lr.Reason,
		DocumentLinks: lr.DocumentLinks,
		Status:        string(lr.Status),
		CreatedAt:     lr.CreatedAt.Format(time.RFC3339),
	}
	if lr.Employee != nil {
		resp.EmployeeName = lr.Employee.FullName
	}
	if lr.LeaveType != nil {
		resp.LeaveTypeName = lr.LeaveType.Name
	}
	if lr.ApprovedBy != nil {
		v := lr.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if lr.ApprovedAt != nil {
		v := lr.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = lr.RejectionReason
	return resp
}
