package expense

import (
	"context"
	"errors"
	"strings"
	"time"

	"plugohris/internal/domain"
	expenseerrors "plugohris/internal/expense/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minRejectionReasonLen = 10

//go:generate mockgen -source=expense_service.go -destination=mock/expense_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateGrabCodeRequest) (GrabCodeResponse, error)
	GetOwn(ctx context.Context, employeeID string, status *Status) ([]GrabCodeResponse, error)
	GetPendingForApprover(ctx context.Context, actor domain.Actor) ([]GrabCodeResponse, error)
	GetAll(ctx context.Context, status *Status) ([]GrabCodeResponse, error)
	Approve(ctx context.Context, id string, actor domain.Actor) (GrabCodeResponse, error)
	Reject(ctx context.Context, id string, actor domain.Actor, reason string) (GrabCodeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("expense.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("expense.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateGrabCodeRequest) (GrabCodeResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return GrabCodeResponse{}, expenseerrors.ErrEmployeeMissing
	}

	amount, err := decimal.NewFromString(req.AmountIDR)
	if err != nil || !amount.IsPositive() {
		return GrabCodeResponse{}, expenseerrors.ErrInvalidAmount
	}
	if _, err := time.Parse("2006-01", req.Month); err != nil {
		return GrabCodeResponse{}, expenseerrors.ErrInvalidMonth
	}

	emp, err := s.repo.FindEmployee(ctx, empID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GrabCodeResponse{}, expenseerrors.ErrEmployeeMissing
		}
		return GrabCodeResponse{}, err
	}

	gr := &GrabCodeRequest{
		ID:         uuid.New(),
		EmployeeID: empID,
		Code:       req.Code,
		AmountIDR:  amount,
		Month:      req.Month,
		Reason:     req.Reason,
		Status:     StatusPending,
	}
	if err := s.repo.Create(ctx, gr); err != nil {
		s.logger.Error("create grab code request persist failed", zap.Error(err))
		return GrabCodeResponse{}, mapRepositoryError(err)
	}

	gr.Employee = emp
	s.logger.Info("create grab code request success",
		zap.String("request_id", gr.ID.String()),
		zap.String("month", gr.Month),
	)
	return mapToResponse(*gr), nil
}

func (s *service) GetOwn(ctx context.Context, employeeID string, status *Status) ([]GrabCodeResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, expenseerrors.ErrEmployeeMissing
	}
	requests, err := s.repo.FindByEmployee(ctx, employeeID, status)
	if err != nil {
		return nil, err
	}
	return mapAll(requests), nil
}

func (s *service) GetPendingForApprover(ctx context.Context, actor domain.Actor) ([]GrabCodeResponse, error) {
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
		return nil, expenseerrors.ErrForbiddenApprover
	}
	return nil, expenseerrors.ErrForbiddenApprover
}

func (s *service) GetAll(ctx context.Context, status *Status) ([]GrabCodeResponse, error) {
	requests, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapAll(requests), nil
}

func (s *service) Approve(ctx context.Context, id string, actor domain.Actor) (GrabCodeResponse, error) {
	return s.action(ctx, id, actor, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, id string, actor domain.Actor, reason string) (GrabCodeResponse, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) < minRejectionReasonLen {
		return GrabCodeResponse{}, expenseerrors.ErrRejectionReason
	}
	return s.action(ctx, id, actor, StatusRejected, &reason)
}

func (s *service) action(ctx context.Context, id string, actor domain.Actor, to Status, rejectionReason *string) (GrabCodeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return GrabCodeResponse{}, expenseerrors.ErrInvalidRequestID
	}

	gr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GrabCodeResponse{}, expenseerrors.ErrRequestNotFound
		}
		return GrabCodeResponse{}, err
	}
	if gr.Status != StatusPending {
		return GrabCodeResponse{}, expenseerrors.ErrAlreadyActioned
	}
	if err := authorizeActor(gr, actor); err != nil {
		return GrabCodeResponse{}, err
	}

	moved, err := s.repo.TransitionStatus(ctx, id, StatusPending, to, actor.EmployeeID, rejectionReason)
	if err != nil {
		s.logger.Error("action grab code request failed", zap.Error(err))
		return GrabCodeResponse{}, err
	}
	if !moved {
		return GrabCodeResponse{}, expenseerrors.ErrAlreadyActioned
	}

	now := time.Now().UTC()
	gr.Status = to
	if approver, err := uuid.Parse(actor.EmployeeID); err == nil {
		gr.ApprovedBy = &approver
	}
	gr.ApprovedAt = &now
	gr.RejectionReason = rejectionReason

	s.logger.Info("action grab code request success",
		zap.String("request_id", id),
		zap.String("status", string(to)),
		zap.String("actioned_by", actor.EmployeeID),
	)
	return mapToResponse(*gr), nil
}

func authorizeActor(gr *GrabCodeRequest, actor domain.Actor) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleManager:
		if gr.Employee == nil || gr.Employee.ManagerID == nil {
			return expenseerrors.ErrForbiddenApprover
		}
		if gr.Employee.ManagerID.String() != actor.EmployeeID {
			return expenseerrors.ErrForbiddenApprover
		}
		return nil
	case domain.RoleEmployee:
		return expenseerrors.ErrForbiddenApprover
	}
	return expenseerrors.ErrForbiddenApprover
}

func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_grab_code_employee_month" {
			return expenseerrors.ErrMonthAlreadyClaimed
		}
	}
	return err
}

func mapAll(requests []GrabCodeRequest) []GrabCodeResponse {
	resp := make([]GrabCodeResponse, len(requests))
	for i, gr := range requests {
		resp[i] = mapToResponse(gr)
	}
	return resp
}

func mapToResponse(gr GrabCodeRequest) GrabCodeResponse {
	resp := GrabCodeResponse{
		ID:         gr.ID.String(),
		EmployeeID: gr.EmployeeID.String(),
		Code:       gr.Code,
		AmountIDR:  gr.AmountIDR.StringFixed(2),
		Month:      gr.Month,
		Reason:     gr.Reason,
		Status:     string(gr.Status),
		CreatedAt:  gr.CreatedAt.Format(time.RFC3339),
	}
	if gr.Employee != nil {
		resp.EmployeeName = gr.Employee.FullName
	}
	if gr.ApprovedBy != nil {
		v := gr.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if gr.ApprovedAt != nil {
		v := gr.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = gr.RejectionReason
	return resp
}
