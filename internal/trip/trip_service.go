package trip

import (
	"context"
	"errors"
	"strings"
	"time"

	"plugohris/internal/domain"
	triperrors "plugohris/internal/trip/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minRejectionReasonLen = 10

//go:generate mockgen -source=trip_service.go -destination=mock/trip_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateTripRequest) (TripResponse, error)
	GetOwn(ctx context.Context, employeeID string, status *Status) ([]TripResponse, error)
	GetPendingForApprover(ctx context.Context, actor domain.Actor) ([]TripResponse, error)
	GetAll(ctx context.Context, status *Status) ([]TripResponse, error)
	Approve(ctx context.Context, id string, actor domain.Actor) (TripResponse, error)
	Reject(ctx context.Context, id string, actor domain.Actor, reason string) (TripResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("trip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("trip.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateTripRequest) (TripResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return TripResponse{}, triperrors.ErrEmployeeMissing
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return TripResponse{}, triperrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return TripResponse{}, triperrors.ErrInvalidDateFormat
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(today) {
		return TripResponse{}, triperrors.ErrStartDateInPast
	}
	if end.Before(start) {
		return TripResponse{}, triperrors.ErrInvalidDateRange
	}

	cost, err := decimal.NewFromString(req.EstimatedCost)
	if err != nil || !cost.IsPositive() {
		return TripResponse{}, triperrors.ErrInvalidCost
	}

	emp, err := s.repo.FindEmployee(ctx, empID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TripResponse{}, triperrors.ErrEmployeeMissing
		}
		return TripResponse{}, err
	}

	bt := &BusinessTrip{
		ID:            uuid.New(),
		EmployeeID:    empID,
		Destination:   req.Destination,
		Purpose:       req.Purpose,
		StartDate:     start,
		EndDate:       end,
		EstimatedCost: cost,
		Status:        StatusPending,
	}
	if err := s.repo.Create(ctx, bt); err != nil {
		s.logger.Error("create business trip persist failed", zap.Error(err))
		return TripResponse{}, err
	}

	bt.Employee = emp
	s.logger.Info("create business trip success",
		zap.String("trip_id", bt.ID.String()),
		zap.String("destination", bt.Destination),
	)
	return mapToResponse(*bt), nil
}

func (s *service) GetOwn(ctx context.Context, employeeID string, status *Status) ([]TripResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, triperrors.ErrEmployeeMissing
	}
	trips, err := s.repo.FindByEmployee(ctx, employeeID, status)
	if err != nil {
		return nil, err
	}
	return mapAll(trips), nil
}

func (s *service) GetPendingForApprover(ctx context.Context, actor domain.Actor) ([]TripResponse, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		pending := StatusPending
		trips, err := s.repo.FindAll(ctx, &pending)
		if err != nil {
			return nil, err
		}
		return mapAll(trips), nil
	case domain.RoleManager:
		trips, err := s.repo.FindPendingByManager(ctx, actor.EmployeeID)
		if err != nil {
			return nil, err
		}
		return mapAll(trips), nil
	case domain.RoleEmployee:
		return nil, triperrors.ErrForbiddenApprover
	}
	return nil, triperrors.ErrForbiddenApprover
}

func (s *service) GetAll(ctx context.Context, status *Status) ([]TripResponse, error) {
	trips, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapAll(trips), nil
}

func (s *service) Approve(ctx context.Context, id string, actor domain.Actor) (TripResponse, error) {
	return s.action(ctx, id, actor, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, id string, actor domain.Actor, reason string) (TripResponse, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) < minRejectionReasonLen {
		return TripResponse{}, triperrors.ErrRejectionReason
	}
	return s.action(ctx, id, actor, StatusRejected, &reason)
}

func (s *service) action(ctx context.Context, id string, actor domain.Actor, to Status, rejectionReason *string) (TripResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TripResponse{}, triperrors.ErrInvalidTripID
	}

	bt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TripResponse{}, triperrors.ErrTripNotFound
		}
		return TripResponse{}, err
	}
	if bt.Status != StatusPending {
		return TripResponse{}, triperrors.ErrAlreadyActioned
	}
	if err := authorizeActor(bt, actor); err != nil {
		return TripResponse{}, err
	}

	moved, err := s.repo.TransitionStatus(ctx, id, StatusPending, to, actor.EmployeeID, rejectionReason)
	if err != nil {
		s.logger.Error("action business trip failed", zap.Error(err))
		return TripResponse{}, err
	}
	if !moved {
		return TripResponse{}, triperrors.ErrAlreadyActioned
	}

	now := time.Now().UTC()
	bt.Status = to
	if approver, err := uuid.Parse(actor.EmployeeID); err == nil {
		bt.ApprovedBy = &approver
	}
	bt.ApprovedAt = &now
	bt.RejectionReason = rejectionReason

	s.logger.Info("action business trip success",
		zap.String("trip_id", id),
		zap.String("status", string(to)),
		zap.String("actioned_by", actor.EmployeeID),
	)
	return mapToResponse(*bt), nil
}

func authorizeActor(bt *BusinessTrip, actor domain.Actor) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleManager:
		if bt.Employee == nil || bt.Employee.ManagerID == nil {
			return triperrors.ErrForbiddenApprover
		}
		if bt.Employee.ManagerID.String() != actor.EmployeeID {
			return triperrors.ErrForbiddenApprover
		}
		return nil
	case domain.RoleEmployee:
		return triperrors.ErrForbiddenApprover
	}
	return triperrors.ErrForbiddenApprover
}

func mapAll(trips []BusinessTrip) []TripResponse {
	resp := make([]TripResponse, len(trips))
	for i, bt := range trips {
		resp[i] = mapToResponse(bt)
	}
	return resp
}

func mapToResponse(bt BusinessTrip) TripResponse {
	resp := TripResponse{
		ID:            bt.ID.String(),
		EmployeeID:    bt.EmployeeID.String(),
		Destination:   bt.Destination,
		Purpose:       bt.Purpose,
		StartDate:     bt.StartDate.Format("2006-01-02"),
		EndDate:       bt.EndDate.Format("2006-01-02"),
		EstimatedCost: bt.EstimatedCost.StringFixed(2),
		Status:        string(bt.Status),
		CreatedAt:     bt.CreatedAt.Format(time.RFC3339),
	}
	if bt.Employee != nil {
		resp.EmployeeName = bt.Employee.FullName
	}
	if bt.ApprovedBy != nil {
		v := bt.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if bt.ApprovedAt != nil {
		v := bt.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = bt.RejectionReason
	return resp
}
