package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	employeeerrors "plugohris/internal/employee/errors"
	"plugohris/internal/events"
	"plugohris/internal/messaging/kafka"
	"plugohris/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
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
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("create employee requested",
		zap.String("email", req.Email),
		zap.String("employment_type", req.EmploymentType),
	)

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidStartDate
	}

	managerID, err := parseOptionalUUID(req.ManagerID, employeeerrors.ErrInvalidManagerID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	departmentID, err := parseOptionalUUID(req.DepartmentID, employeeerrors.ErrInvalidDepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if managerID != nil {
		if _, err := s.repo.FindByID(ctx, managerID.String()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return EmployeeResponse{}, employeeerrors.ErrManagerNotFound
			}
			return EmployeeResponse{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	e := &Employee{
		ID:             uuid.New(),
		DepartmentID:   departmentID,
		ManagerID:      managerID,
		FullName:       req.FullName,
		Email:          req.Email,
		EmploymentType: req.EmploymentType,
		StartDate:      startDate,
		Status:         StatusActive,
		LeaveBalance:   decimal.Zero,
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		if err := s.enqueueCreatedEvent(ctx, tx, e); err != nil {
			s.logger.Error("enqueue employee created event failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success", zap.String("employee_id", e.ID.String()))
	return mapToResponse(*e), nil
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *sql.Tx, e *Employee) error {
	event := events.EmployeeCreatedEvent{
		EventType:      "employee_created",
		EmployeeID:     e.ID.String(),
		EmploymentType: e.EmploymentType,
		StartDate:      e.StartDate.Format("2006-01-02"),
		OccurredAt:     time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   e.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidStartDate
	}
	managerID, err := parseOptionalUUID(req.ManagerID, employeeerrors.ErrInvalidManagerID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	departmentID, err := parseOptionalUUID(req.DepartmentID, employeeerrors.ErrInvalidDepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	e.FullName = req.FullName
	e.Email = req.Email
	e.EmploymentType = req.EmploymentType
	e.StartDate = startDate
	e.Status = req.Status
	e.ManagerID = managerID
	e.DepartmentID = departmentID

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return s.repo.Delete(ctx, id)
}

func parseOptionalUUID(v *string, invalid error) (*uuid.UUID, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil, invalid
	}
	return &id, nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             e.ID.String(),
		FullName:       e.FullName,
		Email:          e.Email,
		EmploymentType: e.EmploymentType,
		StartDate:      e.StartDate.Format("2006-01-02"),
		Status:         e.Status,
		LeaveBalance:   e.LeaveBalance.String(),
	}
	if e.ManagerID != nil {
		v := e.ManagerID.String()
		resp.ManagerID = &v
	}
	if e.DepartmentID != nil {
		v := e.DepartmentID.String()
		resp.DepartmentID = &v
	}
	return resp
}
