package expense

import (
	"context"
	"time"

	"plugohris/internal/employee"

	"gorm.io/gorm"
)

//go:generate mockgen -source=expense_repo.go -destination=mock/expense_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, gr *GrabCodeRequest) error
	FindByID(ctx context.Context, id string) (*GrabCodeRequest, error)
	FindByEmployee(ctx context.Context, employeeID string, status *Status) ([]GrabCodeRequest, error)
	FindAll(ctx context.Context, status *Status) ([]GrabCodeRequest, error)
	FindPendingByManager(ctx context.Context, managerID string) ([]GrabCodeRequest, error)
	TransitionStatus(ctx context.Context, id string, from, to Status, actionedBy string, rejectionReason *string) (bool, error)
	FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, gr *GrabCodeRequest) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(gr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*GrabCodeRequest, error) {
	var gr GrabCodeRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&gr, "id = ?", id).Error
	return &gr, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, status *Status) ([]GrabCodeRequest, error) {
	q := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var requests []GrabCodeRequest
	err := q.Order("month DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindAll(ctx context.Context, status *Status) ([]GrabCodeRequest, error) {
	q := r.db.WithContext(ctx).Preload("Employee")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var requests []GrabCodeRequest
	err := q.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindPendingByManager(ctx context.Context, managerID string) ([]GrabCodeRequest, error) {
	var requests []GrabCodeRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Joins("JOIN employees ON employees.id = grab_code_requests.employee_id").
		Where("employees.manager_id = ?", managerID).
		Where("grab_code_requests.status = ?", StatusPending).
		Order("grab_code_requests.created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) TransitionStatus(ctx context.Context, id string, from, to Status, actionedBy string, rejectionReason *string) (bool, error) {
	now := time.Now().UTC()
	updates := map[string]any{
		"status":      to,
		"approved_by": actionedBy,
		"approved_at": now,
		"updated_at":  now,
	}
	if rejectionReason != nil {
		updates["rejection_reason"] = *rejectionReason
	}
	res := r.db.WithContext(ctx).
		Model(&GrabCodeRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error) {
	var e employee.Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", employeeID).Error
	return &e, err
}
