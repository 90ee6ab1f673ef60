package trip

import (
	"context"
	"time"

	"plugohris/internal/employee"

	"gorm.io/gorm"
)

//go:generate mockgen -source=trip_repo.go -destination=mock/trip_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, bt *BusinessTrip) error
	FindByID(ctx context.Context, id string) (*BusinessTrip, error)
	FindByEmployee(ctx context.Context, employeeID string, status *Status) ([]BusinessTrip, error)
	FindAll(ctx context.Context, status *Status) ([]BusinessTrip, error)
	FindPendingByManager(ctx context.Context, managerID string) ([]BusinessTrip, error)
	TransitionStatus(ctx context.Context, id string, from, to Status, actionedBy string, rejectionReason *string) (bool, error)
	FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, bt *BusinessTrip) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(bt).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*BusinessTrip, error) {
	var bt BusinessTrip
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&bt, "id = ?", id).Error
	return &bt, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, status *Status) ([]BusinessTrip, error) {
	q := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var trips []BusinessTrip
	err := q.Order("start_date DESC").Find(&trips).Error
	return trips, err
}

func (r *repository) FindAll(ctx context.Context, status *Status) ([]BusinessTrip, error) {
	q := r.db.WithContext(ctx).Preload("Employee")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var trips []BusinessTrip
	err := q.Order("created_at DESC").Find(&trips).Error
	return trips, err
}

func (r *repository) FindPendingByManager(ctx context.Context, managerID string) ([]BusinessTrip, error) {
	var trips []BusinessTrip
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Joins("JOIN employees ON employees.id = business_trips.employee_id").
		Where("employees.manager_id = ?", managerID).
		Where("business_trips.status = ?", StatusPending).
		Order("business_trips.created_at ASC").
		Find(&trips).Error
	return trips, err
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
		Model(&BusinessTrip{}).
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
