package accrual

import (
	"context"
	"time"

	"plugohris/internal/employee"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=accrual_repo.go -destination=mock/accrual_repo_mock.go -package=mock
type Repository interface {
	ListActiveEmployees(ctx context.Context) ([]employee.Employee, error)
	UpdateBalance(ctx context.Context, employeeID string, balance decimal.Decimal) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActiveEmployees(ctx context.Context) ([]employee.Employee, error) {
	var employees []employee.Employee
	err := r.db.WithContext(ctx).
		Where("status = ?", employee.StatusActive).
		Order("start_date ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) UpdateBalance(ctx context.Context, employeeID string, balance decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("id = ?", employeeID).
		Updates(map[string]any{
			"leave_balance": balance,
			"updated_at":    time.Now().UTC(),
		}).Error
}
