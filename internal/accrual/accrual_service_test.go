package accrual_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"plugohris/internal/accrual"
	"plugohris/internal/employee"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeAccrualRepository struct {
	listActiveEmployeesFn func(ctx context.Context) ([]employee.Employee, error)
	updateBalanceFn       func(ctx context.Context, employeeID string, balance decimal.Decimal) error
}

func (f *fakeAccrualRepository) ListActiveEmployees(ctx context.Context) ([]employee.Employee, error) {
	if f.listActiveEmployeesFn != nil {
		return f.listActiveEmployeesFn(ctx)
	}
	return nil, nil
}

func (f *fakeAccrualRepository) UpdateBalance(ctx context.Context, employeeID string, balance decimal.Decimal) error {
	if f.updateBalanceFn != nil {
		return f.updateBalanceFn(ctx, employeeID, balance)
	}
	return nil
}

func TestEntitledBalance(t *testing.T) {
	tests := []struct {
		name           string
		startDate      string
		employmentType string
		asOf           string
		want           string
	}{
		{"permanent two months tenure", "2024-01-10", employee.TypePermanent, "2024-04-10", "2.5"},
		{"contract two months tenure", "2024-01-10", employee.TypeContract, "2024-04-10", "2"},
		{"permanent eleven months", "2024-01-01", employee.TypePermanent, "2024-12-31", "13.75"},
		{"joined this month before the 16th", "2024-04-10", employee.TypePermanent, "2024-04-20", "1.25"},
		{"joined this month on the 16th", "2024-04-16", employee.TypeContract, "2024-04-20", "1"},
		{"joined this month after the 16th", "2024-04-17", employee.TypePermanent, "2024-04-20", "0"},
		{"starts in the future", "2025-01-01", employee.TypePermanent, "2024-04-20", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := accrual.EntitledBalance(day(tc.startDate), tc.employmentType, day(tc.asOf))
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"want %s, got %s", tc.want, got.String())
		})
	}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAccrualService_Recalculate(t *testing.T) {
	ctx := context.Background()

	newEmployee := func(start string, employmentType string, balance string) employee.Employee {
		return employee.Employee{
			ID:             uuid.New(),
			FullName:       "Budi Santoso",
			EmploymentType: employmentType,
			StartDate:      day(start),
			Status:         employee.StatusActive,
			LeaveBalance:   decimal.RequireFromString(balance),
		}
	}

	t.Run("overwrites stale balances and reports deltas", func(t *testing.T) {
		stale := newEmployee("2024-01-10", employee.TypePermanent, "0")
		current := newEmployee("2024-01-10", employee.TypeContract, "2")

		updates := map[string]decimal.Decimal{}
		repo := &fakeAccrualRepository{
			listActiveEmployeesFn: func(ctx context.Context) ([]employee.Employee, error) {
				return []employee.Employee{stale, current}, nil
			},
			updateBalanceFn: func(ctx context.Context, employeeID string, balance decimal.Decimal) error {
				updates[employeeID] = balance
				return nil
			},
		}
		svc := accrual.NewService(repo, nil)

		result, err := svc.Recalculate(ctx, day("2024-04-10"))

		assert.NoError(t, err)
		assert.Equal(t, 1, result.UpdatedCount)
		assert.Len(t, result.Deltas, 1)
		assert.Equal(t, stale.ID.String(), result.Deltas[0].EmployeeID)
		assert.Equal(t, "0", result.Deltas[0].Before)
		assert.Equal(t, "2.5", result.Deltas[0].After)
		assert.True(t, updates[stale.ID.String()].Equal(decimal.RequireFromString("2.5")))
		_, touched := updates[current.ID.String()]
		assert.False(t, touched, "matching balance must not be rewritten")
	})

	t.Run("second run with same inputs writes nothing", func(t *testing.T) {
		e := newEmployee("2024-01-10", employee.TypePermanent, "0")
		repo := &fakeAccrualRepository{
			listActiveEmployeesFn: func(ctx context.Context) ([]employee.Employee, error) {
				return []employee.Employee{e}, nil
			},
			updateBalanceFn: func(ctx context.Context, employeeID string, balance decimal.Decimal) error {
				e.LeaveBalance = balance
				return nil
			},
		}
		svc := accrual.NewService(repo, nil)

		first, err := svc.Recalculate(ctx, day("2024-04-10"))
		assert.NoError(t, err)
		assert.Equal(t, 1, first.UpdatedCount)

		second, err := svc.Recalculate(ctx, day("2024-04-10"))
		assert.NoError(t, err)
		assert.Equal(t, 0, second.UpdatedCount)
		assert.Empty(t, second.Deltas)
	})

	t.Run("one failing row does not abort the run", func(t *testing.T) {
		broken := newEmployee("2024-01-10", employee.TypePermanent, "0")
		fine := newEmployee("2023-01-10", employee.TypeContract, "0")

		repo := &fakeAccrualRepository{
			listActiveEmployeesFn: func(ctx context.Context) ([]employee.Employee, error) {
				return []employee.Employee{broken, fine}, nil
			},
			updateBalanceFn: func(ctx context.Context, employeeID string, balance decimal.Decimal) error {
				if employeeID == broken.ID.String() {
					return errors.New("row lock timeout")
				}
				return nil
			},
		}
		svc := accrual.NewService(repo, nil)

		result, err := svc.Recalculate(ctx, day("2024-04-10"))

		assert.NoError(t, err)
		assert.Equal(t, 1, result.UpdatedCount)
		assert.Equal(t, 1, result.SkippedCount)
	})

	t.Run("negative list failure", func(t *testing.T) {
		repo := &fakeAccrualRepository{
			listActiveEmployeesFn: func(ctx context.Context) ([]employee.Employee, error) {
				return nil, errors.New("db down")
			},
		}
		svc := accrual.NewService(repo, nil)

		_, err := svc.Recalculate(ctx, day("2024-04-10"))

		assert.Error(t, err)
	})
}
