package expense_test

import (
	"context"
	"testing"

	"plugohris/internal/domain"
	"plugohris/internal/employee"
	"plugohris/internal/expense"
	expenseerrors "plugohris/internal/expense/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeExpenseRepository struct {
	createFn               func(ctx context.Context, gr *expense.GrabCodeRequest) error
	findByIDFn             func(ctx context.Context, id string) (*expense.GrabCodeRequest, error)
	findByEmployeeFn       func(ctx context.Context, employeeID string, status *expense.Status) ([]expense.GrabCodeRequest, error)
	findAllFn              func(ctx context.Context, status *expense.Status) ([]expense.GrabCodeRequest, error)
	findPendingByManagerFn func(ctx context.Context, managerID string) ([]expense.GrabCodeRequest, error)
	transitionStatusFn     func(ctx context.Context, id string, from, to expense.Status, actionedBy string, rejectionReason *string) (bool, error)
	findEmployeeFn         func(ctx context.Context, employeeID string) (*employee.Employee, error)
}

func (f *fakeExpenseRepository) Create(ctx context.Context, gr *expense.GrabCodeRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, gr)
	}
	return nil
}

func (f *fakeExpenseRepository) FindByID(ctx context.Context, id string) (*expense.GrabCodeRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeExpenseRepository) FindByEmployee(ctx context.Context, employeeID string, status *expense.Status) ([]expense.GrabCodeRequest, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID, status)
	}
	return nil, nil
}

func (f *fakeExpenseRepository) FindAll(ctx context.Context, status *expense.Status) ([]expense.GrabCodeRequest, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeExpenseRepository) FindPendingByManager(ctx context.Context, managerID string) ([]expense.GrabCodeRequest, error) {
	if f.findPendingByManagerFn != nil {
		return f.findPendingByManagerFn(ctx, managerID)
	}
	return nil, nil
}

func (f *fakeExpenseRepository) TransitionStatus(ctx context.Context, id string, from, to expense.Status, actionedBy string, rejectionReason *string) (bool, error) {
	if f.transitionStatusFn != nil {
		return f.transitionStatusFn(ctx, id, from, to, actionedBy, rejectionReason)
	}
	return true, nil
}

func (f *fakeExpenseRepository) FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if f.findEmployeeFn != nil {
		return f.findEmployeeFn(ctx, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func TestExpenseService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	validReq := expense.CreateGrabCodeRequest{
		Code:      "GRAB-2026-07",
		AmountIDR: "350000",
		Month:     "2026-07",
		Reason:    "Client visits",
	}

	stubEmployee := func() *employee.Employee {
		return &employee.Employee{ID: employeeID, FullName: "Budi Santoso"}
	}

	t.Run("success", func(t *testing.T) {
		repo := &fakeExpenseRepository{
			findEmployeeFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return stubEmployee(), nil
			},
			createFn: func(ctx context.Context, gr *expense.GrabCodeRequest) error {
				assert.Equal(t, employeeID, gr.EmployeeID)
				assert.Equal(t, "2026-07", gr.Month)
				assert.True(t, gr.AmountIDR.Equal(decimal.RequireFromString("350000")))
				assert.Equal(t, expense.StatusPending, gr.Status)
				return nil
			},
		}
		svc := expense.NewService(repo)

		resp, err := svc.Create(ctx, employeeID.String(), validReq)

		assert.NoError(t, err)
		assert.Equal(t, "350000.00", resp.AmountIDR)
		assert.Equal(t, string(expense.StatusPending), resp.Status)
	})

	t.Run("negative non-positive amount", func(t *testing.T) {
		svc := expense.NewService(&fakeExpenseRepository{})

		req := validReq
		req.AmountIDR = "-5"
		_, err := svc.Create(ctx, employeeID.String(), req)

		assert.ErrorIs(t, err, expenseerrors.ErrInvalidAmount)
	})

	t.Run("negative malformed month", func(t *testing.T) {
		svc := expense.NewService(&fakeExpenseRepository{})

		req := validReq
		req.Month = "July 2026"
		_, err := svc.Create(ctx, employeeID.String(), req)

		assert.ErrorIs(t, err, expenseerrors.ErrInvalidMonth)
	})

	t.Run("negative month already claimed", func(t *testing.T) {
		repo := &fakeExpenseRepository{
			findEmployeeFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return stubEmployee(), nil
			},
			createFn: func(ctx context.Context, gr *expense.GrabCodeRequest) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_grab_code_employee_month"}
			},
		}
		svc := expense.NewService(repo)

		_, err := svc.Create(ctx, employeeID.String(), validReq)

		assert.ErrorIs(t, err, expenseerrors.ErrMonthAlreadyClaimed)
	})
}

func TestExpenseService_ApproveReject(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	managerID := uuid.New()

	pendingRequest := func() *expense.GrabCodeRequest {
		mgr := managerID
		return &expense.GrabCodeRequest{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Code:       "GRAB-2026-07",
			AmountIDR:  decimal.RequireFromString("350000"),
			Month:      "2026-07",
			Status:     expense.StatusPending,
			Employee:   &employee.Employee{ID: employeeID, ManagerID: &mgr, FullName: "Budi Santoso"},
		}
	}

	t.Run("manager approves own report", func(t *testing.T) {
		gr := pendingRequest()
		repo := &fakeExpenseRepository{
			findByIDFn: func(ctx context.Context, id string) (*expense.GrabCodeRequest, error) {
				return gr, nil
			},
			transitionStatusFn: func(ctx context.Context, id string, from, to expense.Status, actionedBy string, rejectionReason *string) (bool, error) {
				assert.Equal(t, expense.StatusApproved, to)
				assert.Equal(t, managerID.String(), actionedBy)
				return true, nil
			},
		}
		svc := expense.NewService(repo)

		resp, err := svc.Approve(ctx, gr.ID.String(), domain.Actor{
			EmployeeID: managerID.String(),
			Role:       domain.RoleManager,
		})

		assert.NoError(t, err)
		assert.Equal(t, string(expense.StatusApproved), resp.Status)
	})

	t.Run("negative foreign manager", func(t *testing.T) {
		gr := pendingRequest()
		repo := &fakeExpenseRepository{
			findByIDFn: func(ctx context.Context, id string) (*expense.GrabCodeRequest, error) {
				return gr, nil
			},
		}
		svc := expense.NewService(repo)

		_, err := svc.Approve(ctx, gr.ID.String(), domain.Actor{
			EmployeeID: uuid.New().String(),
			Role:       domain.RoleManager,
		})

		assert.ErrorIs(t, err, expenseerrors.ErrForbiddenApprover)
	})

	t.Run("negative already actioned", func(t *testing.T) {
		gr := pendingRequest()
		gr.Status = expense.StatusRejected
		repo := &fakeExpenseRepository{
			findByIDFn: func(ctx context.Context, id string) (*expense.GrabCodeRequest, error) {
				return gr, nil
			},
		}
		svc := expense.NewService(repo)

		_, err := svc.Approve(ctx, gr.ID.String(), domain.Actor{
			EmployeeID: managerID.String(),
			Role:       domain.RoleAdmin,
		})

		assert.ErrorIs(t, err, expenseerrors.ErrAlreadyActioned)
	})

	t.Run("reject requires a real reason", func(t *testing.T) {
		svc := expense.NewService(&fakeExpenseRepository{})

		_, err := svc.Reject(ctx, uuid.New().String(), domain.Actor{
			EmployeeID: managerID.String(),
			Role:       domain.RoleManager,
		}, "nope")

		assert.ErrorIs(t, err, expenseerrors.ErrRejectionReason)
	})

	t.Run("reject success", func(t *testing.T) {
		gr := pendingRequest()
		repo := &fakeExpenseRepository{
			findByIDFn: func(ctx context.Context, id string) (*expense.GrabCodeRequest, error) {
				return gr, nil
			},
			transitionStatusFn: func(ctx context.Context, id string, from, to expense.Status, actionedBy string, rejectionReason *string) (bool, error) {
				assert.Equal(t, expense.StatusRejected, to)
				assert.NotNil(t, rejectionReason)
				return true, nil
			},
		}
		svc := expense.NewService(repo)

		resp, err := svc.Reject(ctx, gr.ID.String(), domain.Actor{
			EmployeeID: managerID.String(),
			Role:       domain.RoleManager,
		}, "Monthly allowance already used up")

		assert.NoError(t, err)
		assert.Equal(t, string(expense.StatusRejected), resp.Status)
	})

}
