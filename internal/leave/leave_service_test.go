package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"plugohris/internal/domain"
	"plugohris/internal/employee"
	"plugohris/internal/leave"
	leaveerrors "plugohris/internal/leave/errors"
	"plugohris/internal/leavetype"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn               func(tx *sql.Tx) leave.Repository
	createFn               func(ctx context.Context, lr *leave.LeaveRequest) error
	findByIDFn             func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	findByEmployeeFn       func(ctx context.Context, employeeID string, status *leave.Status) ([]leave.LeaveRequest, error)
	findAllFn              func(ctx context.Context, status *leave.Status) ([]leave.LeaveRequest, error)
	findPendingByManagerFn func(ctx context.Context, managerID string) ([]leave.LeaveRequest, error)
	hasOverlappingFn       func(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	transitionStatusFn     func(ctx context.Context, id string, from, to leave.Status, actionedBy string, rejectionReason *string) (bool, error)
	deductBalanceFn        func(ctx context.Context, employeeID string, days int) error
	sumApprovedDaysFn      func(ctx context.Context, employeeID string) (int, error)
	findEmployeeFn         func(ctx context.Context, employeeID string) (*employee.Employee, error)
	findLeaveTypeFn        func(ctx context.Context, leaveTypeID string) (*leavetype.LeaveType, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, lr *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, lr)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByEmployee(ctx context.Context, employeeID string, status *leave.Status) ([]leave.LeaveRequest, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID, status)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context, status *leave.Status) ([]leave.LeaveRequest, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindPendingByManager(ctx context.Context, managerID string) ([]leave.LeaveRequest, error) {
	if f.findPendingByManagerFn != nil {
		return f.findPendingByManagerFn(ctx, managerID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	if f.hasOverlappingFn != nil {
		return f.hasOverlappingFn(ctx, employeeID, start, end)
	}
	return false, nil
}

func (f *fakeLeaveRepository) TransitionStatus(ctx context.Context, id string, from, to leave.Status, actionedBy string, rejectionReason *string) (bool, error) {
	if f.transitionStatusFn != nil {
		return f.transitionStatusFn(ctx, id, from, to, actionedBy, rejectionReason)
	}
	return true, nil
}

func (f *fakeLeaveRepository) DeductBalance(ctx context.Context, employeeID string, days int) error {
	if f.deductBalanceFn != nil {
		return f.deductBalanceFn(ctx, employeeID, days)
	}
	return nil
}

func (f *fakeLeaveRepository) SumApprovedDays(ctx context.Context, employeeID string) (int, error) {
	if f.sumApprovedDaysFn != nil {
		return f.sumApprovedDaysFn(ctx, employeeID)
	}
	return 0, nil
}

func (f *fakeLeaveRepository) FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if f.findEmployeeFn != nil {
		return f.findEmployeeFn(ctx, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindLeaveType(ctx context.Context, leaveTypeID string) (*leavetype.LeaveType, error) {
	if f.findLeaveTypeFn != nil {
		return f.findLeaveTypeFn(ctx, leaveTypeID)
	}
	return nil, gorm.ErrRecordNotFound
}

type leaveServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leave.Service
	repo    *fakeLeaveRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	svc := leave.NewService(db, repo)

	return &leaveServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func annualLeaveType(id uuid.UUID) *leavetype.LeaveType {
	return &leavetype.LeaveType{ID: id, Name: leavetype.AnnualLeaveName, RequiresApproval: true}
}

func activeEmployee(id uuid.UUID, balance string) *employee.Employee {
	return &employee.Employee{
		ID:             id,
		FullName:       "Budi Santoso",
		EmploymentType: employee.TypePermanent,
		Status:         employee.StatusActive,
		LeaveBalance:   decimal.RequireFromString(balance),
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	leaveTypeID := uuid.New()

	// Mon 2027-03-01 through Fri 2027-03-05 is a full business week.
	validReq := leave.CreateLeaveRequest{
		LeaveTypeID: leaveTypeID.String(),
		StartDate:   "2027-03-01",
		EndDate:     "2027-03-05",
		Reason:      "Family event",
	}

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findLeaveTypeFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			assert.Equal(t, leaveTypeID.String(), id)
			return annualLeaveType(leaveTypeID), nil
		}
		deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return activeEmployee(employeeID, "10"), nil
		}
		deps.repo.createFn = func(ctx context.Context, lr *leave.LeaveRequest) error {
			assert.Equal(t, employeeID, lr.EmployeeID)
			assert.Equal(t, leaveTypeID, lr.LeaveTypeID)
			assert.Equal(t, 5, lr.DaysRequested)
			assert.Equal(t, leave.StatusPending, lr.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, employeeID.String(), validReq)

		assert.NoError(t, err)
		assert.Equal(t, 5, resp.DaysRequested)
		assert.Equal(t, string(leave.StatusPending), resp.Status)
		assert.Equal(t, leavetype.AnnualLeaveName, resp.LeaveTypeName)
		assert.Equal(t, "Budi Santoso", resp.EmployeeName)
	})

	t.Run("negative unknown leave type", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findLeaveTypeFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Create(ctx, employeeID.String(), validReq)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveTypeRef)
	})

	t.Run("negative start date in past", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findLeaveTypeFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return annualLeaveType(leaveTypeID), nil
		}

		req := validReq
		req.StartDate = "2020-01-06"
		req.EndDate = "2020-01-07"

		_, err := deps.service.Create(ctx, employeeID.String(), req)

		assert.ErrorIs(t, err, leaveerrors.ErrStartDateInPast)
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findLeaveTypeFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return annualLeaveType(leaveTypeID), nil
		}

		req := validReq
		req.StartDate = "2027-03-05"
		req.EndDate = "2027-03-01"

		_, err := deps.service.Create(ctx, employeeID.String(), req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative weekend only range", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findLeaveTypeFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return annualLeaveType(leaveTypeID), nil
		}

		// Sat 2027-03-06 and Sun 2027-03-07.
		req := validReq
		req.StartDate = "2027-03-06"
		req.EndDate = "2027-03-07"

		_, err := deps.service.Create(ctx, employeeID.String(), req)

		assert.ErrorIs(t, err, leaveerrors.ErrEmptyRequest)
	})

	t.Run("negative insufficient balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findLeaveTypeFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return annualLeaveType(leaveTypeID), nil
		}
		deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return activeEmployee(employeeID, "3"), nil
		}

		_, err := deps.service.Create(ctx, employeeID.String(), validReq)

		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
	})

	t.Run("non-annual type skips balance check", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findLeaveTypeFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: leaveTypeID, Name: "Sick Leave"}, nil
		}
		deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return activeEmployee(employeeID, "0"), nil
		}

		resp, err := deps.service.Create(ctx, employeeID.String(), validReq)

		assert.NoError(t, err)
		assert.Equal(t, "Sick Leave", resp.LeaveTypeName)
	})

	t.Run("negative overlapping request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findLeaveTypeFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return annualLeaveType(leaveTypeID), nil
		}
		deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return activeEmployee(employeeID, "10"), nil
		}
		deps.repo.hasOverlappingFn = func(ctx context.Context, eid string, start, end time.Time) (bool, error) {
			assert.Equal(t, "2027-03-01", start.Format("2006-01-02"))
			assert.Equal(t, "2027-03-05", end.Format("2006-01-02"))
			return true, nil
		}

		_, err := deps.service.Create(ctx, employeeID.String(), validReq)

		assert.ErrorIs(t, err, leaveerrors.ErrOverlappingRequest)
	})
}

func pendingAnnualRequest(employeeID, managerID uuid.UUID, days int) *leave.LeaveRequest {
	mgr := managerID
	return &leave.LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		LeaveTypeID:   uuid.New(),
		StartDate:     time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2027, 3, 5, 0, 0, 0, 0, time.UTC),
		DaysRequested: days,
		Status:        leave.StatusPending,
		Employee: &employee.Employee{
			ID:           employeeID,
			ManagerID:    &mgr,
			FullName:     "Budi Santoso",
			LeaveBalance: decimal.RequireFromString("10"),
		},
		LeaveType: &leavetype.LeaveType{ID: uuid.New(), Name: leavetype.AnnualLeaveName},
	}
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	managerID := uuid.New()
	adminID := uuid.New()

	t.Run("manager approves own report and balance is deducted", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := pendingAnnualRequest(employeeID, managerID, 5)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return lr, nil
		}
		transitioned := false
		deps.repo.transitionStatusFn = func(ctx context.Context, id string, from, to leave.Status, actionedBy string, rejectionReason *string) (bool, error) {
			assert.Equal(t, leave.StatusPending, from)
			assert.Equal(t, leave.StatusApproved, to)
			assert.Equal(t, managerID.String(), actionedBy)
			assert.Nil(t, rejectionReason)
			transitioned = true
			return true, nil
		}
		deducted := 0
		deps.repo.deductBalanceFn = func(ctx context.Context, eid string, days int) error {
			assert.Equal(t, employeeID.String(), eid)
			deducted = days
			return nil
		}

		resp, err := deps.service.Approve(ctx, lr.ID.String(), domain.Actor{
			EmployeeID: managerID.String(),
			Role:       domain.RoleManager,
		})

		assert.NoError(t, err)
		assert.True(t, transitioned)
		assert.Equal(t, 5, deducted)
		assert.Equal(t, string(leave.StatusApproved), resp.Status)
		assert.NotNil(t, resp.ApprovedBy)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("non-annual approval leaves balance alone", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := pendingAnnualRequest(employeeID, managerID, 3)
		lr.LeaveType = &leavetype.LeaveType{ID: uuid.New(), Name: "Sick Leave"}
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.deductBalanceFn = func(ctx context.Context, eid string, days int) error {
			t.Fatal("balance must not be touched for non-annual types")
			return nil
		}

		_, err := deps.service.Approve(ctx, lr.ID.String(), domain.Actor{
			EmployeeID: adminID.String(),
			Role:       domain.RoleAdmin,
		})

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("admin is unscoped", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := pendingAnnualRequest(employeeID, managerID, 5)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Approve(ctx, lr.ID.String(), domain.Actor{
			EmployeeID: adminID.String(),
			Role:       domain.RoleAdmin,
		})

		assert.NoError(t, err)
	})

	t.Run("negative manager of another team", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := pendingAnnualRequest(employeeID, managerID, 5)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Approve(ctx, lr.ID.String(), domain.Actor{
			EmployeeID: uuid.New().String(),
			Role:       domain.RoleManager,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrForbiddenApprover)
	})

	t.Run("negative employee role never actions", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := pendingAnnualRequest(employeeID, managerID, 5)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Approve(ctx, lr.ID.String(), domain.Actor{
			EmployeeID: employeeID.String(),
			Role:       domain.RoleEmployee,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrForbiddenApprover)
	})

	t.Run("negative already actioned", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := pendingAnnualRequest(employeeID, managerID, 5)
		lr.Status = leave.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Approve(ctx, lr.ID.String(), domain.Actor{
			EmployeeID: adminID.String(),
			Role:       domain.RoleAdmin,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyActioned)
	})

	t.Run("negative lost transition race", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := pendingAnnualRequest(employeeID, managerID, 5)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.transitionStatusFn = func(ctx context.Context, id string, from, to leave.Status, actionedBy string, rejectionReason *string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Approve(ctx, lr.ID.String(), domain.Actor{
			EmployeeID: adminID.String(),
			Role:       domain.RoleAdmin,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyActioned)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Approve(ctx, uuid.New().String(), domain.Actor{
			EmployeeID: adminID.String(),
			Role:       domain.RoleAdmin,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	managerID := uuid.New()

	t.Run("success stamps reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := pendingAnnualRequest(employeeID, managerID, 5)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.transitionStatusFn = func(ctx context.Context, id string, from, to leave.Status, actionedBy string, rejectionReason *string) (bool, error) {
			assert.Equal(t, leave.StatusRejected, to)
			assert.NotNil(t, rejectionReason)
			assert.Equal(t, "Not enough coverage this week", *rejectionReason)
			return true, nil
		}
		deps.repo.deductBalanceFn = func(ctx context.Context, eid string, days int) error {
			t.Fatal("rejection must not touch the balance")
			return nil
		}

		resp, err := deps.service.Reject(ctx, lr.ID.String(), domain.Actor{
			EmployeeID: managerID.String(),
			Role:       domain.RoleManager,
		}, "Not enough coverage this week")

		assert.NoError(t, err)
		assert.Equal(t, string(leave.StatusRejected), resp.Status)
		assert.NotNil(t, resp.RejectionReason)
	})

	t.Run("negative short reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Reject(ctx, uuid.New().String(), domain.Actor{
			EmployeeID: managerID.String(),
			Role:       domain.RoleManager,
		}, "no")

		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReason)
	})
}

func TestLeaveService_GetPendingForApprover(t *testing.T) {
	ctx := context.Background()
	managerID := uuid.New()

	t.Run("manager sees only direct reports", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findPendingByManagerFn = func(ctx context.Context, mid string) ([]leave.LeaveRequest, error) {
			assert.Equal(t, managerID.String(), mid)
			return []leave.LeaveRequest{*pendingAnnualRequest(uuid.New(), managerID, 2)}, nil
		}

		resp, err := deps.service.GetPendingForApprover(ctx, domain.Actor{
			EmployeeID: managerID.String(),
			Role:       domain.RoleManager,
		})

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("admin sees everything pending", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context, status *leave.Status) ([]leave.LeaveRequest, error) {
			assert.NotNil(t, status)
			assert.Equal(t, leave.StatusPending, *status)
			return nil, nil
		}

		_, err := deps.service.GetPendingForApprover(ctx, domain.Actor{
			EmployeeID: uuid.New().String(),
			Role:       domain.RoleAdmin,
		})

		assert.NoError(t, err)
	})

	t.Run("negative employee role", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetPendingForApprover(ctx, domain.Actor{
			EmployeeID: uuid.New().String(),
			Role:       domain.RoleEmployee,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrForbiddenApprover)
	})
}

func TestLeaveService_GetBalanceReport(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("usable balance is entitled minus consumed", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return activeEmployee(employeeID, "12.5"), nil
		}
		deps.repo.sumApprovedDaysFn = func(ctx context.Context, id string) (int, error) {
			return 4, nil
		}

		resp, err := deps.service.GetBalanceReport(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, "12.5", resp.EntitledBalance)
		assert.Equal(t, 4, resp.DaysConsumed)
		assert.Equal(t, "8.5", resp.UsableBalance)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return nil, errors.New("db error")
		}

		_, err := deps.service.GetBalanceReport(ctx, employeeID.String())

		assert.Error(t, err)
	})
}
