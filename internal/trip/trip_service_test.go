package trip_test

import (
	"context"
	"testing"

	"plugohris/internal/domain"
	"plugohris/internal/employee"
	"plugohris/internal/trip"
	triperrors "plugohris/internal/trip/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeTripRepository struct {
	createFn               func(ctx context.Context, bt *trip.BusinessTrip) error
	findByIDFn             func(ctx context.Context, id string) (*trip.BusinessTrip, error)
	findByEmployeeFn       func(ctx context.Context, employeeID string, status *trip.Status) ([]trip.BusinessTrip, error)
	findAllFn              func(ctx context.Context, status *trip.Status) ([]trip.BusinessTrip, error)
	findPendingByManagerFn func(ctx context.Context, managerID string) ([]trip.BusinessTrip, error)
	transitionStatusFn     func(ctx context.Context, id string, from, to trip.Status, actionedBy string, rejectionReason *string) (bool, error)
	findEmployeeFn         func(ctx context.Context, employeeID string) (*employee.Employee, error)
}

func (f *fakeTripRepository) Create(ctx context.Context, bt *trip.BusinessTrip) error {
	if f.createFn != nil {
		return f.createFn(ctx, bt)
	}
	return nil
}

func (f *fakeTripRepository) FindByID(ctx context.Context, id string) (*trip.BusinessTrip, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTripRepository) FindByEmployee(ctx context.Context, employeeID string, status *trip.Status) ([]trip.BusinessTrip, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID, status)
	}
	return nil, nil
}

func (f *fakeTripRepository) FindAll(ctx context.Context, status *trip.Status) ([]trip.BusinessTrip, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeTripRepository) FindPendingByManager(ctx context.Context, managerID string) ([]trip.BusinessTrip, error) {
	if f.findPendingByManagerFn != nil {
		return f.findPendingByManagerFn(ctx, managerID)
	}
	return nil, nil
}

func (f *fakeTripRepository) TransitionStatus(ctx context.Context, id string, from, to trip.Status, actionedBy string, rejectionReason *string) (bool, error) {
	if f.transitionStatusFn != nil {
		return f.transitionStatusFn(ctx, id, from, to, actionedBy, rejectionReason)
	}
	return true, nil
}

func (f *fakeTripRepository) FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if f.findEmployeeFn != nil {
		return f.findEmployeeFn(ctx, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func TestTripService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	validReq := trip.CreateTripRequest{
		Destination:   "Surabaya",
		Purpose:       "Regional partner onboarding",
		StartDate:     "2027-05-10",
		EndDate:       "2027-05-12",
		EstimatedCost: "4500000",
	}

	t.Run("success", func(t *testing.T) {
		repo := &fakeTripRepository{
			findEmployeeFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return &employee.Employee{ID: employeeID, FullName: "Budi Santoso"}, nil
			},
			createFn: func(ctx context.Context, bt *trip.BusinessTrip) error {
				assert.Equal(t, "Surabaya", bt.Destination)
				assert.Equal(t, trip.StatusPending, bt.Status)
				assert.True(t, bt.EstimatedCost.Equal(decimal.RequireFromString("4500000")))
				return nil
			},
		}
		svc := trip.NewService(repo)

		resp, err := svc.Create(ctx, employeeID.String(), validReq)

		assert.NoError(t, err)
		assert.Equal(t, "4500000.00", resp.EstimatedCost)
	})

	t.Run("negative backdated start", func(t *testing.T) {
		svc := trip.NewService(&fakeTripRepository{})

		req := validReq
		req.StartDate = "2020-05-10"
		req.EndDate = "2020-05-12"
		_, err := svc.Create(ctx, employeeID.String(), req)

		assert.ErrorIs(t, err, triperrors.ErrStartDateInPast)
	})

	t.Run("negative end before start", func(t *testing.T) {
		svc := trip.NewService(&fakeTripRepository{})

		req := validReq
		req.StartDate = "2027-05-12"
		req.EndDate = "2027-05-10"
		_, err := svc.Create(ctx, employeeID.String(), req)

		assert.ErrorIs(t, err, triperrors.ErrInvalidDateRange)
	})

	t.Run("negative zero cost", func(t *testing.T) {
		svc := trip.NewService(&fakeTripRepository{})

		req := validReq
		req.EstimatedCost = "0"
		_, err := svc.Create(ctx, employeeID.String(), req)

		assert.ErrorIs(t, err, triperrors.ErrInvalidCost)
	})
}

func TestTripService_Gate(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	managerID := uuid.New()

	pendingTrip := func() *trip.BusinessTrip {
		mgr := managerID
		return &trip.BusinessTrip{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Status:     trip.StatusPending,
			Employee:   &employee.Employee{ID: employeeID, ManagerID: &mgr},
		}
	}

	t.Run("admin approves anything", func(t *testing.T) {
		bt := pendingTrip()
		repo := &fakeTripRepository{
			findByIDFn: func(ctx context.Context, id string) (*trip.BusinessTrip, error) {
				return bt, nil
			},
		}
		svc := trip.NewService(repo)

		resp, err := svc.Approve(ctx, bt.ID.String(), domain.Actor{
			EmployeeID: uuid.New().String(),
			Role:       domain.RoleAdmin,
		})

		assert.NoError(t, err)
		assert.Equal(t, string(trip.StatusApproved), resp.Status)
	})

	t.Run("negative employee may not approve", func(t *testing.T) {
		bt := pendingTrip()
		repo := &fakeTripRepository{
			findByIDFn: func(ctx context.Context, id string) (*trip.BusinessTrip, error) {
				return bt, nil
			},
		}
		svc := trip.NewService(repo)

		_, err := svc.Approve(ctx, bt.ID.String(), domain.Actor{
			EmployeeID: employeeID.String(),
			Role:       domain.RoleEmployee,
		})

		assert.ErrorIs(t, err, triperrors.ErrForbiddenApprover)
	})

	t.Run("negative lost transition race", func(t *testing.T) {
		bt := pendingTrip()
		repo := &fakeTripRepository{
			findByIDFn: func(ctx context.Context, id string) (*trip.BusinessTrip, error) {
				return bt, nil
			},
			transitionStatusFn: func(ctx context.Context, id string, from, to trip.Status, actionedBy string, rejectionReason *string) (bool, error) {
				return false, nil
			},
		}
		svc := trip.NewService(repo)

		_, err := svc.Approve(ctx, bt.ID.String(), domain.Actor{
			EmployeeID: managerID.String(),
			Role:       domain.RoleManager,
		})

		assert.ErrorIs(t, err, triperrors.ErrAlreadyActioned)
	})
}
