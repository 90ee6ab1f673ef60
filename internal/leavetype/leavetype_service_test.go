package leavetype_test

import (
	"context"
	"testing"

	"plugohris/internal/leavetype"
	leavetypeerrors "plugohris/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveTypeRepository struct {
	createFn        func(ctx context.Context, lt *leavetype.LeaveType) error
	findAllFn       func(ctx context.Context) ([]leavetype.LeaveType, error)
	findByIDFn      func(ctx context.Context, id string) (*leavetype.LeaveType, error)
	updateFn        func(ctx context.Context, lt *leavetype.LeaveType) error
	deleteFn        func(ctx context.Context, id string) error
	countRequestsFn func(ctx context.Context, id string) (int64, error)
}

func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.createFn != nil {
		return f.createFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &leavetype.LeaveType{ID: uuid.MustParse(id)}, nil
}

func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) CountRequests(ctx context.Context, id string) (int64, error) {
	if f.countRequestsFn != nil {
		return f.countRequestsFn(ctx, id)
	}
	return 0, nil
}

func TestLeaveTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success trims name and defaults approval", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{
			createFn: func(ctx context.Context, lt *leavetype.LeaveType) error {
				assert.Equal(t, "Annual Leave", lt.Name)
				assert.True(t, lt.RequiresApproval)
				return nil
			},
		}
		svc := leavetype.NewService(repo)

		resp, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Name: "  Annual Leave  "})

		assert.NoError(t, err)
		assert.Equal(t, "Annual Leave", resp.Name)
	})

	t.Run("negative duplicate name", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{
			createFn: func(ctx context.Context, lt *leavetype.LeaveType) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_leave_types_name"}
			},
		}
		svc := leavetype.NewService(repo)

		_, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Name: "Annual Leave"})

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNameTaken)
	})
}

func TestLeaveTypeService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()

	t.Run("success when unreferenced", func(t *testing.T) {
		deleted := false
		repo := &fakeLeaveTypeRepository{
			deleteFn: func(ctx context.Context, targetID string) error {
				assert.Equal(t, id, targetID)
				deleted = true
				return nil
			},
		}
		svc := leavetype.NewService(repo)

		assert.NoError(t, svc.Delete(ctx, id))
		assert.True(t, deleted)
	})

	t.Run("negative still referenced by requests", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{
			countRequestsFn: func(ctx context.Context, targetID string) (int64, error) {
				return 7, nil
			},
			deleteFn: func(ctx context.Context, targetID string) error {
				t.Fatal("referenced type must not be deleted")
				return nil
			},
		}
		svc := leavetype.NewService(repo)

		err := svc.Delete(ctx, id)

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeInUse)
	})

	t.Run("negative not found", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{
			findByIDFn: func(ctx context.Context, targetID string) (*leavetype.LeaveType, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := leavetype.NewService(repo)

		err := svc.Delete(ctx, id)

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})

	t.Run("negative malformed id", func(t *testing.T) {
		svc := leavetype.NewService(&fakeLeaveTypeRepository{})

		err := svc.Delete(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidLeaveTypeID)
	})
}
