package leave

import (
	"context"
	"database/sql"
	"time"

	"plugohris/internal/employee"
	"plugohris/internal/leavetype"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID string, status *Status) ([]LeaveRequest, error)
	FindAll(ctx context.Context, status *Status) ([]LeaveRequest, error)
	FindPendingByManager(ctx context.Context, managerID string) ([]LeaveRequest, error)
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	TransitionStatus(ctx context.Context, id string, from, to Status, actionedBy string, rejectionReason *string) (bool, error)
	DeductBalance(ctx context.Context, employeeID string, days int) error
	SumApprovedDays(ctx context.Context, employeeID string) (int, error)
	FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error)
	FindLeaveType(ctx context.Context, leaveTypeID string) (*leavetype.LeaveType, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true, Context: ctx})
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.conn(ctx).Omit("Employee", "LeaveType").Create(lr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.conn(ctx).
		Preload("Employee").
		Preload("LeaveType").
		First(&lr, "id = ?", id).Error
	return &lr, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, status *Status) ([]LeaveRequest, error) {
	q := r.conn(ctx).
		Preload("LeaveType").
		Where("employee_id = ?", employeeID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var requests []LeaveRequest
	err := q.Order("start_date DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindAll(ctx context.Context, status *Status) ([]LeaveRequest, error) {
	q := r.conn(ctx).
		Preload("Employee").
		Preload("LeaveType")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var requests []LeaveRequest
	err := q.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindPendingByManager(ctx context.Context, managerID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Preload("Employee").
		Preload("LeaveType").
		Joins("JOIN employees ON employees.id = leave_requests.employee_id").
		Where("employees.manager_id = ?", managerID).
		Where("leave_requests.status = ?", StatusPending).
		Order("leave_requests.created_at ASC").
		Find(&requests).Error
	return requests, err
}

// HasOverlapping reports whether the employee already holds a pending or
// approved request whose date range intersects [start, end].
func (r *repository) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []Status{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", start, end).
		Count(&count).Error
	return count > 0, err
}

// TransitionStatus moves a request out of the from status in a single guarded
// update. It returns false when the row was no longer in the from status,
// which is how concurrent double-approval loses the race.
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
	res := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeductBalance subtracts days arithmetically in the database. The balance is
// allowed to go negative once a request has been approved.
func (r *repository) DeductBalance(ctx context.Context, employeeID string, days int) error {
	return r.conn(ctx).
		Exec("UPDATE employees SET leave_balance = leave_balance - ?, updated_at = ? WHERE id = ?",
			days, time.Now().UTC(), employeeID).Error
}

func (r *repository) SumApprovedDays(ctx context.Context, employeeID string) (int, error) {
	var total sql.NullInt64
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Select("COALESCE(SUM(days_requested), 0)").
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Scan(&total).Error
	return int(total.Int64), err
}

func (r *repository) FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error) {
	var e employee.Employee
	err := r.conn(ctx).First(&e, "id = ?", employeeID).Error
	return &e, err
}

func (r *repository) FindLeaveType(ctx context.Context, leaveTypeID string) (*leavetype.LeaveType, error) {
	var lt leavetype.LeaveType
	err := r.conn(ctx).First(&lt, "id = ?", leaveTypeID).Error
	return &lt, err
}
