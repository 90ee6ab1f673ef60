package leave

import (
	"time"

	"plugohris/internal/employee"
	"plugohris/internal/leavetype"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;index"`

	StartDate     time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate       time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	DaysRequested int       `gorm:"type:int;not null"`
	Reason        string    `gorm:"type:text"`
	DocumentLinks []string  `gorm:"serializer:json"`

	Status          Status     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee  *employee.Employee   `gorm:"foreignKey:EmployeeID"`
	LeaveType *leavetype.LeaveType `gorm:"foreignKey:LeaveTypeID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
