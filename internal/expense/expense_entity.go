package expense

import (
	"time"

	"plugohris/internal/employee"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// GrabCodeRequest is a monthly Grab transport-allowance request. One
// request per employee per month.
type GrabCodeRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_grab_code_employee_month"`

	Code      string          `gorm:"type:varchar(64);not null"`
	AmountIDR decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Month     string          `gorm:"type:varchar(7);not null;uniqueIndex:uq_grab_code_employee_month"`
	Reason    string          `gorm:"type:text"`

	Status          Status     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`
}

func (GrabCodeRequest) TableName() string {
	return "grab_code_requests"
}
