package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TypePermanent = "PERMANENT"
	TypeContract  = "CONTRACT"

	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	ManagerID    *uuid.UUID `gorm:"type:uuid;index"`

	FullName       string    `gorm:"type:varchar(255);not null"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex:uq_employees_email;not null"`
	EmploymentType string    `gorm:"type:varchar(20);not null;default:'PERMANENT'"`
	StartDate      time.Time `gorm:"type:date;not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`

	// Entitled leave days as computed by the accrual engine, stored as
	// a decimal day count. Deducted on approval of Annual Leave.
	LeaveBalance decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
