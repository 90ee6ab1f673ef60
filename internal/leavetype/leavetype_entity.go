package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnnualLeaveName is the catalog entry with balance semantics: requests
// of this type check and consume the employee's stored leave balance.
const AnnualLeaveName = "Annual Leave"

type LeaveType struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string    `gorm:"type:varchar(100);uniqueIndex:uq_leave_types_name;not null"`
	Description      string    `gorm:"type:text"`
	MaxDaysPerYear   *int      `gorm:"type:int"`
	RequiresApproval bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
