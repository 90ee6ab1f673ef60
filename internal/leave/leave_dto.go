package leave

type CreateLeaveRequest struct {
	LeaveTypeID   string   `json:"leave_type_id" binding:"required,uuid"`
	StartDate     string   `json:"start_date" binding:"required"`
	EndDate       string   `json:"end_date" binding:"required"`
	Reason        string   `json:"reason"`
	DocumentLinks []string `json:"document_links"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type LeaveResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    string   `json:"employee_name,omitempty"`
	LeaveTypeID     string   `json:"leave_type_id"`
	LeaveTypeName   string   `json:"leave_type_name,omitempty"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	DaysRequested   int      `json:"days_requested"`
	Reason          string   `json:"reason"`
	DocumentLinks   []string `json:"document_links,omitempty"`
	Status          string   `json:"status"`
	ApprovedBy      *string  `json:"approved_by,omitempty"`
	ApprovedAt      *string  `json:"approved_at,omitempty"`
	RejectionReason *string  `json:"rejection_reason,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

// BalanceReportResponse is the read-time balance view. UsableBalance is
// derived on every read and never persisted.
type BalanceReportResponse struct {
	EmployeeID      string `json:"employee_id"`
	EntitledBalance string `json:"entitled_balance"`
	DaysConsumed    int    `json:"days_consumed"`
	UsableBalance   string `json:"usable_balance"`
}
