package expense

type CreateGrabCodeRequest struct {
	Code      string `json:"code" binding:"required,max=64"`
	AmountIDR string `json:"amount_idr" binding:"required"`
	Month     string `json:"month" binding:"required"`
	Reason    string `json:"reason"`
}

type RejectGrabCodeRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type GrabCodeResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	Code            string  `json:"code"`
	AmountIDR       string  `json:"amount_idr"`
	Month           string  `json:"month"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}
