package trip

type CreateTripRequest struct {
	Destination   string `json:"destination" binding:"required,max=120"`
	Purpose       string `json:"purpose" binding:"required"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	EstimatedCost string `json:"estimated_cost" binding:"required"`
}

type RejectTripRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type TripResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	Destination     string  `json:"destination"`
	Purpose         string  `json:"purpose"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	EstimatedCost   string  `json:"estimated_cost"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}
