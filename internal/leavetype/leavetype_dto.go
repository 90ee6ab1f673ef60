package leavetype

type CreateLeaveTypeRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	MaxDaysPerYear   *int   `json:"max_days_per_year" binding:"omitempty,min=1"`
	RequiresApproval *bool  `json:"requires_approval"`
}

type UpdateLeaveTypeRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	MaxDaysPerYear   *int   `json:"max_days_per_year" binding:"omitempty,min=1"`
	RequiresApproval *bool  `json:"requires_approval"`
}

type LeaveTypeResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	MaxDaysPerYear   *int   `json:"max_days_per_year,omitempty"`
	RequiresApproval bool   `json:"requires_approval"`
}
