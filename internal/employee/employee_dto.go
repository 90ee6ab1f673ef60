package employee

type CreateEmployeeRequest struct {
	FullName       string  `json:"full_name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	EmploymentType string  `json:"employment_type" binding:"required,oneof=PERMANENT CONTRACT"`
	StartDate      string  `json:"start_date" binding:"required"`
	ManagerID      *string `json:"manager_id" binding:"omitempty,uuid"`
	DepartmentID   *string `json:"department_id" binding:"omitempty,uuid"`
}

type UpdateEmployeeRequest struct {
	FullName       string  `json:"full_name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	EmploymentType string  `json:"employment_type" binding:"required,oneof=PERMANENT CONTRACT"`
	StartDate      string  `json:"start_date" binding:"required"`
	Status         string  `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
	ManagerID      *string `json:"manager_id" binding:"omitempty,uuid"`
	DepartmentID   *string `json:"department_id" binding:"omitempty,uuid"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	EmploymentType string  `json:"employment_type"`
	StartDate      string  `json:"start_date"`
	Status         string  `json:"status"`
	ManagerID      *string `json:"manager_id,omitempty"`
	DepartmentID   *string `json:"department_id,omitempty"`
	LeaveBalance   string  `json:"leave_balance"`
}
