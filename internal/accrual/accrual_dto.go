package accrual

type RecalculateRequest struct {
	AsOfDate string `json:"as_of_date"`
	Async    bool   `json:"async"`
}

// EmployeeDelta records one balance overwrite performed by a run.
type EmployeeDelta struct {
	EmployeeID string `json:"employee_id"`
	Before     string `json:"before"`
	After      string `json:"after"`
}

type RecalculationResult struct {
	AsOfDate     string          `json:"as_of_date"`
	UpdatedCount int             `json:"updated_count"`
	SkippedCount int             `json:"skipped_count"`
	Deltas       []EmployeeDelta `json:"deltas"`
}
