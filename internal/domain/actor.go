package domain

// Actor is the resolved caller identity services receive from the HTTP
// layer: the employee record the JWT maps to plus the caller's role.
type Actor struct {
	EmployeeID string
	Role       Role
}
