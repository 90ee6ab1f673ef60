package events

import "time"

const EmployeeCreatedTopic = "hr.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType      string    `json:"event_type"`
	EmployeeID     string    `json:"employee_id"`
	EmploymentType string    `json:"employment_type"`
	StartDate      string    `json:"start_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}
