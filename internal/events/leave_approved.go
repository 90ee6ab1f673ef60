package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

// LeaveActionedEvent is emitted when a leave request leaves the
// Pending state, for downstream consumers (notifications, reporting).
type LeaveActionedEvent struct {
	EventType     string    `json:"event_type"`
	LeaveID       string    `json:"leave_id"`
	EmployeeID    string    `json:"employee_id"`
	LeaveTypeName string    `json:"leave_type_name"`
	Status        string    `json:"status"`
	DaysRequested int       `json:"days_requested"`
	ActionedBy    string    `json:"actioned_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
