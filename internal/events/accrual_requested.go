package events

import "time"

const AccrualRequestedTopic = "hr.accrual.requested.v1"

// AccrualRequestedEvent asks the consumer to run a balance
// recalculation as of the given date (YYYY-MM-DD).
type AccrualRequestedEvent struct {
	EventType   string    `json:"event_type"`
	AsOfDate    string    `json:"as_of_date"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
