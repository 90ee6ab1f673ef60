package leave

// Status is the closed state set of a leave request. Transitions are
// driven exclusively through the table below; APPROVED and REJECTED
// are terminal.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

var transitions = map[Status][]Status{
	StatusPending: {StatusApproved, StatusRejected},
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ParseStatus validates an optional status filter coming off the query
// string. Empty means no filter.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), true
	}
	return "", false
}
