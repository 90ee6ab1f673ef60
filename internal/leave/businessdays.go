package leave

import "time"

// CountBusinessDays returns the number of days in [start, end]
// inclusive that fall on Monday through Friday. Public holidays are
// not considered; a weekday holiday still counts as a requested day.
func CountBusinessDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}
