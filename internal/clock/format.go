package clock

import "time"

// Layouts of the two clock tokens shown on the bar.
const (
	DateLayout = "Mon Jan 2"
	TimeLayout = "3:04 pm"
)

// FormatDate renders the weekday/month/day token, e.g. "Mon Jan 2".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTime renders the 12-hour token, e.g. "3:04 pm".
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
