package timesheet

import "time"

// DateLayout is the backend's calendar date format.
const DateLayout = "2006-01-02"

// WeekStart returns Monday 00:00 of t's week, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// ParseWeek resolves a YYYY-MM-DD date to the start of its week. An empty
// value means the current week.
func ParseWeek(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return WeekStart(now), nil
	}
	d, err := time.ParseInLocation(DateLayout, value, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	return WeekStart(d), nil
}

// Label is the heading shown above a week.
func Label(weekStart time.Time) string {
	return "Week of " + FormatDate(weekStart)
}
