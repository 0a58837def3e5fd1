package task

import (
	"fmt"
	"time"
)

var dutchMonths = [...]string{
	"jan", "feb", "mrt", "apr", "mei", "jun",
	"jul", "aug", "sep", "okt", "nov", "dec",
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsToday reports whether d falls on the same calendar day as now,
// ignoring the time-of-day component of both.
func IsToday(d, now time.Time) bool {
	return dayOf(d).Equal(dayOf(now))
}

// IsThisWeek reports whether d falls within [today, today+7 days] inclusive,
// compared at day granularity.
func IsThisWeek(d, now time.Time) bool {
	day := dayOf(d)
	today := dayOf(now)
	return !day.Before(today) && !day.After(today.AddDate(0, 0, 7))
}

// FormatDuration renders a minute count the way the list shows it:
// "30 min", "2 uur", "1u 15m". Zero and negative values render empty.
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%d uur", hours)
	}
	return fmt.Sprintf("%du %dm", hours, rest)
}

// FormatDate renders a due date relative to now: "Vandaag", "Morgen", or a
// short Dutch day-month form like "2 jan".
func FormatDate(d, now time.Time) string {
	day := dayOf(d)
	today := dayOf(now)
	switch {
	case day.Equal(today):
		return "Vandaag"
	case day.Equal(today.AddDate(0, 0, 1)):
		return "Morgen"
	default:
		return fmt.Sprintf("%d %s", day.Day(), dutchMonths[day.Month()-1])
	}
}
