package ui

import (
	"fmt"
	"time"
)

var timeNow = time.Now

// FormatRelativeTime returns a compact description of how long ago t was.
// Results stay short enough for the list's created column.
func FormatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	now := timeNow()
	if t.After(now) {
		return formatAbsoluteTime(t, now)
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	default:
		return formatAbsoluteTime(t, now)
	}
}

func formatAbsoluteTime(t, now time.Time) string {
	local := t.In(now.Location())
	if local.Year() == now.Year() {
		return local.Format("Jan 2")
	}
	return local.Format("Jan '06")
}

// FormatDueIn describes a target date in whole calendar days from today.
func FormatDueIn(target *time.Time) string {
	if target == nil {
		return ""
	}
	now := timeNow()
	today := startOfDay(now)
	due := startOfDay(target.In(now.Location()))
	days := int(due.Sub(today).Round(time.Hour).Hours() / 24)
	switch {
	case days == 0:
		return "due today"
	case days > 0:
		return fmt.Sprintf("in %dd", days)
	default:
		return fmt.Sprintf("%dd overdue", -days)
	}
}
