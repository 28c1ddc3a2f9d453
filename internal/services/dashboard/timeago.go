package dashboard

import (
	"fmt"
	"time"
)

// wholeHours floors the elapsed time since t in hours.
func wholeHours(t, now time.Time) int {
	return int(now.Sub(t) / time.Hour)
}

// FormatAlertAge renders the alert timeline's compact age: "Just now",
// "5h ago", "3d ago".
func FormatAlertAge(t, now time.Time) string {
	h := wholeHours(t, now)
	switch {
	case h < 1:
		return "Just now"
	case h < 24:
		return fmt.Sprintf("%dh ago", h)
	default:
		return fmt.Sprintf("%dd ago", h/24)
	}
}

// FormatNewsAge renders the news feed's age: "Just now", "5 hours ago",
// "1 day ago", "3 days ago".
func FormatNewsAge(t, now time.Time) string {
	h := wholeHours(t, now)
	switch {
	case h < 1:
		return "Just now"
	case h < 24:
		return fmt.Sprintf("%d hours ago", h)
	}
	d := h / 24
	if d > 1 {
		return fmt.Sprintf("%d days ago", d)
	}
	return fmt.Sprintf("%d day ago", d)
}

// FormatPolicyDate renders a policy publication date ("June 15, 2025").
func FormatPolicyDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}
