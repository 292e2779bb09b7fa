package format

import (
	"fmt"
	"strings"
	"time"
)

// Duration converts a compact ISO 8601 duration like "PT18M57S" or "PT1H2M3S"
// into H:MM:SS when hours are present, else M:SS. Empty input yields "".
func Duration(iso string) string {
	if iso == "" {
		return ""
	}
	s := strings.TrimPrefix(strings.ToUpper(iso), "PT")

	var hours, mins, secs int
	var num int
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9':
			num = num*10 + int(ch-'0')
		case ch == 'H':
			hours = num
			num = 0
		case ch == 'M':
			mins = num
			num = 0
		case ch == 'S':
			secs = num
			num = 0
		default:
			num = 0
		}
	}

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// RelativeTime buckets the elapsed time since t into a human string:
// "just now", "5m ago", "3h ago", "4 days ago", "2w ago", "6mo ago", "1y ago".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}

	mins := int(d.Minutes())
	if mins < 1 {
		return "just now"
	}
	if mins < 60 {
		return fmt.Sprintf("%dm ago", mins)
	}
	hours := int(d.Hours())
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	days := hours / 24
	switch {
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%dw ago", days/7)
	case days < 365:
		return fmt.Sprintf("%dmo ago", days/30)
	default:
		return fmt.Sprintf("%dy ago", days/365)
	}
}

// RelativeTimeString parses an RFC 3339 timestamp and buckets it with
// RelativeTime. Unparseable input is returned unchanged, never an error.
func RelativeTimeString(iso string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return RelativeTime(t, now)
}

// ViewsPerDay computes the views-per-day velocity metric. The elapsed-day
// denominator floors at 1 so same-day publishes never divide by zero.
func ViewsPerDay(views int64, published, now time.Time) float64 {
	days := int64(now.Sub(published).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return float64(views) / float64(days)
}

// Count renders an integer in compact form: 1234 -> "1.2k", 1500000 ->
// "1.5M", 2000000000 -> "2B". Values below 1000 render plain. A trailing
// ".0" is stripped so 1000000 renders as "1M", not "1.0M".
func Count(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return stripPointZero(fmt.Sprintf("%.1f", float64(n)/1_000_000_000)) + "B"
	case n >= 1_000_000:
		return stripPointZero(fmt.Sprintf("%.1f", float64(n)/1_000_000)) + "M"
	case n >= 1_000:
		return stripPointZero(fmt.Sprintf("%.1f", float64(n)/1_000)) + "k"
	default:
		return fmt.Sprintf("%d", n)
	}
}

// CountPtr renders an optional count; nil (unknown) renders as "-".
func CountPtr(n *int64) string {
	if n == nil {
		return "-"
	}
	return Count(*n)
}

func stripPointZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
