package tui

import (
	"fmt"
	"time"
)

// formatAddress shortens a 0x-prefixed hex string, address or hash, for
// display.
func formatAddress(addr string) string {
	if len(addr) >= 16 {
		return addr[:8] + "..." + addr[len(addr)-4:]
	}
	return addr
}

// truncate caps long values such as token URIs for modal display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// Humanize time display
func humanizeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%d min ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
