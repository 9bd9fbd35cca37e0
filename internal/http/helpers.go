package http

import (
	"net/http"
	"strings"
	"time"
)

// parseMonthParam extracts the reference month from ?month=YYYY-MM, falling
// back to the current month. Only year and month matter downstream.
func parseMonthParam(r *http.Request) time.Time {
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if t, err := time.Parse("2006-01", v); err == nil {
			return t
		}
		// Any date inside the month works too
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
	}
	return time.Now()
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
