package model

import (
	"fmt"
	"strings"
	"time"
)

// ISOWeekStart returns the Monday of an ISO week given as "2025-W14"
func ISOWeekStart(week string) (Date, error) {
	var year, num int
	normalized := strings.ToUpper(strings.TrimSpace(week))
	if _, err := fmt.Sscanf(normalized, "%d-W%d", &year, &num); err != nil {
		return Date{}, fmt.Errorf("invalid ISO week %q (expected e.g. 2025-W14)", week)
	}
	if num < 1 || num > 53 {
		return Date{}, fmt.Errorf("invalid ISO week number %d in %q", num, week)
	}

	// January 4th is always inside ISO week 1
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	sinceMonday := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -sinceMonday)
	start := week1Monday.AddDate(0, 0, (num-1)*7)

	// Catches week 53 in years that only have 52
	if y, w := start.ISOWeek(); y != year || w != num {
		return Date{}, fmt.Errorf("week %q does not exist", week)
	}

	return Date{start}, nil
}

// FormatISOWeek formats the ISO week containing the date, e.g. "2025-W14"
func FormatISOWeek(d Date) string {
	year, week := d.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
