package intent

import (
	"fmt"
	"regexp"
	"time"
)

var dayMonthOnly = regexp.MustCompile(`^\d{1,2}\.\d{1,2}$`)

// Layouts tried in order when normalizing an extracted date.
var dateLayouts = []string{
	"2006.01.02", // 2025.07.10
	"2.1.2006",   // 10.07.2025
	"2006-01-02", // 2025-07-10
}

// NormalizeDate converts an extracted date string to the canonical
// YYYY-MM-DD form. A day-month-only value gets the current year
// appended. Unparseable input normalizes to an empty string, never an
// error.
func NormalizeDate(dateStr string) string {
	return normalizeDateAt(dateStr, time.Now())
}

func normalizeDateAt(dateStr string, now time.Time) string {
	// Day-month without a year: assume the current year.
	if dayMonthOnly.MatchString(dateStr) {
		dateStr = fmt.Sprintf("%s.%d", dateStr, now.Year())
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
