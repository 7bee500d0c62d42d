// Package verify cross-checks a résumé against a reference profile and
// produces a discrepancy report with an overall confidence score. It never
// mutates either input; verification is read-only analysis.
package verify

import (
	"strings"
	"time"
)

// dateFormats are the layouts profile dates arrive in, most common first.
var dateFormats = []string{
	"Jan 2006",
	"January 2006",
	"2006-01",
	"01/2006",
	"2006",
}

// presentSynonyms mark an ongoing position; they resolve to the current month.
var presentSynonyms = map[string]struct{}{
	"present": {},
	"current": {},
	"now":     {},
	"today":   {},
}

// parseDate resolves a free-form profile date to month precision. The second
// return is false when the value is empty or matches no known layout; callers
// skip date checks rather than guessing.
func parseDate(raw string, now time.Time) (time.Time, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return time.Time{}, false
	}
	if _, ok := presentSynonyms[strings.ToLower(cleaned)]; ok {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), true
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// monthsBetween returns the absolute whole-month distance between two dates.
func monthsBetween(a, b time.Time) int {
	months := (a.Year()-b.Year())*12 + int(a.Month()) - int(b.Month())
	if months < 0 {
		months = -months
	}
	return months
}
