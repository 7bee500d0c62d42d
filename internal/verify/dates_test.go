package verify

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{"Jan 2020", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"January 2020", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"2020-01", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"01/2020", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"2020", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"  Present ", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), true},
		{"current", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"sometime in spring", time.Time{}, false},
	}
	for _, tc := range tests {
		got, ok := parseDate(tc.raw, now)
		if ok != tc.ok {
			t.Fatalf("parseDate(%q): ok=%v, want %v", tc.raw, ok, tc.ok)
		}
		if ok && !got.Equal(tc.want) {
			t.Fatalf("parseDate(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestMonthsBetween(t *testing.T) {
	t.Parallel()

	jan2020 := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		a, b time.Time
		want int
	}{
		{jan2020, jan2020, 0},
		{jan2020, time.Date(2020, time.July, 1, 0, 0, 0, 0, time.UTC), 6},
		{time.Date(2020, time.July, 1, 0, 0, 0, 0, time.UTC), jan2020, 6},
		{jan2020, time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC), 14},
	}
	for _, tc := range tests {
		if got := monthsBetween(tc.a, tc.b); got != tc.want {
			t.Fatalf("monthsBetween(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
