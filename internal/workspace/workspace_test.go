package workspace

import (
	"testing"
	"time"
)

func TestWeekKey(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want string
	}{
		{"midyear", time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC), "2026-W24"},
		{"single digit week", time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), "2026-W02"},
		{"december in next iso year", time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), "2026-W01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekKey(tc.date); got != tc.want {
				t.Fatalf("WeekKey(%s) = %q, want %q", tc.date.Format("2006-01-02"), got, tc.want)
			}
		})
	}
}

func TestSetReviewReplaces(t *testing.T) {
	ws := New()
	ws.SetReview("2026-W24", WeekReview{Reflection: "first pass"})
	ws.SetReview("2026-W24", WeekReview{Reflection: "second pass", Intention: "ship it"})

	got := ws.Reviews["2026-W24"]
	if got.Reflection != "second pass" || got.Intention != "ship it" {
		t.Fatalf("review not replaced: %+v", got)
	}
}
