// Package stats derives streaks, daily totals, and heatmap buckets from
// the session log. Read-only: everything here is recomputed on demand
// and never persisted.
package stats

import (
	"time"

	"github.com/mlktrr/fokus/internal/workspace"
)

// DayTotal is one bucket of the last-7-days series.
type DayTotal struct {
	Date    string // planner day key
	Label   string // short weekday label
	Minutes int
}

// Summary aggregates the focus history up to now.
type Summary struct {
	TodayFocusMinutes int
	TodayFocusCount   int
	StreakDays        int
	BestDayMinutes    int
	TotalFocusMinutes int
	Last7Days         []DayTotal
}

// HeatCell is one day of the activity heatmap.
type HeatCell struct {
	Date    string
	Minutes int
	Level   int // 0..4
}

// dailyFocusMinutes buckets completed focus sessions by the local date of
// their end time.
func dailyFocusMinutes(sessions []workspace.SessionRecord) map[string]int {
	daily := map[string]int{}
	for _, s := range sessions {
		if s.SessionType != workspace.ModeFocus || !s.Completed {
			continue
		}
		key := workspace.DayKey(s.EndTime.Local())
		daily[key] += s.DurationSeconds / 60
	}
	return daily
}

// Compute builds the summary for the workspace's session log as of now.
func Compute(ws *workspace.Workspace, now time.Time) Summary {
	daily := dailyFocusMinutes(ws.Sessions)
	todayKey := workspace.DayKey(now)

	var sum Summary
	sum.TodayFocusMinutes = daily[todayKey]
	for _, s := range ws.Sessions {
		if s.SessionType == workspace.ModeFocus && s.Completed &&
			workspace.DayKey(s.EndTime.Local()) == todayKey {
			sum.TodayFocusCount++
		}
	}

	for _, minutes := range daily {
		sum.TotalFocusMinutes += minutes
		if minutes > sum.BestDayMinutes {
			sum.BestDayMinutes = minutes
		}
	}

	sum.StreakDays = streak(daily, now)

	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		key := workspace.DayKey(d)
		sum.Last7Days = append(sum.Last7Days, DayTotal{
			Date:    key,
			Label:   d.Format("Mon"),
			Minutes: daily[key],
		})
	}
	return sum
}

// streak counts consecutive days ending today with any completed focus
// time.
func streak(daily map[string]int, now time.Time) int {
	count := 0
	for day := now; daily[workspace.DayKey(day)] > 0; day = day.AddDate(0, 0, -1) {
		count++
	}
	return count
}

// heatLevel maps focus minutes to a display bucket.
func heatLevel(minutes int) int {
	switch {
	case minutes <= 0:
		return 0
	case minutes < 30:
		return 1
	case minutes < 60:
		return 2
	case minutes < 120:
		return 3
	default:
		return 4
	}
}

// Heatmap returns one cell per day for the given number of trailing
// weeks, oldest first, ending today.
func Heatmap(ws *workspace.Workspace, weeks int, now time.Time) []HeatCell {
	if weeks < 1 {
		weeks = 1
	}
	daily := dailyFocusMinutes(ws.Sessions)

	days := weeks * 7
	cells := make([]HeatCell, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		key := workspace.DayKey(d)
		minutes := daily[key]
		cells = append(cells, HeatCell{Date: key, Minutes: minutes, Level: heatLevel(minutes)})
	}
	return cells
}
