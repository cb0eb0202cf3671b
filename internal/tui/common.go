package tui

import (
	"fmt"
	"time"

	"github.com/mlktrr/fokus/internal/timer"
	"github.com/mlktrr/fokus/internal/workspace"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewPlanner
	viewStats
	viewSettings
)

var viewNames = []string{"Timer", "Planner", "Stats", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// requestEndMsg asks the root model to end the current phase. The root
// model is the confirmation gate: when the end-session confirmation
// setting is on it shows the overlay before any machine mutation.
type requestEndMsg struct {
	reason timer.Reason
}

// --- Helpers ---

func formatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func modeLabel(m workspace.Mode) string {
	switch m {
	case workspace.ModeShortBreak:
		return "Short Break"
	case workspace.ModeLongBreak:
		return "Long Break"
	default:
		return "Focus"
	}
}
