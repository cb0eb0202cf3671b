package timer

import "github.com/mlktrr/fokus/internal/workspace"

// DurationSeconds maps a phase mode and the current settings to a planned
// duration. Total function: the settings minute fields are re-clamped
// before use, so the result is always a positive multiple of 60 no matter
// what the caller hands in.
func DurationSeconds(mode workspace.Mode, settings workspace.Settings) int {
	settings.Clamp()
	switch mode {
	case workspace.ModeShortBreak:
		return settings.ShortBreakMinutes * 60
	case workspace.ModeLongBreak:
		return settings.LongBreakMinutes * 60
	default:
		return settings.FocusMinutes * 60
	}
}
