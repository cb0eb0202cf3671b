package workspace

// Settings defaults and bounds. Every numeric field is clamped to its
// range on sanitize; out-of-range or malformed input falls back to the
// default rather than failing.
const (
	DefaultFocusMinutes      = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
	DefaultLongBreakInterval = 4
	DefaultDayStartHour      = 8
	DefaultDayEndHour        = 20

	MinFocusMinutes      = 1
	MaxFocusMinutes      = 180
	MinShortBreakMinutes = 1
	MaxShortBreakMinutes = 60
	MinLongBreakMinutes  = 1
	MaxLongBreakMinutes  = 120
	MinLongBreakInterval = 2
	MaxLongBreakInterval = 12
)

// DefaultSettings returns the named defaults for every field.
func DefaultSettings() Settings {
	return Settings{
		FocusMinutes:           DefaultFocusMinutes,
		ShortBreakMinutes:      DefaultShortBreakMinutes,
		LongBreakMinutes:       DefaultLongBreakMinutes,
		LongBreakInterval:      DefaultLongBreakInterval,
		AutoStartNext:          false,
		SoundEnabled:           true,
		NotificationsEnabled:   true,
		EndSessionConfirmation: true,
		DayStartHour:           DefaultDayStartHour,
		DayEndHour:             DefaultDayEndHour,
		Theme:                  "system",
	}
}

// clampInt returns v clamped to [lo, hi], or def when v is zero (the
// decode value for a missing field) or outside the range entirely.
func clampInt(v, lo, hi, def int) int {
	if v == 0 {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp rewrites every field of s into its valid range. Safe to call any
// number of times; the second application is always a no-op.
func (s *Settings) Clamp() {
	s.FocusMinutes = clampInt(s.FocusMinutes, MinFocusMinutes, MaxFocusMinutes, DefaultFocusMinutes)
	s.ShortBreakMinutes = clampInt(s.ShortBreakMinutes, MinShortBreakMinutes, MaxShortBreakMinutes, DefaultShortBreakMinutes)
	s.LongBreakMinutes = clampInt(s.LongBreakMinutes, MinLongBreakMinutes, MaxLongBreakMinutes, DefaultLongBreakMinutes)
	s.LongBreakInterval = clampInt(s.LongBreakInterval, MinLongBreakInterval, MaxLongBreakInterval, DefaultLongBreakInterval)

	if s.DayStartHour < 0 || s.DayStartHour > 23 {
		s.DayStartHour = DefaultDayStartHour
	}
	if s.DayEndHour < 1 || s.DayEndHour > 24 {
		s.DayEndHour = DefaultDayEndHour
	}
	// The day window must be non-empty.
	if s.DayStartHour >= s.DayEndHour {
		s.DayStartHour = DefaultDayStartHour
		s.DayEndHour = DefaultDayEndHour
	}

	switch s.Theme {
	case "system", "light", "dark":
	default:
		s.Theme = "system"
	}
}
