package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlktrr/fokus/internal/app"
)

type settingsModel struct {
	app    *app.App
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	focusMin      *string
	shortBreakMin *string
	longBreakMin  *string
	interval      *string
	dayStart      *string
	dayEnd        *string
	theme         *string
	autoStart     *bool
	sound         *bool
	notify        *bool
	confirmEnd    *bool
}

func newSettingsModel(a *app.App) settingsModel {
	f, sb, lb, iv := "", "", "", ""
	ds, de, th := "", "", ""
	as, so, no, ce := false, false, false, false
	return settingsModel{
		app:           a,
		focusMin:      &f,
		shortBreakMin: &sb,
		longBreakMin:  &lb,
		interval:      &iv,
		dayStart:      &ds,
		dayEnd:        &de,
		theme:         &th,
		autoStart:     &as,
		sound:         &so,
		notify:        &no,
		confirmEnd:    &ce,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msgKey, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msgKey, keys.Enter), key.Matches(msgKey, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	settings := s.app.Workspace.Settings
	*s.focusMin = strconv.Itoa(settings.FocusMinutes)
	*s.shortBreakMin = strconv.Itoa(settings.ShortBreakMinutes)
	*s.longBreakMin = strconv.Itoa(settings.LongBreakMinutes)
	*s.interval = strconv.Itoa(settings.LongBreakInterval)
	*s.dayStart = strconv.Itoa(settings.DayStartHour)
	*s.dayEnd = strconv.Itoa(settings.DayEndHour)
	*s.theme = settings.Theme
	*s.autoStart = settings.AutoStartNext
	*s.sound = settings.SoundEnabled
	*s.notify = settings.NotificationsEnabled
	*s.confirmEnd = settings.EndSessionConfirmation

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus (min)").Value(s.focusMin),
			huh.NewInput().Title("Short break (min)").Value(s.shortBreakMin),
			huh.NewInput().Title("Long break (min)").Value(s.longBreakMin),
			huh.NewInput().Title("Focus phases before long break").Value(s.interval),
		).Title("Phases"),
		huh.NewGroup(
			huh.NewInput().Title("Day starts (hour)").Value(s.dayStart),
			huh.NewInput().Title("Day ends (hour)").Value(s.dayEnd),
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("System", "system"),
					huh.NewOption("Light", "light"),
					huh.NewOption("Dark", "dark"),
				).Value(s.theme),
		).Title("Day"),
		huh.NewGroup(
			huh.NewConfirm().Title("Auto-start next phase").Value(s.autoStart),
			huh.NewConfirm().Title("Sound").Value(s.sound),
			huh.NewConfirm().Title("Notifications").Value(s.notify),
			huh.NewConfirm().Title("Confirm before ending a session").Value(s.confirmEnd),
		).Title("Behavior"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msgKey, ok := msg.(tea.KeyMsg); ok {
		if msgKey.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.apply()
		return s, func() tea.Msg { return statusMsg{text: "Settings updated."} }
	}

	return s, cmd
}

// apply writes the form values back. Malformed numbers keep the previous
// value; the clamp pass bounds everything afterwards, so bad input can
// never produce invalid settings.
func (s settingsModel) apply() {
	settings := &s.app.Workspace.Settings

	settings.FocusMinutes = atoiOr(*s.focusMin, settings.FocusMinutes)
	settings.ShortBreakMinutes = atoiOr(*s.shortBreakMin, settings.ShortBreakMinutes)
	settings.LongBreakMinutes = atoiOr(*s.longBreakMin, settings.LongBreakMinutes)
	settings.LongBreakInterval = atoiOr(*s.interval, settings.LongBreakInterval)
	settings.DayStartHour = atoiOr(*s.dayStart, settings.DayStartHour)
	settings.DayEndHour = atoiOr(*s.dayEnd, settings.DayEndHour)
	settings.Theme = *s.theme
	settings.AutoStartNext = *s.autoStart
	settings.SoundEnabled = *s.sound
	settings.NotificationsEnabled = *s.notify
	settings.EndSessionConfirmation = *s.confirmEnd
	settings.Clamp()

	// Changed durations take effect on a fresh idle phase.
	if s.app.Machine.Idle() {
		s.app.Machine.Initialize()
	}
	s.app.Save()
}

func atoiOr(s string, fallback int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return fallback
}

func (s settingsModel) view() string {
	w := s.width - 4

	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	settings := s.app.Workspace.Settings
	rows := []string{
		title,
		"",
		settingRow("Focus", fmt.Sprintf("%d min", settings.FocusMinutes)),
		settingRow("Short break", fmt.Sprintf("%d min", settings.ShortBreakMinutes)),
		settingRow("Long break", fmt.Sprintf("%d min", settings.LongBreakMinutes)),
		settingRow("Long break every", fmt.Sprintf("%d phases", settings.LongBreakInterval)),
		settingRow("Day window", fmt.Sprintf("%02d:00–%02d:00", settings.DayStartHour, settings.DayEndHour)),
		settingRow("Theme", settings.Theme),
		settingRow("Auto-start next", onOff(settings.AutoStartNext)),
		settingRow("Sound", onOff(settings.SoundEnabled)),
		settingRow("Notifications", onOff(settings.NotificationsEnabled)),
		settingRow("Confirm session end", onOff(settings.EndSessionConfirmation)),
		"",
		mutedStyle.Render("Press enter to edit settings"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	return fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(24).Render(label),
		highlightStyle.Render(value),
	)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
