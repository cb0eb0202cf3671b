package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlktrr/fokus/internal/app"
	"github.com/mlktrr/fokus/internal/workspace"
)

type timerModel struct {
	app    *app.App
	width  int
	height int

	// Index into the active (non-archived) project list, -1 = none.
	contextIdx int
}

func newTimerModel(a *app.App) timerModel {
	return timerModel{app: a, contextIdx: -1}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	mach := t.app.Machine
	switch {
	case key.Matches(msgKey, keys.Toggle):
		switch {
		case mach.Running():
			mach.Pause()
		case mach.Paused():
			mach.Resume()
		default:
			mach.Start()
		}
		return t, nil

	case key.Matches(msgKey, keys.Skip):
		return t, func() tea.Msg { return requestEndMsg{reason: "skip"} }

	case key.Matches(msgKey, keys.Reset):
		if mach.Idle() {
			mach.Reset()
			return t, nil
		}
		return t, func() tea.Msg { return requestEndMsg{reason: "reset"} }

	case key.Matches(msgKey, keys.Context):
		t.cycleContext()
		return t, nil
	}
	return t, nil
}

// cycleContext steps the session context through the active projects:
// none -> first -> ... -> last -> none.
func (t *timerModel) cycleContext() {
	var active []workspace.Project
	for _, p := range t.app.Workspace.Projects {
		if !p.Archived {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		t.contextIdx = -1
		t.app.Machine.SetContext(nil)
		return
	}

	t.contextIdx++
	if t.contextIdx >= len(active) {
		t.contextIdx = -1
		t.app.Machine.SetContext(nil)
		return
	}
	p := active[t.contextIdx]
	t.app.Machine.SetContext(&workspace.ContextRef{GoalID: p.GoalID, ProjectID: p.ID})
}

func (t timerModel) view() string {
	w := t.width - 4
	mach := t.app.Machine

	title := titleStyle.Render("Timer")

	style := timerIdleStyle
	stateLabel := "Ready"
	if mach.Running() {
		style = timerRunningStyle
		stateLabel = "Running"
	} else if mach.Paused() {
		style = timerPausedStyle
		stateLabel = "Paused"
	}

	display := style.Width(w - 6).Render(formatSeconds(mach.Remaining()))
	phase := highlightStyle.Bold(true).Render(strings.ToUpper(modeLabel(mach.Mode())))

	progress := t.renderProgress()

	contextLine := mutedStyle.Render("No project selected (c to select)")
	if ref := mach.Context(); ref != nil {
		resolved := t.app.Workspace.ResolveContext(ref)
		contextLine = highlightStyle.Render("▸ " + resolved.ProjectName)
	}

	var controls string
	switch {
	case mach.Running():
		controls = mutedStyle.Render("space: pause  s: skip  r: reset")
	case mach.Paused():
		controls = mutedStyle.Render("space: resume  s: skip  r: reset")
	default:
		controls = mutedStyle.Render("space: start  c: project  q: quit")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		display,
		phase+"  "+mutedStyle.Render(stateLabel),
		"",
		progress,
		contextLine,
		"",
		controls,
	)

	return panelStyle.Width(w).Render(content)
}

// renderProgress draws the long-break cadence dots for the current cycle.
func (t timerModel) renderProgress() string {
	interval := t.app.Workspace.Settings.LongBreakInterval
	done := t.app.Machine.PhaseCount() % interval
	if done == 0 && t.app.Machine.PhaseCount() > 0 && t.app.Machine.Mode() == workspace.ModeLongBreak {
		done = interval
	}

	var parts []string
	for i := 0; i < interval; i++ {
		if i < done {
			parts = append(parts, successStyle.Render("●"))
		} else if i == done && t.app.Machine.Mode() == workspace.ModeFocus && t.app.Machine.Running() {
			parts = append(parts, highlightStyle.Render("◐"))
		} else {
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d focus phases", t.app.Machine.PhaseCount()))
	return strings.Join(parts, " ") + counter
}
