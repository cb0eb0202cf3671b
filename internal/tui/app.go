package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlktrr/fokus/internal/app"
	"github.com/mlktrr/fokus/internal/timer"
	"github.com/mlktrr/fokus/internal/workspace"
)

// tickInterval drives Machine.Resync. Timing correctness never depends on
// it; a stalled terminal only delays observation of an elapsed phase.
const tickInterval = 250 * time.Millisecond

// Model is the root Bubble Tea model.
type Model struct {
	app    *app.App
	width  int
	height int

	activeView viewState
	showHelp   bool

	// Confirmation gate overlay state.
	confirming bool
	pendingEnd timer.Reason

	// Completed-phase records pushed by the notification collaborator,
	// drained on the next tick.
	notices chan workspace.SessionRecord

	lastSessionCount int

	timerView timerModel
	planner   plannerModel
	statsView statsModel
	settings  settingsModel

	help      help.Model
	status    string
	statusErr bool
}

// NewModel builds the root model over an opened app.
func NewModel(a *app.App) Model {
	h := help.New()
	h.ShowAll = false

	m := Model{
		app:              a,
		notices:          make(chan workspace.SessionRecord, 8),
		lastSessionCount: len(a.Workspace.Sessions),
		timerView:        newTimerModel(a),
		planner:          newPlannerModel(a),
		statsView:        newStatsModel(a),
		settings:         newSettingsModel(a),
		help:             h,
	}
	if a.LoadWarning != "" {
		m.status = a.LoadWarning
		m.statusErr = true
	}

	a.SetNotify(func(rec workspace.SessionRecord) {
		select {
		case m.notices <- rec:
		default:
		}
	})
	return m
}

// Run opens the TUI over the app and blocks until quit.
func Run(a *app.App) error {
	p := tea.NewProgram(NewModel(a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := m.height - 4
		m.timerView.setSize(m.width, contentHeight)
		m.planner.setSize(m.width, contentHeight)
		m.statsView.setSize(m.width, contentHeight)
		m.settings.setSize(m.width, contentHeight)
		return m, nil

	case tickMsg:
		m.app.Machine.Resync(time.Time(msg))
		m = m.drainNotices()
		if n := len(m.app.Workspace.Sessions); n != m.lastSessionCount {
			m.lastSessionCount = n
			if err := m.app.Save(); err != nil {
				m.status, m.statusErr = fmt.Sprintf("Save failed: %v", err), true
			}
		}
		return m, tickCmd()

	case requestEndMsg:
		if m.app.Workspace.Settings.EndSessionConfirmation && !m.app.Machine.Idle() {
			m.confirming = true
			m.pendingEnd = msg.reason
			return m, nil
		}
		return m.performEnd(msg.reason), nil

	case statusMsg:
		m.status = msg.text
		m.statusErr = msg.isError
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			return m.updateConfirm(msg)
		}
		if m.settings.formActive || m.planner.inputActive {
			return m.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			// Stay open on a failed save; quitting would drop the data.
			if err := m.app.Save(); err != nil {
				m.status, m.statusErr = fmt.Sprintf("Save failed: %v", err), true
				return m, nil
			}
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			return m, nil
		case key.Matches(msg, keys.Tab1):
			m.activeView = viewTimer
			return m, nil
		case key.Matches(msg, keys.Tab2):
			m.activeView = viewPlanner
			return m, nil
		case key.Matches(msg, keys.Tab3):
			m.activeView = viewStats
			m.statsView.recompute()
			return m, nil
		case key.Matches(msg, keys.Tab4):
			m.activeView = viewSettings
			return m, nil
		case key.Matches(msg, keys.Tab):
			m.activeView = (m.activeView + 1) % 4
			if m.activeView == viewStats {
				m.statsView.recompute()
			}
			return m, nil
		}
	}

	return m.updateActiveView(msg)
}

// drainNotices turns completed-phase records into the status line (and
// the terminal bell when sound is enabled).
func (m Model) drainNotices() Model {
	for {
		select {
		case rec := <-m.notices:
			if !m.app.Workspace.Settings.NotificationsEnabled {
				continue
			}
			text := fmt.Sprintf("%s complete (%d min)", modeLabel(rec.SessionType), rec.DurationSeconds/60)
			if m.app.Workspace.Settings.SoundEnabled {
				text += "\a"
			}
			m.status, m.statusErr = text, false
		default:
			return m
		}
	}
}

// performEnd runs the already-confirmed phase end. The machine's own
// gate stays uninstalled here; this overlay is the confirmation
// collaborator.
func (m Model) performEnd(reason timer.Reason) Model {
	switch reason {
	case timer.ReasonReset:
		m.app.Machine.Reset()
	default:
		m.app.Machine.Skip()
	}
	return m
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirming = false
		return m.performEnd(m.pendingEnd), nil
	case "n", "N", "esc":
		m.confirming = false
		m.status, m.statusErr = "Cancelled.", false
		return m, nil
	}
	return m, nil
}

func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeView {
	case viewTimer:
		m.timerView, cmd = m.timerView.update(msg)
	case viewPlanner:
		m.planner, cmd = m.planner.update(msg)
	case viewStats:
		m.statsView, cmd = m.statsView.update(msg)
	case viewSettings:
		m.settings, cmd = m.settings.update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	var content string
	switch m.activeView {
	case viewTimer:
		content = m.timerView.view()
	case viewPlanner:
		content = m.planner.view()
	case viewStats:
		content = m.statsView.view()
	case viewSettings:
		content = m.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if m.confirming {
		content = m.renderConfirm()
	}

	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m Model) renderConfirm() string {
	prompt := titleStyle.Render("End this session now?")
	hint := mutedStyle.Render("y: end it  n: keep going")
	return overlayStyle.Width(m.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, prompt, "", hint),
	)
}

func (m Model) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == m.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("fokus")
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (m Model) renderFooter() string {
	helpView := m.help.View(keys)

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = errorStyle.Render(" " + m.status)
		} else {
			status = mutedStyle.Render(" " + m.status)
		}
	}

	timerInfo := ""
	mach := m.app.Machine
	if mach.Running() {
		timerInfo = successStyle.Render(" ● " + formatSeconds(mach.Remaining()))
	} else if mach.Paused() {
		timerInfo = warningStyle.Render(" ⏸ " + formatSeconds(mach.Remaining()))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
