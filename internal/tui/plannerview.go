package tui

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlktrr/fokus/internal/app"
	"github.com/mlktrr/fokus/internal/workspace"
)

type plannerModel struct {
	app    *app.App
	width  int
	height int

	cursor      int
	inputActive bool
	input       textinput.Model
}

func newPlannerModel(a *app.App) plannerModel {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 120
	return plannerModel{app: a, input: ti}
}

func (p *plannerModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

// today reads the current planner day without creating it; all
// mutations go through Workspace methods that create on demand.
func (p plannerModel) today() (string, workspace.PlannerDay) {
	date := workspace.DayKey(time.Now())
	return date, p.app.Workspace.DayView(date)
}

func (p plannerModel) update(msg tea.Msg) (plannerModel, tea.Cmd) {
	if p.inputActive {
		return p.updateInput(msg)
	}

	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	date, day := p.today()
	switch {
	case key.Matches(msgKey, keys.New):
		p.inputActive = true
		p.input.SetValue("")
		return p, p.input.Focus()

	case key.Matches(msgKey, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msgKey, keys.Down):
		if p.cursor < len(day.Todos)-1 {
			p.cursor++
		}

	case key.Matches(msgKey, keys.Enter):
		if p.cursor < len(day.Todos) {
			p.app.Workspace.ToggleTodo(date, day.Todos[p.cursor].ID)
			p.save()
		}

	case key.Matches(msgKey, keys.Delete):
		if p.cursor < len(day.Todos) {
			p.app.Workspace.RemoveTodo(date, day.Todos[p.cursor].ID)
			if left := len(p.app.Workspace.DayView(date).Todos); p.cursor >= left && p.cursor > 0 {
				p.cursor--
			}
			p.save()
		}

	case key.Matches(msgKey, keys.Schedule):
		if p.cursor < len(day.Todos) {
			return p.scheduleSelected(date, day)
		}
	}
	return p, nil
}

func (p plannerModel) updateInput(msg tea.Msg) (plannerModel, tea.Cmd) {
	if msgKey, ok := msg.(tea.KeyMsg); ok {
		switch msgKey.String() {
		case "enter":
			text := p.input.Value()
			if text != "" {
				date, _ := p.today()
				p.app.Workspace.AddTodo(date, text)
				p.save()
			}
			p.inputActive = false
			p.input.Blur()
			return p, nil
		case "esc":
			p.inputActive = false
			p.input.Blur()
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// scheduleSelected places the selected todo into the next free whole-hour
// slot of the day window.
func (p plannerModel) scheduleSelected(date string, day workspace.PlannerDay) (plannerModel, tea.Cmd) {
	todo := day.Todos[p.cursor]
	if todo.Scheduled {
		return p, func() tea.Msg { return statusMsg{text: "Already scheduled."} }
	}

	settings := p.app.Workspace.Settings
	start, ok := nextFreeHour(day.Blocks, settings.DayStartHour, settings.DayEndHour)
	if !ok {
		return p, func() tea.Msg { return statusMsg{text: "No free slot left today.", isError: true} }
	}

	_, err := p.app.Workspace.ScheduleTodo(date, todo.ID,
		workspace.FormatClock(start*60), workspace.FormatClock((start+1)*60))
	if err != nil {
		return p, func() tea.Msg { return statusMsg{text: err.Error(), isError: true} }
	}
	p.save()
	return p, nil
}

// nextFreeHour finds the earliest whole hour in [startHour, endHour) not
// covered by an existing block.
func nextFreeHour(blocks []workspace.TimeBlock, startHour, endHour int) (int, bool) {
	for h := startHour; h < endHour; h++ {
		slotStart := h * 60
		slotEnd := slotStart + 60
		free := true
		for _, b := range blocks {
			bs, err1 := workspace.ParseClock(b.Start)
			be, err2 := workspace.ParseClock(b.End)
			if err1 != nil || err2 != nil {
				continue
			}
			if bs < slotEnd && be > slotStart {
				free = false
				break
			}
		}
		if free {
			return h, true
		}
	}
	return 0, false
}

func (p plannerModel) save() {
	p.app.Save()
}

func (p plannerModel) view() string {
	w := p.width - 4
	date, day := p.today()

	title := titleStyle.Render("Planner " + date)

	var lines []string
	lines = append(lines, title, "")

	lines = append(lines, highlightStyle.Render("Time blocks"))
	if len(day.Blocks) == 0 {
		lines = append(lines, mutedStyle.Render("  none planned"))
	} else {
		blocks := make([]workspace.TimeBlock, len(day.Blocks))
		copy(blocks, day.Blocks)
		sort.Slice(blocks, func(i, j int) bool { return blocks[i].Start < blocks[j].Start })
		for _, b := range blocks {
			marker := " "
			if b.Source == workspace.BlockFromTodo {
				marker = "◆"
			}
			lines = append(lines, fmt.Sprintf("  %s %s–%s  %s", marker, b.Start, b.End, b.Title))
		}
	}

	lines = append(lines, "", highlightStyle.Render("Todos"))
	if len(day.Todos) == 0 {
		lines = append(lines, mutedStyle.Render("  nothing yet (n to add)"))
	}
	for i, todo := range day.Todos {
		check := "[ ]"
		if todo.Done {
			check = "[x]"
		}
		sched := ""
		if todo.Scheduled {
			sched = mutedStyle.Render(" (scheduled)")
		}
		line := fmt.Sprintf("%s %s%s", check, todo.Text, sched)
		if i == p.cursor {
			line = selectedItemStyle.Render("> " + line)
		} else {
			line = normalItemStyle.Render("  " + line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	if p.inputActive {
		lines = append(lines, p.input.View())
	} else {
		lines = append(lines, mutedStyle.Render("n: new  enter: toggle  b: schedule  d: delete"))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
