package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlktrr/fokus/internal/app"
	"github.com/mlktrr/fokus/internal/stats"
)

const heatmapWeeks = 4

type statsModel struct {
	app    *app.App
	width  int
	height int

	summary stats.Summary
	heat    []stats.HeatCell
	chart   barchart.Model
}

func newStatsModel(a *app.App) statsModel {
	m := statsModel{app: a, chart: barchart.New(60, 10)}
	m.recompute()
	return m
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.recompute()
}

// recompute re-derives everything from the session log. Statistics are
// never persisted.
func (s *statsModel) recompute() {
	now := time.Now()
	s.summary = stats.Compute(s.app.Workspace, now)
	s.heat = stats.Heatmap(s.app.Workspace, heatmapWeeks, now)
	s.buildChart()
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	s.chart = barchart.New(chartWidth, 10)

	var bars []barchart.BarData
	for _, d := range s.summary.Last7Days {
		bars = append(bars, barchart.BarData{
			Label: d.Label,
			Values: []barchart.BarValue{{
				Name:  d.Date,
				Value: float64(d.Minutes),
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}
	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		s.recompute()
	}
	return s, nil
}

func (s statsModel) view() string {
	w := s.width - 4

	title := titleStyle.Render("Stats")

	summary := fmt.Sprintf(
		"Today: %s  Sessions: %s  Streak: %s  Best day: %s  Total: %s",
		highlightStyle.Render(fmt.Sprintf("%d min", s.summary.TodayFocusMinutes)),
		highlightStyle.Render(fmt.Sprintf("%d", s.summary.TodayFocusCount)),
		successStyle.Render(fmt.Sprintf("%d days", s.summary.StreakDays)),
		highlightStyle.Render(fmt.Sprintf("%d min", s.summary.BestDayMinutes)),
		highlightStyle.Render(fmt.Sprintf("%.1f h", float64(s.summary.TotalFocusMinutes)/60)),
	)

	chartView := s.chart.View()

	heatmap := s.renderHeatmap()

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title, "", summary, "", chartView, "", heatmap,
		),
	)
}

// renderHeatmap draws one row per week, oldest first.
func (s statsModel) renderHeatmap() string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("Last %d weeks", heatmapWeeks)))

	var row strings.Builder
	for i, cell := range s.heat {
		if i > 0 && i%7 == 0 {
			rows = append(rows, row.String())
			row.Reset()
		}
		style := lipgloss.NewStyle().Foreground(heatColors[cell.Level])
		row.WriteString(style.Render("■ "))
	}
	if row.Len() > 0 {
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}
