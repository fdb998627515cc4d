package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tannerv/schedsim/internal/events"
)

// runSummary is the displayed outcome of one scenario.
type runSummary struct {
	name    string
	order   string
	elapsed int
	failed  bool
	done    bool
}

// SummaryPaneModel shows overall progress: completed vs total tasks of
// the current run and the results of finished scenarios.
type SummaryPaneModel struct {
	total     int
	completed int
	inFlight  int
	runs      []runSummary
	runIdx    map[string]int
	width     int
	height    int
	focused   bool
}

// NewSummaryPaneModel creates a new summary pane model.
func NewSummaryPaneModel() SummaryPaneModel {
	return SummaryPaneModel{runIdx: make(map[string]int)}
}

// Update handles messages for the summary pane.
func (m SummaryPaneModel) Update(msg tea.Msg) (SummaryPaneModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case events.RunStartedEvent:
		m.total = msg.TaskCount
		m.completed = 0
		m.inFlight = 0
		m.track(msg.Name)

	case events.TaskAssignedEvent:
		m.inFlight++

	case events.TaskCompletedEvent:
		m.inFlight--
		m.completed++

	case events.RunFinishedEvent:
		i := m.track(msg.Name)
		m.runs[i].order = msg.Order
		m.runs[i].elapsed = msg.Elapsed
		m.runs[i].done = true

	case events.RunFailedEvent:
		i := m.track(msg.Name)
		m.runs[i].failed = true
		m.runs[i].done = true
	}

	return m, nil
}

// track returns the index of the named run, registering it on first sight.
func (m *SummaryPaneModel) track(name string) int {
	if i, ok := m.runIdx[name]; ok {
		return i
	}
	m.runs = append(m.runs, runSummary{name: name})
	m.runIdx[name] = len(m.runs) - 1
	return len(m.runs) - 1
}

// View renders the summary pane.
func (m SummaryPaneModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := StyleTitle.Render("Run Summary")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", lipgloss.Width(title)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Tasks:     %d\n", m.total))
	b.WriteString(fmt.Sprintf("Completed: %s\n", StyleDone.Render(fmt.Sprintf("%d", m.completed))))
	b.WriteString(fmt.Sprintf("In flight: %s\n", StyleWorking.Render(fmt.Sprintf("%d", m.inFlight))))
	b.WriteString("\n")

	if m.total > 0 {
		barWidth := min(m.width-4, 40)
		completedWidth := (m.completed * barWidth) / m.total
		inFlightWidth := (m.inFlight * barWidth) / m.total
		pendingWidth := barWidth - completedWidth - inFlightWidth

		bar := StyleDone.Render(strings.Repeat("=", max(0, completedWidth)))
		bar += StyleWorking.Render(strings.Repeat("-", max(0, inFlightWidth)))
		bar += StyleIdle.Render(strings.Repeat(".", max(0, pendingWidth)))

		b.WriteString(fmt.Sprintf("[%s]  %d/%d\n", bar, m.completed, m.total))
	}

	if len(m.runs) > 0 {
		b.WriteString("\n")
		for _, run := range m.runs {
			switch {
			case run.failed:
				b.WriteString(fmt.Sprintf("%s %s\n", StyleFailed.Render("✗"), run.name))
			case run.done:
				b.WriteString(fmt.Sprintf("%s %s: %s in %d\n",
					StyleDone.Render("✓"), run.name, run.order, run.elapsed))
			default:
				b.WriteString(fmt.Sprintf("%s %s\n", StyleWorking.Render("●"), run.name))
			}
		}
	}

	style := StyleUnfocusedBorder
	if m.focused {
		style = StyleFocusedBorder
	}

	return style.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(b.String())
}

// SetSize updates the pane dimensions.
func (m *SummaryPaneModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused updates the focus state.
func (m *SummaryPaneModel) SetFocused(focused bool) {
	m.focused = focused
}
