package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/tannerv/schedsim/internal/events"
)

// workerView is the displayed state of one simulated worker.
type workerView struct {
	taskID string // "" when idle
	doneAt int
}

// WorkerPaneModel shows the simulated workers on the left and a
// scrollable tick log of assignments and completions on the right.
type WorkerPaneModel struct {
	scenario string
	workers  []workerView
	log      []string
	viewport viewport.Model
	width    int
	height   int
	focused  bool
}

// NewWorkerPaneModel creates a new worker pane model.
func NewWorkerPaneModel() WorkerPaneModel {
	vp := viewport.New(0, 0)
	return WorkerPaneModel{viewport: vp}
}

// Update handles messages for the worker pane.
func (m WorkerPaneModel) Update(msg tea.Msg) (WorkerPaneModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()

	case tea.KeyMsg:
		if !m.focused {
			break
		}
		// All keys go to the viewport for scrolling.
		m.viewport, cmd = m.viewport.Update(msg)

	case events.RunStartedEvent:
		m.scenario = msg.Name
		m.workers = make([]workerView, msg.Workers)
		m.log = append(m.log, fmt.Sprintf("── %s: %d tasks, %d workers, base cost %d ──",
			msg.Name, msg.TaskCount, msg.Workers, msg.BaseCost))
		m.refreshLog()

	case events.TaskAssignedEvent:
		m.setWorker(msg.Worker, workerView{taskID: msg.TaskID, doneAt: msg.DoneAt})
		m.log = append(m.log, fmt.Sprintf("t=%-4d worker %d starts %s (done at t=%d)",
			msg.Tick, msg.Worker, msg.TaskID, msg.DoneAt))
		m.refreshLog()

	case events.TaskCompletedEvent:
		m.setWorker(msg.Worker, workerView{})
		m.log = append(m.log, fmt.Sprintf("t=%-4d worker %d finished %s",
			msg.Tick, msg.Worker, msg.TaskID))
		m.refreshLog()

	case events.RunFinishedEvent:
		m.log = append(m.log, fmt.Sprintf("── %s: order %s, makespan %d ──",
			msg.Name, msg.Order, msg.Elapsed))
		m.refreshLog()

	case events.RunFailedEvent:
		m.log = append(m.log, StyleFailed.Render(fmt.Sprintf("── %s failed: %v ──", msg.Name, msg.Err)))
		m.refreshLog()
	}

	return m, cmd
}

func (m *WorkerPaneModel) setWorker(i int, w workerView) {
	for len(m.workers) <= i {
		m.workers = append(m.workers, workerView{})
	}
	m.workers[i] = w
}

// View renders the worker pane.
func (m WorkerPaneModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	listWidth := 22
	logWidth := m.width - listWidth - 4

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderWorkerList(listWidth),
		lipgloss.NewStyle().
			Width(logWidth).
			Height(m.height-2).
			Render(m.viewport.View()),
	)

	style := StyleUnfocusedBorder
	if m.focused {
		style = StyleFocusedBorder
	}

	return style.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(content)
}

// renderWorkerList renders the worker status column.
func (m WorkerPaneModel) renderWorkerList(width int) string {
	var b strings.Builder

	title := StyleTitle.Render("Workers")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", min(width, lipgloss.Width(title))))
	b.WriteString("\n\n")

	if len(m.workers) == 0 {
		b.WriteString(StyleIdle.Render("Waiting..."))
	} else {
		for i, w := range m.workers {
			var line string
			if w.taskID == "" {
				line = fmt.Sprintf("%d %s", i, StyleIdle.Render("idle"))
			} else {
				line = fmt.Sprintf("%d %s", i, StyleWorking.Render(fmt.Sprintf("%s → t=%d", w.taskID, w.doneAt)))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(m.height - 2).
		Render(b.String())
}

// refreshLog replaces the viewport content with the full tick log and
// scrolls to the bottom.
func (m *WorkerPaneModel) refreshLog() {
	m.viewport.SetContent(strings.Join(m.log, "\n"))
	m.viewport.GotoBottom()
}

// resizeViewport resizes the log viewport based on pane dimensions.
func (m *WorkerPaneModel) resizeViewport() {
	logWidth := m.width - 22 - 4
	logHeight := m.height - 4

	if logWidth < 10 {
		logWidth = 10
	}
	if logHeight < 5 {
		logHeight = 5
	}

	m.viewport.Width = logWidth
	m.viewport.Height = logHeight
}

// SetSize updates the pane dimensions.
func (m *WorkerPaneModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.resizeViewport()
}

// SetFocused updates the focus state.
func (m *WorkerPaneModel) SetFocused(focused bool) {
	m.focused = focused
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
