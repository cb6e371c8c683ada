package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/cerebro/internal/board"
	"github.com/Iron-Ham/cerebro/internal/errors"
	"github.com/Iron-Ham/cerebro/internal/tui/keymap"
	tuimsg "github.com/Iron-Ham/cerebro/internal/tui/msg"
	"github.com/Iron-Ham/cerebro/internal/tui/styles"
	"github.com/Iron-Ham/cerebro/internal/util"
)

// busyLabel replaces the breakdown hint while a request is outstanding.
const busyLabel = "Thinking..."

// urgentFullLabel marks the urgent header while the carried card cannot land there.
const urgentFullLabel = "🛑 lleno"

func (m Model) handleBoardCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdLeft:
		m.moveCursor(-1, 0)
	case keymap.CmdRight:
		m.moveCursor(1, 0)
	case keymap.CmdUp:
		m.moveCursor(0, -1)
	case keymap.CmdDown:
		m.moveCursor(0, 1)
	case keymap.CmdAddTask:
		m.mode = keymap.ModeAddTask
		m.taskInput.Reset()
		cmd := m.taskInput.Focus()
		return m, cmd
	case keymap.CmdDeleteTask:
		if task, ok := m.selectedTask(); ok {
			m.ctrl.RemoveTask(task.ID)
			if m.board.holding == task.ID {
				m.board.holding = ""
			}
			m.clampRow()
		}
	case keymap.CmdPickDrop:
		if m.board.holding != "" {
			cmd := m.drop(m.board.holding, board.Columns[m.board.col])
			return m, cmd
		}
		if task, ok := m.selectedTask(); ok {
			m.board.holding = task.ID
		}
	case keymap.CmdDropUrgent:
		cmd := m.dropCurrent(board.Urgent)
		return m, cmd
	case keymap.CmdDropProcess:
		cmd := m.dropCurrent(board.InProgress)
		return m, cmd
	case keymap.CmdDropDone:
		cmd := m.dropCurrent(board.DoneOrIdea)
		return m, cmd
	case keymap.CmdBreakdown:
		cmd := m.startBreakdown()
		return m, cmd
	case keymap.CmdCancel:
		m.board.holding = ""
	}
	return m, nil
}

// handleAddTaskKey feeds the task input until enter or esc.
func (m Model) handleAddTaskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = keymap.ModeNormal
		m.taskInput.Blur()
		m.taskInput.Reset()
		return m, nil
	case "enter":
		task, err := m.ctrl.AddTask(m.taskInput.Value())
		if err != nil {
			cmd := m.toastError("add_task", err)
			return m, cmd
		}
		m.mode = keymap.ModeNormal
		m.taskInput.Blur()
		m.taskInput.Reset()
		m.focusTask(task.ID)
		return m, nil
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

// dropCurrent moves the carried task, or the selected one, to target.
func (m *Model) dropCurrent(target board.Column) tea.Cmd {
	id := m.board.holding
	if id == "" {
		task, ok := m.selectedTask()
		if !ok {
			return nil
		}
		id = task.ID
	}
	return m.drop(id, target)
}

// drop applies the board policy. A rejection leaves the card in hand so the
// user can pick another column.
func (m *Model) drop(id string, target board.Column) tea.Cmd {
	if err := m.ctrl.DropTask(id, target); err != nil {
		return m.toastError("drop_task", err)
	}
	m.board.holding = ""
	m.focusTask(id)
	return nil
}

// startBreakdown claims the busy flag and launches the decomposition.
func (m *Model) startBreakdown() tea.Cmd {
	task, ok := m.selectedTask()
	if !ok {
		return nil
	}
	content, err := m.ctrl.BeginBreakdown(task.ID)
	if err != nil {
		return m.toastError("breakdown", err)
	}
	m.logger.Info("breakdown requested", "task_id", task.ID)
	return tuimsg.Breakdown(m.ctx, m.coach, task.ID, content)
}

func (m Model) handleBreakdownDone(msg tuimsg.BreakdownDoneMsg) (tea.Model, tea.Cmd) {
	created := m.ctrl.ApplyBreakdown(msg.TaskID, msg.Result.Steps)
	m.ctrl.EndBreakdown()

	if created == nil {
		cmd := m.showToast("La tarea ya no existe.", errors.SeverityInfo)
		return m, cmd
	}
	m.focusTask(created[0].ID)
	text := fmt.Sprintf("✨ %d micro-pasos creados", len(created))
	if msg.Result.Fallback {
		text = fmt.Sprintf("✨ %d pasos sugeridos (sin conexión con la IA)", len(created))
	}
	cmd := m.showToast(text, errors.SeverityInfo)
	return m, cmd
}

func (m Model) columnTasks(col int) []board.Task {
	return m.ctrl.Snapshot().Tasks.InColumn(board.Columns[col])
}

func (m Model) selectedTask() (board.Task, bool) {
	tasks := m.columnTasks(m.board.col)
	if m.board.row < 0 || m.board.row >= len(tasks) {
		return board.Task{}, false
	}
	return tasks[m.board.row], true
}

func (m *Model) moveCursor(dcol, drow int) {
	m.board.col = max(0, min(len(board.Columns)-1, m.board.col+dcol))
	m.board.row += drow
	m.clampRow()
}

func (m *Model) clampRow() {
	n := len(m.columnTasks(m.board.col))
	m.board.row = max(0, min(n-1, m.board.row))
}

// focusTask moves the cursor onto task id.
func (m *Model) focusTask(id string) {
	task, ok := m.ctrl.Snapshot().Tasks.Find(id)
	if !ok {
		return
	}
	m.board.col = task.Column.Index()
	for i, t := range m.columnTasks(m.board.col) {
		if t.ID == id {
			m.board.row = i
			return
		}
	}
}

// renderBoard draws the three columns side by side.
func (m Model) renderBoard(width int) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Tablero Semáforo"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Mueve las tareas. Mantén el rojo bajo control."))
	b.WriteString("\n\n")

	if m.mode == keymap.ModeAddTask {
		b.WriteString(m.taskInput.View())
		b.WriteString("\n\n")
	}

	colWidth := max(14, (width-4)/len(board.Columns))
	busy := m.ctrl.Busy()
	cols := make([]string, len(board.Columns))
	for i, c := range board.Columns {
		cols[i] = m.renderColumn(i, c, colWidth, busy)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	return b.String()
}

func (m Model) renderColumn(index int, c board.Column, width int, busy bool) string {
	tasks := m.columnTasks(index)
	header := c.Title()
	if c == board.Urgent {
		header = fmt.Sprintf("%s %d/%d", header, len(tasks), board.UrgentCapacity)
		if m.board.holding != "" && !m.ctrl.CanDrop(m.board.holding, board.Urgent) {
			header += " · " + urgentFullLabel
		}
	}

	lines := []string{styles.ColumnHeader(index).Width(width - 2).Render(util.Truncate(header, width-2))}
	if len(tasks) == 0 {
		lines = append(lines, styles.Muted.Render("(vacío)"))
	}
	for row, t := range tasks {
		style := styles.Card
		selected := index == m.board.col && row == m.board.row
		switch {
		case t.ID == m.board.holding:
			style = styles.CardHeld
		case selected:
			style = styles.CardSelected
		}
		content := strings.Join(util.Wrap(t.Content, width-6), "\n")
		if selected && t.ID != m.board.holding {
			hint := "s: ✨ Desglosar"
			if busy {
				hint = busyLabel
			}
			content += "\n" + styles.Muted.Render(hint)
		}
		lines = append(lines, style.Width(width-2).Render(content))
	}
	return lipgloss.NewStyle().Width(width).PaddingRight(1).Render(strings.Join(lines, "\n"))
}
