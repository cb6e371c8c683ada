package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/cerebro/internal/errors"
	"github.com/Iron-Ham/cerebro/internal/state"
	"github.com/Iron-Ham/cerebro/internal/tui/keymap"
	tuimsg "github.com/Iron-Ham/cerebro/internal/tui/msg"
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tuimsg.FocusTickMsg:
		return m.handleFocusTick()

	case tuimsg.ToastExpiredMsg:
		if m.toast != nil && m.toast.id == msg.ID {
			m.toast = nil
		}
		return m, nil

	case tuimsg.BreakdownDoneMsg:
		return m.handleBreakdownDone(msg)

	case tuimsg.ChatReplyMsg:
		m.ctrl.EndChat(msg.Answer.Text)
		return m, nil

	case tuimsg.ConfigReloadedMsg:
		m.applySettings(msg)
		return m, nil
	}

	return m, nil
}

// handleKey routes a key press by input mode, then by keymap.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case keymap.ModeAddTask:
		return m.handleAddTaskKey(msg)
	case keymap.ModeChat:
		return m.handleChatKey(msg)
	case keymap.ModeEditText:
		return m.handleEditKey(msg)
	}

	cmd, ok := m.keys.Lookup(m.section, msg.String())
	if !ok {
		return m, nil
	}
	return m.dispatch(cmd, msg)
}

// dispatch executes a normal-mode command.
func (m Model) dispatch(cmd keymap.Command, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit
	case keymap.CmdNextSection:
		m.goTo(offsetSection(m.section, 1))
		return m, nil
	case keymap.CmdPrevSection:
		m.goTo(offsetSection(m.section, -1))
		return m, nil
	case keymap.CmdToggleChat:
		cmd := m.openChat()
		return m, cmd
	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp
		return m, nil
	case keymap.CmdContinue:
		m.goTo(state.SectionBoard)
		return m, nil
	}

	switch m.section {
	case state.SectionBoard:
		return m.handleBoardCommand(cmd)
	case state.SectionFocus:
		return m.handleFocusCommand(cmd)
	case state.SectionReading:
		return m.handleReadingCommand(cmd, msg)
	}
	return m, nil
}

// goTo switches section and records the visit.
func (m *Model) goTo(s state.Section) {
	m.section = s
	m.board.holding = ""
	m.ctrl.Visit(s)
}

// offsetSection returns the section delta positions away, wrapping around.
func offsetSection(s state.Section, delta int) state.Section {
	n := len(state.Sections)
	for i, sec := range state.Sections {
		if sec == s {
			return state.Sections[((i+delta)%n+n)%n]
		}
	}
	return state.Sections[0]
}

// showToast displays text and schedules its dismissal.
func (m *Model) showToast(text string, severity errors.Severity) tea.Cmd {
	m.toastSeq++
	m.toast = &toast{id: m.toastSeq, text: text, severity: severity}
	return tuimsg.ExpireToast(m.toastSeq, m.settings.ToastDuration)
}

// toastError shows err the way users should see it. Rejections are expected
// outcomes and are not logged as errors.
func (m *Model) toastError(op string, err error) tea.Cmd {
	if !errors.IsRejection(err) {
		m.logger.Error("operation failed", "op", op, "error", err.Error())
	}
	return m.showToast(errors.UserMessage(err), errors.GetSeverity(err))
}

func (m *Model) applySettings(msg tuimsg.ConfigReloadedMsg) {
	if msg.ToastDuration > 0 {
		m.settings.ToastDuration = msg.ToastDuration
	}
	if msg.FocusDuration > 0 {
		m.settings.FocusDuration = msg.FocusDuration
		m.timer.SetDuration(msg.FocusDuration)
	}
	m.settings.Bell = msg.Bell
	m.logger.Info("settings reloaded",
		"focus_duration", m.settings.FocusDuration.String(),
		"bell", m.settings.Bell,
	)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	w, h := contentDimensions(width, height)
	m.viewport.Width = w
	m.viewport.Height = max(3, h-6)
	m.editor.SetWidth(w)
	m.editor.SetHeight(max(3, h-6))
	m.taskInput.Width = max(10, w-4)
	m.refreshReading()
}
