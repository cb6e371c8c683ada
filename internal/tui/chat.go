package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/cerebro/internal/state"
	"github.com/Iron-Ham/cerebro/internal/tui/keymap"
	tuimsg "github.com/Iron-Ham/cerebro/internal/tui/msg"
	"github.com/Iron-Ham/cerebro/internal/tui/styles"
	"github.com/Iron-Ham/cerebro/internal/util"
)

// chatWidth is the width of the chat panel.
const chatWidth = 36

func (m *Model) openChat() tea.Cmd {
	m.chatOpen = true
	m.mode = keymap.ModeChat
	return m.chatInput.Focus()
}

// handleChatKey feeds the chat input. enter sends, esc closes the panel.
func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.chatOpen = false
		m.mode = keymap.ModeNormal
		m.chatInput.Blur()
		return m, nil
	case "enter":
		text := m.chatInput.Value()
		history, err := m.ctrl.BeginChat(text)
		if err != nil {
			cmd := m.toastError("chat", err)
			return m, cmd
		}
		m.chatInput.Reset()
		return m, tuimsg.Reply(m.ctx, m.coach, history, text)
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// renderChat draws the most recent messages that fit in height.
func (m Model) renderChat(height int) string {
	inner := chatWidth - 4
	header := styles.Title.Render("Coach TDAH") + "\n" + styles.Muted.Render("Empático y directo")

	var bubbles []string
	for _, cm := range m.ctrl.Snapshot().ChatHistory {
		style := styles.ChatCoach
		align := lipgloss.Left
		if cm.Role == state.RoleUser {
			style = styles.ChatUser
			align = lipgloss.Right
		}
		text := strings.Join(util.Wrap(cm.Text, inner-4), "\n")
		bubbles = append(bubbles, lipgloss.PlaceHorizontal(inner, align, style.Render(text)))
	}
	if m.ctrl.Typing() {
		bubbles = append(bubbles, styles.Muted.Render("…"))
	}

	// Keep the newest messages visible.
	budget := max(3, height-6)
	var shown []string
	used := 0
	for i := len(bubbles) - 1; i >= 0; i-- {
		h := lipgloss.Height(bubbles[i])
		if used+h > budget && len(shown) > 0 {
			break
		}
		shown = append([]string{bubbles[i]}, shown...)
		used += h
	}

	body := lipgloss.JoinVertical(lipgloss.Left, shown...)
	return styles.Panel.Width(chatWidth).Render(header + "\n\n" + body + "\n\n" + m.chatInput.View())
}
