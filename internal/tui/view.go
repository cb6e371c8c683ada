package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/cerebro/internal/errors"
	"github.com/Iron-Ham/cerebro/internal/state"
	"github.com/Iron-Ham/cerebro/internal/tui/keymap"
	"github.com/Iron-Ham/cerebro/internal/tui/styles"
)

// Layout constants
const (
	SidebarWidth    = 26 // Fixed sidebar width
	SidebarMinWidth = 18 // Minimum sidebar width

	// Layout offsets for content area calculation
	ContentWidthOffset  = 4 // sidebar gap + content margin
	ContentHeightOffset = 4 // toast line + help bar + margins
)

// contentDimensions returns the area left for the active section.
func contentDimensions(termWidth, termHeight int) (width, height int) {
	sidebar := SidebarWidth
	if termWidth < 80 {
		sidebar = SidebarMinWidth
	}
	return max(20, termWidth-sidebar-ContentWidthOffset), max(5, termHeight-ContentHeightOffset)
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width, height := contentDimensions(m.width, m.height)
	if m.chatOpen {
		width = max(20, width-chatWidth-2)
	}

	var content string
	switch m.section {
	case state.SectionIntro:
		content = m.renderIntro(width)
	case state.SectionBoard:
		content = m.renderBoard(width)
	case state.SectionFocus:
		content = m.renderFocus(width)
	case state.SectionReading:
		content = m.renderReading()
	case state.SectionOffer:
		content = m.renderOffer()
	}

	main := lipgloss.NewStyle().Width(width).Padding(0, 1).Render(content)
	row := []string{m.renderSidebar(height), main}
	if m.chatOpen {
		row = append(row, m.renderChat(height))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
	b.WriteString("\n")
	b.WriteString(m.renderToast())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderSidebar(height int) string {
	snap := m.ctrl.Snapshot()
	width := SidebarWidth
	if m.width > 0 && m.width < 80 {
		width = SidebarMinWidth
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("🧠 Cerebro TDAH"))
	b.WriteString("\n")
	for _, s := range state.Sections {
		marker := "  "
		if snap.Visited(s) {
			marker = "✓ "
		}
		line := marker + s.Title()
		if s == m.section {
			b.WriteString(styles.SidebarItemActive.Render("▸ " + s.Title()))
		} else {
			b.WriteString(styles.SidebarItem.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(fmt.Sprintf("Dominio del Caos %3d%%", snap.Progress)))
	b.WriteString("\n")
	b.WriteString(styles.ProgressBar(snap.Progress, width-4))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(state.ProgressLabel(snap.Progress)))
	if m.settings.Backend != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Muted.Render("IA: " + m.settings.Backend))
	}

	return styles.Sidebar.Width(width - 2).Height(max(1, height-2)).Render(b.String())
}

func (m Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	switch {
	case m.toast.severity >= errors.SeverityError:
		return styles.ToastError.Render(m.toast.text)
	case m.toast.severity == errors.SeverityWarning:
		return styles.ToastWarning.Render(m.toast.text)
	default:
		return styles.ToastInfo.Render(m.toast.text)
	}
}

func (m Model) renderHelp() string {
	switch m.mode {
	case keymap.ModeAddTask:
		return styles.HelpKey.Render("enter") + " " + styles.HelpDesc.Render("añadir") + "  " +
			styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("cancelar")
	case keymap.ModeChat:
		return styles.HelpKey.Render("enter") + " " + styles.HelpDesc.Render("enviar") + "  " +
			styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("cerrar coach")
	case keymap.ModeEditText:
		return styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("guardar texto")
	}

	bindings := m.keys.Help(m.section)
	if !m.showHelp && len(bindings) > 5 {
		bindings = append(bindings[:4:4], bindings[len(bindings)-1])
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		parts = append(parts, styles.HelpKey.Render(kb.Key)+" "+styles.HelpDesc.Render(kb.Desc))
	}
	if !m.showHelp {
		parts = append(parts, styles.HelpKey.Render("?")+" "+styles.HelpDesc.Render("más"))
	}
	return strings.Join(parts, "  ")
}
