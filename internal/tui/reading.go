package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/cerebro/internal/bionic"
	"github.com/Iron-Ham/cerebro/internal/tui/keymap"
	"github.com/Iron-Ham/cerebro/internal/tui/styles"
)

func (m Model) handleReadingCommand(cmd keymap.Command, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdEditText:
		m.mode = keymap.ModeEditText
		m.editor.SetValue(m.reading.text)
		cmd := m.editor.Focus()
		return m, cmd
	case keymap.CmdToggleBionic:
		if m.reading.mode == bionic.Enabled {
			m.reading.mode = bionic.Disabled
		} else {
			m.reading.mode = bionic.Enabled
		}
		m.refreshReading()
	case keymap.CmdScrollUp, keymap.CmdScrollDown:
		var c tea.Cmd
		m.viewport, c = m.viewport.Update(msg)
		return m, c
	}
	return m, nil
}

// handleEditKey feeds the editor. esc saves the text and leaves edit mode.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.mode = keymap.ModeNormal
		m.editor.Blur()
		m.reading.text = m.editor.Value()
		m.refreshReading()
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func boldWord(s string) string {
	return styles.Bold.Render(s)
}

// refreshReading re-renders the reading text into the viewport.
func (m *Model) refreshReading() {
	width := max(10, m.viewport.Width)
	var lines []string
	for _, line := range strings.Split(m.reading.text, "\n") {
		lines = append(lines, wrapWords(line, width)...)
	}
	m.viewport.SetContent(bionic.Render(strings.Join(lines, "\n"), m.reading.mode, boldWord))
}

// wrapWords wraps line at width without splitting words, so bionic
// emphasis still applies to whole words.
func wrapWords(line string, width int) []string {
	words := strings.Split(line, " ")
	var out []string
	var cur strings.Builder
	curLen := 0
	for _, w := range words {
		n := len([]rune(w))
		if curLen > 0 && curLen+1+n > width {
			out = append(out, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += n
	}
	return append(out, cur.String())
}

func (m Model) renderReading() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Lectura Rápida"))
	b.WriteString("\n")
	status := "Desactivado"
	if m.reading.mode == bionic.Enabled {
		status = "Activado"
	}
	b.WriteString(styles.Subtitle.Render("Resalta el inicio de las palabras para anclar tu atención. [t] " + status))
	b.WriteString("\n\n")
	if m.mode == keymap.ModeEditText {
		b.WriteString(m.editor.View())
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("esc: guardar"))
		return b.String()
	}
	b.WriteString(m.viewport.View())
	return b.String()
}
