package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/cerebro/internal/errors"
	"github.com/Iron-Ham/cerebro/internal/focus"
	"github.com/Iron-Ham/cerebro/internal/tui/keymap"
	tuimsg "github.com/Iron-Ham/cerebro/internal/tui/msg"
	"github.com/Iron-Ham/cerebro/internal/tui/styles"
)

// tickInterval matches the period of msg.FocusTick.
const tickInterval = time.Second

func (m Model) handleFocusCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdToggleTimer:
		m.timer.Toggle()
		if m.timer.Active() && !m.ticking {
			m.ticking = true
			return m, tuimsg.FocusTick()
		}
	case keymap.CmdResetTimer:
		m.timer.Reset()
	case keymap.CmdBrownNoise:
		m.noise = focus.ToggleNoise(m.noise, focus.NoiseBrown)
	case keymap.CmdBinauralNoise:
		m.noise = focus.ToggleNoise(m.noise, focus.NoiseBinaural)
	}
	return m, nil
}

// handleFocusTick advances the timer. Only one tick chain runs at a time;
// it stops when the timer is paused or finished.
func (m Model) handleFocusTick() (tea.Model, tea.Cmd) {
	if !m.timer.Active() {
		m.ticking = false
		return m, nil
	}
	if m.timer.Tick(tickInterval) {
		m.ticking = false
		m.logger.Info("focus session completed", "duration", m.timer.Duration().String())
		cmds := []tea.Cmd{m.showToast("🎉 ¡Sesión de foco completada!", errors.SeverityInfo)}
		if m.settings.Bell {
			cmds = append(cmds, tuimsg.RingBell())
		}
		return m, tea.Batch(cmds...)
	}
	return m, tuimsg.FocusTick()
}

func (m Model) renderFocus(width int) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Modo Dopamina"))
	b.WriteString("\n")

	timerStyle := styles.Timer
	label := "Iniciar Foco"
	if m.timer.Active() {
		timerStyle = styles.TimerActive
		label = "Pausar"
	}
	b.WriteString(timerStyle.Render(m.timer.Format()))
	b.WriteString("\n")
	b.WriteString(styles.HelpKey.Render("[space] ") + styles.Text.Render(label))
	b.WriteString("\n")
	b.WriteString(styles.ProgressBar(int(m.timer.Progress()*100), min(40, max(10, width-4))))
	b.WriteString("\n\n")

	noises := []struct {
		key   string
		noise focus.Noise
	}{
		{"b", focus.NoiseBrown},
		{"n", focus.NoiseBinaural},
	}
	var boxes []string
	for _, n := range noises {
		style := styles.Panel
		marker := "  "
		if m.noise == n.noise {
			style = style.BorderForeground(styles.PrimaryColor)
			marker = "♪ "
		}
		boxes = append(boxes, style.Render(fmt.Sprintf("%s[%s] %s\n%s", marker, n.key, n.noise.Label(), styles.Muted.Render(n.noise.Hint()))))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	return b.String()
}
