package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/cerebro/internal/tui/styles"
)

// stimulusPoint is one sample of the stimulation curve.
type stimulusPoint struct {
	label        string
	neurotypical int
	adhd         int
}

// stimulusCurve compares motivation over a task's lifetime.
var stimulusCurve = []stimulusPoint{
	{"Inicio", 20, 10},
	{"10%", 30, 10},
	{"30%", 45, 15},
	{"50%", 60, 20},
	{"80%", 80, 25},
	{"90%", 90, 40},
	{"Deadline", 100, 100},
}

func (m Model) renderIntro(width int) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Tu cerebro no está roto, tiene un sistema operativo diferente."))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("La mayoría de las personas obtienen dopamina al terminar tareas.\nTú la obtienes con la novedad, el interés o la urgencia extrema."))
	b.WriteString("\n\n")
	b.WriteString(renderChart(width))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("Esta aplicación está diseñada para hackear esa curva roja."))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpKey.Render("[enter] ") + styles.Primary.Render("Entendido, vamos a organizarnos →"))
	return b.String()
}

// renderChart draws the stimulation curve as paired horizontal bars.
func renderChart(width int) string {
	labelWidth := 9
	barWidth := max(10, min(50, width-labelWidth-8))
	nt := lipgloss.NewStyle().Foreground(styles.NeurotypicalColor)
	adhd := lipgloss.NewStyle().Foreground(styles.ADHDColor)

	var b strings.Builder
	b.WriteString(styles.Muted.Render("Curva de Estimulación: Neurotípico vs TDAH"))
	b.WriteString("\n")
	for _, p := range stimulusCurve {
		b.WriteString(fmt.Sprintf("%-*s ", labelWidth, p.label))
		b.WriteString(nt.Render(strings.Repeat("▒", p.neurotypical*barWidth/100)))
		b.WriteString(fmt.Sprintf(" %3d\n", p.neurotypical))
		b.WriteString(strings.Repeat(" ", labelWidth+1))
		b.WriteString(adhd.Render(strings.Repeat("█", p.adhd*barWidth/100)))
		b.WriteString(fmt.Sprintf(" %3d\n", p.adhd))
	}
	b.WriteString(nt.Render("▒ Cerebro Neurotípico (Constante)"))
	b.WriteString("  ")
	b.WriteString(adhd.Render("█ Cerebro TDAH (Todo al final)"))
	b.WriteString("\n")
	return b.String()
}
