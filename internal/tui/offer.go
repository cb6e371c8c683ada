package tui

import (
	"strings"

	"github.com/Iron-Ham/cerebro/internal/tui/styles"
)

func (m Model) renderOffer() string {
	check := styles.Primary.Render("✓ ")
	var b strings.Builder
	b.WriteString(styles.Warning.Render("OFERTA ESPECIAL"))
	b.WriteString("\n\n")
	b.WriteString(styles.Title.Render("Domina tu caos para siempre."))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("Esta app es solo el comienzo. Descubre el sistema completo de productividad\ndiseñado específicamente para mentes neurodivergentes en mi nuevo eBook."))
	b.WriteString("\n\n")

	card := strings.Join([]string{
		styles.Bold.Render("🧠 El Manual del Cerebro TDAH"),
		"",
		check + "Plantillas de organización Notion",
		check + "Técnicas avanzadas de dopamina",
		check + "Comunidad de apoyo privada",
		"",
		styles.TabActive.Render("Obtener Acceso (50% OFF)"),
		styles.Muted.Render("Oferta válida por tiempo limitado."),
	}, "\n")
	b.WriteString(styles.Panel.Render(card))
	return b.String()
}
