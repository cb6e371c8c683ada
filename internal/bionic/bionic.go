// Package bionic renders text for bionic reading: the first half of every
// word is emphasized so the eye anchors on word starts.
package bionic

import (
	"strings"
	"unicode/utf8"
)

// SampleText is the text shown before the user pastes their own.
const SampleText = `El TDAH no es un déficit de atención, es un problema de regulación de la atención.
Las personas con TDAH pueden hiperenfocarse en cosas que les interesan, pero les cuesta dirigir su atención a tareas aburridas o repetitivas.
La lectura biónica ayuda a guiar el ojo a través del texto resaltando las partes iniciales de las palabras, permitiendo que el cerebro complete el resto automáticamente.`

// Word is one space-separated token split at its emphasis point.
type Word struct {
	Bold string
	Rest string
}

// String rejoins the word.
func (w Word) String() string { return w.Bold + w.Rest }

// SplitWord splits word after ceil(n/2) runes.
func SplitWord(word string) Word {
	n := utf8.RuneCountInString(word)
	mid := (n + 1) / 2
	i := 0
	for pos := range word {
		if i == mid {
			return Word{Bold: word[:pos], Rest: word[pos:]}
		}
		i++
	}
	return Word{Bold: word}
}

// Split splits one line of text on single spaces. Consecutive spaces yield
// empty words so rendering preserves the original spacing.
func Split(line string) []Word {
	parts := strings.Split(line, " ")
	words := make([]Word, len(parts))
	for i, p := range parts {
		words[i] = SplitWord(p)
	}
	return words
}

// Mode selects whether Render emphasizes words.
type Mode int

const (
	Enabled Mode = iota
	Disabled
)

// Render applies bold to the first half of every word in text. Line breaks
// are kept. In Disabled mode text is returned unchanged.
func Render(text string, mode Mode, bold func(string) string) string {
	if mode == Disabled || bold == nil {
		return text
	}
	lines := strings.Split(text, "\n")
	var sb strings.Builder
	for li, line := range lines {
		if li > 0 {
			sb.WriteByte('\n')
		}
		for wi, w := range Split(line) {
			if wi > 0 {
				sb.WriteByte(' ')
			}
			if w.Bold != "" {
				sb.WriteString(bold(w.Bold))
			}
			sb.WriteString(w.Rest)
		}
	}
	return sb.String()
}

// Markdown wraps s in ** for plain-text output.
func Markdown(s string) string {
	return "**" + s + "**"
}
