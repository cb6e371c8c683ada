package state

import (
	"strings"

	"github.com/Iron-Ham/cerebro/internal/errors"
)

// Section is one of the application's screens. Visiting sections drives the
// progress indicator.
type Section string

const (
	SectionIntro   Section = "intro"
	SectionBoard   Section = "kanban"
	SectionFocus   Section = "focus"
	SectionReading Section = "reading"
	SectionOffer   Section = "offer"
)

// Sections lists every section in navigation order.
var Sections = []Section{SectionIntro, SectionBoard, SectionFocus, SectionReading, SectionOffer}

// String returns the stored name of the section.
func (s Section) String() string {
	return string(s)
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	switch s {
	case SectionIntro, SectionBoard, SectionFocus, SectionReading, SectionOffer:
		return true
	default:
		return false
	}
}

// Title returns the navigation label for the section.
func (s Section) Title() string {
	switch s {
	case SectionIntro:
		return "Entender el TDAH"
	case SectionBoard:
		return "Semáforo"
	case SectionFocus:
		return "Modo Enfoque"
	case SectionReading:
		return "Lectura Biónica"
	case SectionOffer:
		return "Kit Completo"
	default:
		return string(s)
	}
}

// ParseSection converts a section name into a Section. "board" is accepted
// as an alias for the board section.
func ParseSection(s string) (Section, error) {
	switch v := Section(strings.ToLower(strings.TrimSpace(s))); v {
	case SectionIntro, SectionBoard, SectionFocus, SectionReading, SectionOffer:
		return v, nil
	case "board":
		return SectionBoard, nil
	default:
		return "", errors.NewValidationError("unknown section").WithField("section").WithValue(s)
	}
}
