package board

import (
	"strings"

	"github.com/Iron-Ham/cerebro/internal/errors"
)

// Column is a task's position on the board.
type Column string

const (
	// Urgent holds tasks that must be done now. Capacity-limited.
	Urgent Column = "urgent"

	// InProgress is where every new task starts.
	InProgress Column = "in_progress"

	// DoneOrIdea holds finished tasks and parked ideas.
	DoneOrIdea Column = "done_or_idea"
)

// Columns lists every column in display order.
var Columns = []Column{Urgent, InProgress, DoneOrIdea}

// String returns the wire value of the column.
func (c Column) String() string {
	return string(c)
}

// Valid reports whether c is one of the known columns.
func (c Column) Valid() bool {
	switch c {
	case Urgent, InProgress, DoneOrIdea:
		return true
	default:
		return false
	}
}

// Title returns the header shown above the column.
func (c Column) Title() string {
	switch c {
	case Urgent:
		return "🔴 Urgente (Máx 3)"
	case InProgress:
		return "🟡 En Proceso"
	case DoneOrIdea:
		return "🟢 Hecho / Ideas"
	default:
		return string(c)
	}
}

// Index returns the display position of c, or -1 if unknown.
func (c Column) Index() int {
	switch c {
	case Urgent:
		return 0
	case InProgress:
		return 1
	case DoneOrIdea:
		return 2
	default:
		return -1
	}
}

// ParseColumn converts user or stored input into a Column. Besides the wire
// values it accepts the traffic-light aliases red, yellow and green, and the
// 1-based display position.
func ParseColumn(s string) (Column, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "urgent", "red", "1":
		return Urgent, nil
	case "in_progress", "in-progress", "yellow", "2":
		return InProgress, nil
	case "done_or_idea", "done", "idea", "green", "3":
		return DoneOrIdea, nil
	default:
		return "", errors.NewValidationError("unknown column").
			WithField("column").
			WithValue(s).
			WithCause(errors.ErrUnknownColumn)
	}
}
