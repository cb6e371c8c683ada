package state

import (
	"math"
	"slices"
	"time"

	"github.com/Iron-Ham/cerebro/internal/board"
	"github.com/Iron-Ham/cerebro/internal/errors"
)

// AppState is the whole application state. Values are treated as immutable:
// operations return a new AppState and never modify slices they were given.
type AppState struct {
	Tasks           board.Tasks
	ChatHistory     []ChatMessage
	Progress        int
	VisitedSections []Section
}

// Default returns the state of a fresh install: no tasks, the coach's welcome
// message, zero progress and nothing visited.
func Default() AppState {
	return AppState{
		ChatHistory: []ChatMessage{{
			ID:        "welcome",
			Role:      RoleAssistant,
			Text:      WelcomeText,
			Timestamp: time.Unix(0, 0).UTC(),
		}},
		VisitedSections: []Section{},
	}
}

// Visit records a visit to section and recomputes progress. Repeat visits
// and unknown sections return s unchanged.
func (s AppState) Visit(section Section) AppState {
	if !section.Valid() || slices.Contains(s.VisitedSections, section) {
		return s
	}
	next := s
	next.VisitedSections = append(slices.Clone(s.VisitedSections), section)
	next.Progress = ComputeProgress(len(next.VisitedSections))
	return next
}

// Visited reports whether section has been visited.
func (s AppState) Visited(section Section) bool {
	return slices.Contains(s.VisitedSections, section)
}

// Equal reports whether two states hold the same data.
func (s AppState) Equal(other AppState) bool {
	if s.Progress != other.Progress || !s.Tasks.Equal(other.Tasks) {
		return false
	}
	if !slices.Equal(s.VisitedSections, other.VisitedSections) {
		return false
	}
	return slices.EqualFunc(s.ChatHistory, other.ChatHistory, func(a, b ChatMessage) bool {
		return a.ID == b.ID && a.Role == b.Role && a.Text == b.Text && a.Timestamp.Equal(b.Timestamp)
	})
}

// Validate checks the invariants a restored state must satisfy.
func (s AppState) Validate() error {
	if err := s.Tasks.Validate(); err != nil {
		return err
	}
	if s.Progress < 0 || s.Progress > 100 {
		return errors.NewValidationError("progress out of range").WithField("progress").WithValue(s.Progress)
	}
	seen := make(map[Section]struct{}, len(s.VisitedSections))
	for _, sec := range s.VisitedSections {
		if !sec.Valid() {
			return errors.NewValidationError("unknown section").WithField("visited_sections").WithValue(string(sec))
		}
		if _, dup := seen[sec]; dup {
			return errors.NewValidationError("duplicate section").WithField("visited_sections").WithValue(string(sec))
		}
		seen[sec] = struct{}{}
	}
	for i, m := range s.ChatHistory {
		if !m.Role.Valid() {
			return errors.NewValidationError("unknown role").WithField("role").WithValue(string(m.Role))
		}
		if i > 0 && m.Timestamp.Before(s.ChatHistory[i-1].Timestamp) {
			return errors.NewValidationError("chat history out of order").WithField("timestamp")
		}
	}
	return nil
}

// ComputeProgress converts a count of visited sections into a 0-100 score.
func ComputeProgress(visited int) int {
	p := int(math.Round(float64(visited) / float64(len(Sections)) * 100))
	return min(100, max(0, p))
}

// ProgressLabel names the user's level for a progress score.
func ProgressLabel(progress int) string {
	switch {
	case progress < 30:
		return "Iniciado"
	case progress < 70:
		return "Aprendiz"
	default:
		return "Maestro Jedi"
	}
}
