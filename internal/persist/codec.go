package persist

import (
	"bytes"
	"context"
	"time"

	"github.com/bytedance/sonic"

	"github.com/Iron-Ham/cerebro/internal/board"
	"github.com/Iron-Ham/cerebro/internal/errors"
	"github.com/Iron-Ham/cerebro/internal/state"
)

// StateKey is the fixed key the application state is stored under.
const StateKey = "tdah_app_data"

// api is the JSON codec. ConfigStd matches encoding/json behavior.
var api = sonic.ConfigStd

// Stored document layout. Field names and the millisecond timestamps match
// the data written by earlier versions of the app.
type document struct {
	Tasks           []taskRecord    `json:"tasks"`
	ChatHistory     []messageRecord `json:"chatHistory"`
	Progress        int             `json:"progress"`
	VisitedSections []string        `json:"visitedSections"`
}

type taskRecord struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Column  string `json:"column"`
}

type messageRecord struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// Encode serializes s.
func Encode(s state.AppState) ([]byte, error) {
	doc := document{
		Tasks:           make([]taskRecord, 0, s.Tasks.Len()),
		ChatHistory:     make([]messageRecord, 0, len(s.ChatHistory)),
		Progress:        s.Progress,
		VisitedSections: make([]string, 0, len(s.VisitedSections)),
	}
	for _, t := range s.Tasks.Slice() {
		doc.Tasks = append(doc.Tasks, taskRecord{ID: t.ID, Content: t.Content, Column: t.Column.String()})
	}
	for _, m := range s.ChatHistory {
		doc.ChatHistory = append(doc.ChatHistory, messageRecord{
			ID:        m.ID,
			Role:      string(m.Role),
			Text:      m.Text,
			Timestamp: m.Timestamp.UnixMilli(),
		})
	}
	for _, sec := range s.VisitedSections {
		doc.VisitedSections = append(doc.VisitedSections, sec.String())
	}

	data, err := api.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "encode state")
	}
	return data, nil
}

// Decode parses data and validates the result. Any syntax or structural
// problem returns an error wrapping errors.ErrStateCorrupted.
func Decode(data []byte) (state.AppState, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return state.AppState{}, errors.NewStorageError("decode state", errors.ErrStateCorrupted)
	}
	var doc document
	if err := api.Unmarshal(data, &doc); err != nil {
		return state.AppState{}, errors.NewStorageError("decode state", errors.Join(errors.ErrStateCorrupted, err))
	}

	tasks := make([]board.Task, 0, len(doc.Tasks))
	for _, r := range doc.Tasks {
		col, err := board.ParseColumn(r.Column)
		if err != nil {
			return state.AppState{}, errors.NewStorageError("decode state", errors.Join(errors.ErrStateCorrupted, err))
		}
		tasks = append(tasks, board.Task{ID: r.ID, Content: r.Content, Column: col})
	}

	history := make([]state.ChatMessage, 0, len(doc.ChatHistory))
	for _, r := range doc.ChatHistory {
		history = append(history, state.ChatMessage{
			ID:        r.ID,
			Role:      state.Role(r.Role),
			Text:      r.Text,
			Timestamp: time.UnixMilli(r.Timestamp).UTC(),
		})
	}

	visited := make([]state.Section, 0, len(doc.VisitedSections))
	for _, v := range doc.VisitedSections {
		visited = append(visited, state.Section(v))
	}

	s := state.AppState{
		Tasks:           board.New(tasks...),
		ChatHistory:     history,
		Progress:        doc.Progress,
		VisitedSections: visited,
	}
	if err := s.Validate(); err != nil {
		return state.AppState{}, errors.NewStorageError("decode state", errors.Join(errors.ErrStateCorrupted, err))
	}
	return s, nil
}

// LoadResult explains how LoadState obtained its state.
type LoadResult struct {
	// Found is true when a stored value existed.
	Found bool
	// Reason is set when the defaults were used despite a stored value,
	// or the store could not be read. It is for logging only.
	Reason error
}

// LoadState reads the state under key. A missing, unreadable or malformed
// value yields state.Default; the cause is reported in the result, never as
// an error.
func LoadState(ctx context.Context, store Store, key string) (state.AppState, LoadResult) {
	data, err := store.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return state.Default(), LoadResult{}
	}
	if err != nil {
		return state.Default(), LoadResult{Reason: errors.NewStorageError("load state", err).WithKey(key)}
	}

	s, err := Decode(data)
	if err != nil {
		return state.Default(), LoadResult{Found: true, Reason: err}
	}
	return s, LoadResult{Found: true}
}

// SaveState writes s under key.
func SaveState(ctx context.Context, store Store, key string, s state.AppState) error {
	data, err := Encode(s)
	if err != nil {
		return errors.NewStorageError("save state", err).WithKey(key)
	}
	if err := store.Save(ctx, key, data); err != nil {
		return errors.NewStorageError("save state", err).WithKey(key)
	}
	return nil
}

// StateWriter saves controller snapshots to a store. It implements state.Saver.
type StateWriter struct {
	store Store
	key   string
}

// NewStateWriter returns a StateWriter for key in store.
func NewStateWriter(store Store, key string) *StateWriter {
	return &StateWriter{store: store, key: key}
}

// SaveState implements state.Saver.
func (w *StateWriter) SaveState(ctx context.Context, s state.AppState) error {
	return SaveState(ctx, w.store, w.key, s)
}
