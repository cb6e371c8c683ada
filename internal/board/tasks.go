package board

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/Iron-Ham/cerebro/internal/errors"
)

// newID assigns task identifiers. Replaced in tests for deterministic ids.
var newID = uuid.NewString

// Task is a single card on the board.
type Task struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Column  Column `json:"column"`
}

// Tasks is an ordered, immutable collection of tasks. Insertion order is the
// display order within a column. The zero value is an empty board.
type Tasks struct {
	items []Task
}

// New builds a collection from existing tasks, for example when restoring
// persisted state. The input slice is copied.
func New(tasks ...Task) Tasks {
	return Tasks{items: slices.Clone(tasks)}
}

// Len returns the number of tasks.
func (t Tasks) Len() int {
	return len(t.items)
}

// Slice returns a copy of the tasks in order.
func (t Tasks) Slice() []Task {
	return slices.Clone(t.items)
}

// Find returns the task with the given id.
func (t Tasks) Find(id string) (Task, bool) {
	i := t.index(id)
	if i < 0 {
		return Task{}, false
	}
	return t.items[i], true
}

// InColumn returns the tasks in column c, in display order.
func (t Tasks) InColumn(c Column) []Task {
	var out []Task
	for _, task := range t.items {
		if task.Column == c {
			out = append(out, task)
		}
	}
	return out
}

// Count returns the number of tasks in column c.
func (t Tasks) Count(c Column) int {
	n := 0
	for _, task := range t.items {
		if task.Column == c {
			n++
		}
	}
	return n
}

// Equal reports whether both collections hold the same tasks in the same order.
func (t Tasks) Equal(other Tasks) bool {
	return slices.Equal(t.items, other.items)
}

// Validate checks the structural invariants of a restored collection:
// every column known, every id non-empty and unique.
func (t Tasks) Validate() error {
	seen := make(map[string]struct{}, len(t.items))
	for _, task := range t.items {
		if task.ID == "" {
			return errors.NewValidationError("task has empty id").WithField("id")
		}
		if _, dup := seen[task.ID]; dup {
			return errors.NewValidationError("duplicate task id").WithField("id").WithValue(task.ID)
		}
		seen[task.ID] = struct{}{}
		if !task.Column.Valid() {
			return errors.NewValidationError("unknown column").
				WithField("column").
				WithValue(string(task.Column)).
				WithCause(errors.ErrUnknownColumn)
		}
	}
	return nil
}

// Add appends a new task in the in-progress column. Content that is empty
// after trimming is rejected: the unchanged collection is returned with ok
// false. Accepted content is stored as given.
func (t Tasks) Add(content string) (next Tasks, task Task, ok bool) {
	if strings.TrimSpace(content) == "" {
		return t, Task{}, false
	}
	task = Task{ID: newID(), Content: content, Column: InProgress}
	items := make([]Task, len(t.items), len(t.items)+1)
	copy(items, t.items)
	return Tasks{items: append(items, task)}, task, true
}

// Remove deletes the task with the given id. An absent id is a no-op.
func (t Tasks) Remove(id string) Tasks {
	i := t.index(id)
	if i < 0 {
		return t
	}
	return Tasks{items: slices.Delete(slices.Clone(t.items), i, i+1)}
}

// MoveTo assigns the task to column c without any capacity check.
// An absent id, or a task already in c, returns the receiver unchanged.
func (t Tasks) MoveTo(id string, c Column) Tasks {
	i := t.index(id)
	if i < 0 || t.items[i].Column == c {
		return t
	}
	items := slices.Clone(t.items)
	items[i].Column = c
	return Tasks{items: items}
}

// Decompose replaces the task with one new task per part, at the same
// position. Each new task inherits the original column and gets a fresh id.
// An absent id is a no-op and parts are discarded, so results that arrive
// after the task was deleted cannot resurrect it.
func (t Tasks) Decompose(id string, parts []string) (Tasks, []Task) {
	i := t.index(id)
	if i < 0 {
		return t, nil
	}
	col := t.items[i].Column

	created := make([]Task, 0, len(parts))
	for _, p := range parts {
		created = append(created, Task{ID: newID(), Content: p, Column: col})
	}

	items := make([]Task, 0, len(t.items)-1+len(created))
	items = append(items, t.items[:i]...)
	items = append(items, created...)
	items = append(items, t.items[i+1:]...)
	return Tasks{items: items}, created
}

func (t Tasks) index(id string) int {
	return slices.IndexFunc(t.items, func(task Task) bool { return task.ID == id })
}
