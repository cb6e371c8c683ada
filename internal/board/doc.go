// Package board implements the three-column task board: an ordered,
// immutable collection of tasks and the admission policy that guards
// moves into the urgent column.
//
// Every [Tasks] operation returns a new collection and leaves the receiver
// untouched, so callers can snapshot the board before computing the next
// value and compare the two to detect changes.
//
// Usage:
//
//	tasks := board.Tasks{}
//	tasks, task, ok := tasks.Add("write report")
//
//	policy := board.DefaultPolicy()
//	tasks, err := policy.Drop(tasks, task.ID, board.Urgent)
//	if errors.Is(err, errors.ErrColumnFull) {
//	    // show the warning, board unchanged
//	}
package board
