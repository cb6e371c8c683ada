package board

import "github.com/Iron-Ham/cerebro/internal/errors"

// UrgentCapacity is the most tasks the urgent column may hold.
const UrgentCapacity = 3

// Policy decides whether a drag-and-drop move is admissible.
type Policy struct {
	// UrgentCapacity overrides the urgent limit; zero or less means the
	// package UrgentCapacity. Policy does not clamp it: values above the
	// package UrgentCapacity are rejected by config validation
	// (board.urgent_capacity), and a Policy built directly enforces
	// whatever it is given.
	UrgentCapacity int
}

// DefaultPolicy returns the policy with the standard urgent capacity.
func DefaultPolicy() Policy {
	return Policy{UrgentCapacity: UrgentCapacity}
}

// Drop moves the task into target if the move is admissible. Moving into the
// urgent column is rejected with a *errors.CapacityError when the column
// already holds the capacity, not counting the task being moved. A task
// dropped onto its own column is left as is. An unknown id returns a
// *errors.NotFoundError; in every rejected case tasks is returned unchanged.
func (p Policy) Drop(tasks Tasks, id string, target Column) (Tasks, error) {
	if !target.Valid() {
		return tasks, errors.NewValidationError("unknown column").
			WithField("column").
			WithValue(string(target)).
			WithCause(errors.ErrUnknownColumn)
	}
	task, ok := tasks.Find(id)
	if !ok {
		return tasks, errors.NewNotFoundError("task", id)
	}
	if task.Column == target {
		return tasks, nil
	}

	switch target {
	case Urgent:
		if tasks.Count(Urgent) >= p.capacity() {
			return tasks, errors.NewCapacityError(Urgent.String(), p.capacity()).WithTaskID(id)
		}
	case InProgress, DoneOrIdea:
	}

	return tasks.MoveTo(id, target), nil
}

// CanDrop reports whether Drop would accept the move, without performing it.
func (p Policy) CanDrop(tasks Tasks, id string, target Column) bool {
	_, err := p.Drop(tasks, id, target)
	return err == nil
}

func (p Policy) capacity() int {
	if p.UrgentCapacity <= 0 {
		return UrgentCapacity
	}
	return p.UrgentCapacity
}
