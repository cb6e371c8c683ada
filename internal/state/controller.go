package state

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Iron-Ham/cerebro/internal/board"
	"github.com/Iron-Ham/cerebro/internal/coach"
	"github.com/Iron-Ham/cerebro/internal/errors"
	"github.com/Iron-Ham/cerebro/internal/logging"
)

// Saver persists a state snapshot.
type Saver interface {
	SaveState(ctx context.Context, s AppState) error
}

// Breakdowner splits task content into substeps. Implemented by *coach.Coach.
type Breakdowner interface {
	Breakdown(ctx context.Context, content string) coach.Breakdown
}

// Replier answers chat messages. Implemented by *coach.Coach.
type Replier interface {
	Reply(ctx context.Context, history []coach.Message, text string) coach.Answer
}

// Controller owns the current AppState. Every mutation reads the current
// value, computes the next one and replaces it whole; a changed value is then
// handed to the Saver. Results of asynchronous calls are applied against the
// state current at completion time, never the state seen at request time.
//
// All methods are safe for concurrent use.
type Controller struct {
	mu     sync.Mutex
	state  AppState
	policy board.Policy
	saver  Saver
	logger *logging.Logger
	now    func() time.Time

	busy   bool // a breakdown is outstanding
	typing bool // a chat reply is outstanding
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithSaver persists every changed state through s.
func WithSaver(s Saver) ControllerOption {
	return func(c *Controller) { c.saver = s }
}

// WithPolicy replaces the default board policy.
func WithPolicy(p board.Policy) ControllerOption {
	return func(c *Controller) { c.policy = p }
}

// WithLogger sets the controller's logger.
func WithLogger(l *logging.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time source for chat timestamps.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// NewController creates a Controller holding initial.
func NewController(initial AppState, opts ...ControllerOption) *Controller {
	c := &Controller{
		state:  initial,
		policy: board.DefaultPolicy(),
		logger: logging.NopLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("controller")
	return c
}

// Snapshot returns the current state. The value shares no mutable data with
// the controller.
func (c *Controller) Snapshot() AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.ChatHistory = slices.Clone(c.state.ChatHistory)
	s.VisitedSections = slices.Clone(c.state.VisitedSections)
	return s
}

// update applies fn to the current state. If fn fails the state is left
// alone. A changed state is persisted; persistence failures are logged and
// never returned.
func (c *Controller) update(op string, fn func(AppState) (AppState, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state
	next, err := fn(prev)
	if err != nil {
		return err
	}
	if next.Equal(prev) {
		return nil
	}
	c.state = next
	c.persist(op, next)
	return nil
}

// persist must be called with c.mu held so snapshots reach the store in order.
func (c *Controller) persist(op string, s AppState) {
	if c.saver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.saver.SaveState(ctx, s); err != nil {
		c.logger.Error("failed to persist state", "op", op, "error", err.Error())
	}
}

// AddTask creates a task in the in-progress column. Blank content is
// rejected with a validation error and the board is unchanged.
func (c *Controller) AddTask(content string) (board.Task, error) {
	var created board.Task
	err := c.update("add_task", func(s AppState) (AppState, error) {
		tasks, task, ok := s.Tasks.Add(content)
		if !ok {
			return s, errors.NewValidationError("Escribe algo antes de añadir la tarea.").
				WithField("content").
				WithCause(errors.ErrEmptyContent)
		}
		created = task
		s.Tasks = tasks
		return s, nil
	})
	if err == nil {
		c.logger.Debug("task added", "task_id", created.ID)
	}
	return created, err
}

// RemoveTask deletes a task. It reports whether the task existed.
func (c *Controller) RemoveTask(id string) bool {
	var found bool
	_ = c.update("remove_task", func(s AppState) (AppState, error) {
		_, found = s.Tasks.Find(id)
		s.Tasks = s.Tasks.Remove(id)
		return s, nil
	})
	return found
}

// DropTask moves a task through the board policy. Rejections return a
// *errors.CapacityError or a validation error; the board is then unchanged.
func (c *Controller) DropTask(id string, target board.Column) error {
	return c.update("drop_task", func(s AppState) (AppState, error) {
		tasks, err := c.policy.Drop(s.Tasks, id, target)
		if err != nil {
			return s, err
		}
		s.Tasks = tasks
		return s, nil
	})
}

// CanDrop reports whether DropTask would accept the move.
func (c *Controller) CanDrop(id string, target board.Column) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.policy.CanDrop(c.state.Tasks, id, target)
}

// Busy reports whether a breakdown is outstanding.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Typing reports whether a chat reply is outstanding.
func (c *Controller) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typing
}

// BeginBreakdown claims the process-wide busy flag for a breakdown of task id
// and returns the task's content. A second request while one is outstanding
// is rejected, not queued. Every successful BeginBreakdown must be paired
// with EndBreakdown.
func (c *Controller) BeginBreakdown(id string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return "", errors.NewValidationError("Espera, todavía estoy dividiendo otra tarea.").WithCause(errors.ErrBusy)
	}
	task, ok := c.state.Tasks.Find(id)
	if !ok {
		return "", errors.NewNotFoundError("task", id)
	}
	c.busy = true
	return task.Content, nil
}

// ApplyBreakdown replaces task id with one task per step, against the
// current state. If the task was deleted meanwhile the steps are discarded.
func (c *Controller) ApplyBreakdown(id string, steps []string) []board.Task {
	var created []board.Task
	_ = c.update("apply_breakdown", func(s AppState) (AppState, error) {
		s.Tasks, created = s.Tasks.Decompose(id, steps)
		return s, nil
	})
	if created == nil {
		c.logger.Info("breakdown discarded, task no longer exists", "task_id", id)
	}
	return created
}

// EndBreakdown releases the busy flag.
func (c *Controller) EndBreakdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
}

// Breakdown runs a complete decomposition of task id synchronously.
func (c *Controller) Breakdown(ctx context.Context, b Breakdowner, id string) (coach.Breakdown, []board.Task, error) {
	content, err := c.BeginBreakdown(id)
	if err != nil {
		return coach.Breakdown{}, nil, err
	}
	defer c.EndBreakdown()

	result := b.Breakdown(ctx, content)
	return result, c.ApplyBreakdown(id, result.Steps), nil
}

// AppendChat adds a message to the chat history.
func (c *Controller) AppendChat(role Role, text string) ChatMessage {
	var msg ChatMessage
	_ = c.update("append_chat", func(s AppState) (AppState, error) {
		s.ChatHistory, msg = appendMessage(s.ChatHistory, role, text, c.now())
		return s, nil
	})
	return msg
}

// BeginChat records the user's message, marks a reply as outstanding and
// returns the conversation preceding it for the capability request.
func (c *Controller) BeginChat(text string) ([]coach.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewValidationError("Escribe un mensaje.").WithField("text").WithCause(errors.ErrEmptyContent)
	}

	var prior []ChatMessage
	c.mu.Lock()
	if c.typing {
		c.mu.Unlock()
		return nil, errors.NewValidationError("Espera la respuesta del coach.").WithCause(errors.ErrBusy)
	}
	c.typing = true
	prior = c.state.ChatHistory
	c.mu.Unlock()

	c.AppendChat(RoleUser, text)
	return toCoachMessages(prior), nil
}

// EndChat records the coach's reply and clears the typing flag.
func (c *Controller) EndChat(reply string) ChatMessage {
	msg := c.AppendChat(RoleAssistant, reply)
	c.mu.Lock()
	c.typing = false
	c.mu.Unlock()
	return msg
}

// Chat runs a complete chat exchange synchronously.
func (c *Controller) Chat(ctx context.Context, r Replier, text string) (ChatMessage, coach.Answer, error) {
	history, err := c.BeginChat(text)
	if err != nil {
		return ChatMessage{}, coach.Answer{}, err
	}
	answer := r.Reply(ctx, history, text)
	return c.EndChat(answer.Text), answer, nil
}

// Visit marks section as visited and recomputes progress.
func (c *Controller) Visit(section Section) {
	_ = c.update("visit", func(s AppState) (AppState, error) {
		return s.Visit(section), nil
	})
}

// Reset replaces the whole state with Default.
func (c *Controller) Reset() {
	_ = c.update("reset", func(AppState) (AppState, error) {
		return Default(), nil
	})
}

func toCoachMessages(history []ChatMessage) []coach.Message {
	out := make([]coach.Message, 0, len(history))
	for _, m := range history {
		role := coach.RoleUser
		if m.Role == RoleAssistant {
			role = coach.RoleModel
		}
		out = append(out, coach.Message{Role: role, Text: m.Text})
	}
	return out
}
