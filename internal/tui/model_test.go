package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/cerebro/internal/bionic"
	"github.com/Iron-Ham/cerebro/internal/board"
	"github.com/Iron-Ham/cerebro/internal/coach"
	"github.com/Iron-Ham/cerebro/internal/errors"
	"github.com/Iron-Ham/cerebro/internal/focus"
	"github.com/Iron-Ham/cerebro/internal/state"
	"github.com/Iron-Ham/cerebro/internal/tui/keymap"
	tuimsg "github.com/Iron-Ham/cerebro/internal/tui/msg"
)

type stubCoach struct {
	steps []string
	reply string
}

func (s *stubCoach) Breakdown(_ context.Context, content string) coach.Breakdown {
	if len(s.steps) == 0 {
		return coach.Breakdown{Steps: coach.FallbackSteps(content), Fallback: true}
	}
	return coach.Breakdown{Steps: s.steps}
}

func (s *stubCoach) Reply(context.Context, []coach.Message, string) coach.Answer {
	return coach.Answer{Text: s.reply}
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// send applies msgs in order and returns the model and the last command.
func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func typeText(text string) []tea.Msg {
	var msgs []tea.Msg
	for _, r := range text {
		msgs = append(msgs, key(string(r)))
	}
	return msgs
}

func newTestModel(t *testing.T, initial state.AppState, c Coach, opts ...ModelOption) (Model, *state.Controller) {
	t.Helper()
	ctrl := state.NewController(initial)
	if c == nil {
		c = &stubCoach{reply: "Respira."}
	}
	m := NewModel(ctrl, c, opts...)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, ctrl
}

func boardModel(t *testing.T, tasks ...board.Task) (Model, *state.Controller) {
	t.Helper()
	initial := state.Default()
	initial.Tasks = board.New(tasks...)
	m, ctrl := newTestModel(t, initial, &stubCoach{steps: []string{"uno", "dos", "tres"}, reply: "ok"})
	m, _ = send(t, m, key("enter")) // intro -> board
	return m, ctrl
}

func TestNewModel_VisitsIntro(t *testing.T) {
	m, ctrl := newTestModel(t, state.Default(), nil)
	if m.Section() != state.SectionIntro {
		t.Errorf("Section() = %q, want intro", m.Section())
	}
	snap := ctrl.Snapshot()
	if !snap.Visited(state.SectionIntro) || snap.Progress != 20 {
		t.Errorf("visited=%v progress=%d", snap.VisitedSections, snap.Progress)
	}
}

func TestNavigation(t *testing.T) {
	m, ctrl := newTestModel(t, state.Default(), nil)

	m, _ = send(t, m, key("tab"))
	if m.Section() != state.SectionBoard {
		t.Fatalf("after tab: %q, want board", m.Section())
	}
	m, _ = send(t, m, key("shift+tab"), key("shift+tab"))
	if m.Section() != state.SectionOffer {
		t.Fatalf("shift+tab should wrap to offer, got %q", m.Section())
	}
	if got := ctrl.Snapshot().Progress; got != 60 {
		t.Errorf("Progress = %d, want 60", got)
	}

	m, _ = send(t, m, key("tab"), key("tab"), key("tab"), key("tab"))
	if got := ctrl.Snapshot().Progress; got != 100 {
		t.Errorf("Progress = %d, want 100 after visiting everything", got)
	}
	if m.Section() != state.SectionReading {
		t.Errorf("Section() = %q, want reading", m.Section())
	}
}

func TestIntroContinue(t *testing.T) {
	m, _ := newTestModel(t, state.Default(), nil)
	m, _ = send(t, m, key("enter"))
	if m.Section() != state.SectionBoard {
		t.Errorf("Section() = %q, want board", m.Section())
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, state.Default(), nil)
	m, cmd := send(t, m, key("q"))
	if cmd == nil || !m.quitting {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestBoard_AddTask(t *testing.T) {
	m, ctrl := boardModel(t)

	m, _ = send(t, m, key("a"))
	if m.Mode() != keymap.ModeAddTask {
		t.Fatalf("Mode() = %q, want add_task", m.Mode())
	}
	m, _ = send(t, m, typeText("Pagar la luz")...)
	m, _ = send(t, m, key("enter"))

	if m.Mode() != keymap.ModeNormal {
		t.Errorf("Mode() = %q, want normal", m.Mode())
	}
	tasks := ctrl.Snapshot().Tasks.InColumn(board.InProgress)
	if len(tasks) != 1 || tasks[0].Content != "Pagar la luz" {
		t.Fatalf("in-progress tasks = %+v", tasks)
	}
	if sel, ok := m.selectedTask(); !ok || sel.ID != tasks[0].ID {
		t.Error("cursor should move to the new task")
	}
}

func TestBoard_AddBlankTaskRejected(t *testing.T) {
	m, ctrl := boardModel(t)
	m, _ = send(t, m, key("a"), key(" "), key("enter"))

	if ctrl.Snapshot().Tasks.Len() != 0 {
		t.Error("blank task should not be added")
	}
	if m.toast == nil {
		t.Fatal("expected a toast")
	}
	if m.Mode() != keymap.ModeAddTask {
		t.Errorf("Mode() = %q, want to stay in add_task", m.Mode())
	}

	m, _ = send(t, m, key("esc"))
	if m.Mode() != keymap.ModeNormal {
		t.Errorf("esc should cancel, Mode() = %q", m.Mode())
	}
}

func TestBoard_CapacityRejection(t *testing.T) {
	m, ctrl := boardModel(t,
		board.Task{ID: "u1", Content: "a", Column: board.Urgent},
		board.Task{ID: "u2", Content: "b", Column: board.Urgent},
		board.Task{ID: "u3", Content: "c", Column: board.Urgent},
		board.Task{ID: "p1", Content: "d", Column: board.InProgress},
	)

	m, _ = send(t, m, key("l"), key("1"))

	task, _ := ctrl.Snapshot().Tasks.Find("p1")
	if task.Column != board.InProgress {
		t.Errorf("p1 column = %q, want in_progress", task.Column)
	}
	if m.toast == nil || m.toast.severity != errors.SeverityWarning {
		t.Fatalf("toast = %+v, want warning", m.toast)
	}
	if !strings.Contains(m.toast.text, "3") {
		t.Errorf("toast text = %q, want the limit", m.toast.text)
	}
}

func TestBoard_PickAndDrop(t *testing.T) {
	m, ctrl := boardModel(t,
		board.Task{ID: "p1", Content: "Llamar", Column: board.InProgress},
	)

	m, _ = send(t, m, key("l"), key(" "))
	if m.board.holding != "p1" {
		t.Fatalf("holding = %q, want p1", m.board.holding)
	}
	m, _ = send(t, m, key("l"), key(" "))
	if m.board.holding != "" {
		t.Error("drop should release the card")
	}
	task, _ := ctrl.Snapshot().Tasks.Find("p1")
	if task.Column != board.DoneOrIdea {
		t.Errorf("column = %q, want done_or_idea", task.Column)
	}
	if m.board.col != 2 {
		t.Errorf("cursor column = %d, want 2", m.board.col)
	}
}

func TestBoard_UrgentFullHint(t *testing.T) {
	m, _ := boardModel(t,
		board.Task{ID: "u1", Content: "a", Column: board.Urgent},
		board.Task{ID: "u2", Content: "b", Column: board.Urgent},
		board.Task{ID: "u3", Content: "c", Column: board.Urgent},
		board.Task{ID: "p1", Content: "Llamar", Column: board.InProgress},
	)
	if strings.Contains(m.View(), urgentFullLabel) {
		t.Fatal("hint shown with no card in hand")
	}

	m, _ = send(t, m, key("l"), key(" "))
	if m.board.holding != "p1" {
		t.Fatalf("holding = %q, want p1", m.board.holding)
	}
	if !strings.Contains(m.View(), urgentFullLabel) {
		t.Error("full urgent column should be flagged while p1 is carried")
	}

	// A card already in the urgent column can always be dropped back there.
	m, _ = send(t, m, key("esc"), key("h"), key(" "))
	if m.board.holding != "u1" {
		t.Fatalf("holding = %q, want u1", m.board.holding)
	}
	if strings.Contains(m.View(), urgentFullLabel) {
		t.Error("hint shown for a card that is already urgent")
	}
}

func TestBoard_CancelPick(t *testing.T) {
	m, _ := boardModel(t, board.Task{ID: "u1", Content: "x", Column: board.Urgent})
	m, _ = send(t, m, key(" "), key("esc"))
	if m.board.holding != "" {
		t.Error("esc should drop nothing and release the card")
	}
}

func TestBoard_Delete(t *testing.T) {
	m, ctrl := boardModel(t,
		board.Task{ID: "u1", Content: "x", Column: board.Urgent},
		board.Task{ID: "u2", Content: "y", Column: board.Urgent},
	)
	m, _ = send(t, m, key("j"), key("x"))
	if _, ok := ctrl.Snapshot().Tasks.Find("u2"); ok {
		t.Error("u2 should be deleted")
	}
	if m.board.row != 0 {
		t.Errorf("row = %d, want clamped to 0", m.board.row)
	}
}

func TestBoard_Breakdown(t *testing.T) {
	m, ctrl := boardModel(t,
		board.Task{ID: "a", Content: "antes", Column: board.Urgent},
		board.Task{ID: "big", Content: "Ordenar casa", Column: board.Urgent},
		board.Task{ID: "z", Content: "después", Column: board.Urgent},
	)

	m, cmd := send(t, m, key("j"), key("s"))
	if cmd == nil {
		t.Fatal("expected a breakdown command")
	}
	if !ctrl.Busy() {
		t.Fatal("controller should be busy")
	}
	if !strings.Contains(m.View(), busyLabel) {
		t.Error("view should show the busy label")
	}

	// A second request while busy is rejected, not queued.
	m, second := send(t, m, key("s"))
	if m.toast == nil {
		t.Error("expected busy toast")
	}
	if second == nil {
		t.Error("expected the toast expiry command")
	}

	done := cmd()
	m, _ = send(t, m, done)
	if ctrl.Busy() {
		t.Error("busy flag should be released")
	}
	var contents []string
	for _, task := range ctrl.Snapshot().Tasks.Slice() {
		contents = append(contents, task.Content)
	}
	want := "antes,uno,dos,tres,después"
	if strings.Join(contents, ",") != want {
		t.Errorf("tasks = %v, want %s", contents, want)
	}
	if sel, ok := m.selectedTask(); !ok || sel.Content != "uno" {
		t.Errorf("cursor on %+v, want first substep", sel)
	}
}

func TestBoard_BreakdownOfDeletedTask(t *testing.T) {
	m, ctrl := boardModel(t, board.Task{ID: "t1", Content: "x", Column: board.Urgent})

	m, cmd := send(t, m, key("s"))
	m, _ = send(t, m, key("x"))
	m, _ = send(t, m, cmd())

	if ctrl.Snapshot().Tasks.Len() != 0 {
		t.Error("substeps of a deleted task must be discarded")
	}
	if ctrl.Busy() {
		t.Error("busy flag should be released")
	}
	if m.toast == nil || m.toast.text != "La tarea ya no existe." {
		t.Errorf("toast = %+v", m.toast)
	}
}

func TestBoard_BreakdownFallbackToast(t *testing.T) {
	initial := state.Default()
	initial.Tasks = board.New(board.Task{ID: "t1", Content: "Informe", Column: board.Urgent})
	m, ctrl := newTestModel(t, initial, &stubCoach{})
	m, _ = send(t, m, key("enter"))

	m, cmd := send(t, m, key("s"))
	m, _ = send(t, m, cmd())

	if got := ctrl.Snapshot().Tasks.Len(); got != 4 {
		t.Errorf("tasks = %d, want 4 fallback steps", got)
	}
	if m.toast == nil || !strings.Contains(m.toast.text, "sin conexión") {
		t.Errorf("toast = %+v", m.toast)
	}
}

func TestChat(t *testing.T) {
	m, ctrl := newTestModel(t, state.Default(), &stubCoach{reply: "Abre el archivo."})

	m, _ = send(t, m, key("c"))
	if !m.chatOpen || m.Mode() != keymap.ModeChat {
		t.Fatal("c should open the chat")
	}
	m, _ = send(t, m, typeText("no puedo")...)
	m, cmd := send(t, m, key("enter"))
	if cmd == nil {
		t.Fatal("expected a reply command")
	}
	if !ctrl.Typing() {
		t.Error("controller should be waiting for a reply")
	}

	m, _ = send(t, m, cmd())
	history := ctrl.Snapshot().ChatHistory
	if len(history) != 3 {
		t.Fatalf("history = %d messages, want 3", len(history))
	}
	if history[1].Role != state.RoleUser || history[1].Text != "no puedo" {
		t.Errorf("user message = %+v", history[1])
	}
	if history[2].Role != state.RoleAssistant || history[2].Text != "Abre el archivo." {
		t.Errorf("reply = %+v", history[2])
	}
	if ctrl.Typing() {
		t.Error("typing flag should clear")
	}

	m, _ = send(t, m, key("esc"))
	if m.chatOpen {
		t.Error("esc should close the chat")
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	m, ctrl := newTestModel(t, state.Default(), nil)
	m, cmd := send(t, m, key("c"), key("enter"))
	if len(ctrl.Snapshot().ChatHistory) != 1 {
		t.Error("empty message should not be sent")
	}
	if m.toast == nil || cmd == nil {
		t.Error("expected a toast")
	}
}

func TestFocus(t *testing.T) {
	m, _ := newTestModel(t, state.Default(), nil, WithSettings(Settings{
		FocusDuration: 2 * time.Second,
		Bell:          false,
	}))
	m, _ = send(t, m, key("tab"), key("tab"))
	if m.Section() != state.SectionFocus {
		t.Fatalf("Section() = %q, want focus", m.Section())
	}

	m, cmd := send(t, m, key(" "))
	if !m.timer.Active() || cmd == nil {
		t.Fatal("space should start the timer")
	}

	m, cmd = send(t, m, tuimsg.FocusTickMsg(time.Now()))
	if m.timer.Format() != "00:01" || cmd == nil {
		t.Fatalf("after one tick: %s", m.timer.Format())
	}
	m, _ = send(t, m, tuimsg.FocusTickMsg(time.Now()))
	if m.timer.Active() {
		t.Error("timer should stop at zero")
	}
	if m.toast == nil {
		t.Error("expected completion toast")
	}

	m, _ = send(t, m, key("r"))
	if m.timer.Format() != "00:02" {
		t.Errorf("after reset: %s", m.timer.Format())
	}
}

func TestFocus_PausedTickStopsChain(t *testing.T) {
	m, _ := newTestModel(t, state.Default(), nil)
	m, _ = send(t, m, key("tab"), key("tab"), key(" "), key(" "))
	m, cmd := send(t, m, tuimsg.FocusTickMsg(time.Now()))
	if cmd != nil {
		t.Error("paused timer should stop ticking")
	}
	if m.timer.Remaining() != focus.DefaultDuration {
		t.Errorf("Remaining() = %v", m.timer.Remaining())
	}
}

func TestFocus_Noise(t *testing.T) {
	m, _ := newTestModel(t, state.Default(), nil)
	m, _ = send(t, m, key("tab"), key("tab"), key("b"))
	if m.noise != focus.NoiseBrown {
		t.Errorf("noise = %q, want brown", m.noise)
	}
	m, _ = send(t, m, key("n"))
	if m.noise != focus.NoiseBinaural {
		t.Errorf("noise = %q, want binaural", m.noise)
	}
	m, _ = send(t, m, key("n"))
	if m.noise != focus.NoiseNone {
		t.Errorf("noise = %q, want none", m.noise)
	}
}

func TestReading(t *testing.T) {
	m, _ := newTestModel(t, state.Default(), nil)
	m, _ = send(t, m, key("shift+tab"), key("shift+tab"))
	if m.Section() != state.SectionReading {
		t.Fatalf("Section() = %q, want reading", m.Section())
	}

	m, _ = send(t, m, key("t"))
	if m.reading.mode != bionic.Disabled {
		t.Error("t should disable bionic reading")
	}

	m, _ = send(t, m, key("e"))
	if m.Mode() != keymap.ModeEditText {
		t.Fatalf("Mode() = %q, want edit_text", m.Mode())
	}
	m.editor.SetValue("texto nuevo")
	m, _ = send(t, m, key("esc"))
	if m.reading.text != "texto nuevo" {
		t.Errorf("reading text = %q", m.reading.text)
	}
}

func TestToastExpiry(t *testing.T) {
	m, _ := boardModel(t)
	m, _ = send(t, m, key("a"), key("enter"))
	if m.toast == nil {
		t.Fatal("expected toast")
	}
	id := m.toast.id

	m, _ = send(t, m, tuimsg.ToastExpiredMsg{ID: id + 1})
	if m.toast == nil {
		t.Error("stale expiry should not dismiss a newer toast")
	}
	m, _ = send(t, m, tuimsg.ToastExpiredMsg{ID: id})
	if m.toast != nil {
		t.Error("toast should be dismissed")
	}
}

func TestConfigReload(t *testing.T) {
	m, _ := newTestModel(t, state.Default(), nil)
	m, _ = send(t, m, tuimsg.ConfigReloadedMsg{
		FocusDuration: 25 * time.Minute,
		Bell:          false,
		ToastDuration: 5 * time.Second,
	})
	if m.timer.Format() != "25:00" {
		t.Errorf("timer = %s, want 25:00", m.timer.Format())
	}
	if m.settings.Bell || m.settings.ToastDuration != 5*time.Second {
		t.Errorf("settings = %+v", m.settings)
	}
}

func TestView_Sections(t *testing.T) {
	m, _ := newTestModel(t, state.Default(), nil)
	want := map[state.Section]string{
		state.SectionIntro:   "Curva de Estimulación",
		state.SectionBoard:   "Tablero Semáforo",
		state.SectionFocus:   "Modo Dopamina",
		state.SectionReading: "Lectura Rápida",
		state.SectionOffer:   "OFERTA ESPECIAL",
	}
	for range state.Sections {
		view := m.View()
		if !strings.Contains(view, want[m.Section()]) {
			t.Errorf("%s view missing %q", m.Section(), want[m.Section()])
		}
		if !strings.Contains(view, "Dominio del Caos") {
			t.Errorf("%s view missing progress", m.Section())
		}
		m, _ = send(t, m, key("tab"))
	}
}

func TestOffsetSection(t *testing.T) {
	if got := offsetSection(state.SectionIntro, -1); got != state.SectionOffer {
		t.Errorf("offsetSection(intro, -1) = %q", got)
	}
	if got := offsetSection(state.SectionOffer, 1); got != state.SectionIntro {
		t.Errorf("offsetSection(offer, 1) = %q", got)
	}
}
