package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Iron-Ham/cerebro/internal/bionic"
	"github.com/Iron-Ham/cerebro/internal/errors"
	"github.com/Iron-Ham/cerebro/internal/focus"
	"github.com/Iron-Ham/cerebro/internal/logging"
	"github.com/Iron-Ham/cerebro/internal/state"
	"github.com/Iron-Ham/cerebro/internal/tui/keymap"
)

// Coach is the capability bridge the TUI calls asynchronously.
type Coach interface {
	state.Breakdowner
	state.Replier
}

// Settings are the config values the TUI reads. They can change while the
// program runs when the config file is edited.
type Settings struct {
	ToastDuration time.Duration
	FocusDuration time.Duration
	Bell          bool
	// Backend is shown in the sidebar, e.g. "gemini" or "offline".
	Backend string
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		ToastDuration: 3 * time.Second,
		FocusDuration: focus.DefaultDuration,
		Bell:          true,
	}
}

// boardState tracks the cursor and the card being carried.
type boardState struct {
	col     int
	row     int
	holding string // id of the picked-up task, empty when not carrying
}

// readingState is the text shown in the reading section.
type readingState struct {
	text string
	mode bionic.Mode
}

// toast is a transient message shown above the help bar.
type toast struct {
	id       int
	text     string
	severity errors.Severity
}

// Model is the Bubbletea model for the whole application.
type Model struct {
	ctx      context.Context
	ctrl     *state.Controller
	coach    Coach
	keys     *keymap.KeyMap
	logger   *logging.Logger
	settings Settings

	section  state.Section
	mode     keymap.Mode
	width    int
	height   int
	showHelp bool
	quitting bool

	board     boardState
	taskInput textinput.Model

	timer   *focus.Timer
	noise   focus.Noise
	ticking bool

	reading  readingState
	editor   textarea.Model
	viewport viewport.Model

	chatOpen  bool
	chatInput textinput.Model

	toast    *toast
	toastSeq int
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSettings overrides DefaultSettings.
func WithSettings(s Settings) ModelOption {
	return func(m *Model) {
		m.settings = s
	}
}

// WithContext sets the context passed to capability calls.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// NewModel creates the model and marks the intro section as visited.
func NewModel(ctrl *state.Controller, c Coach, opts ...ModelOption) Model {
	ti := textinput.New()
	ti.Placeholder = "Escribe una nueva tarea..."
	ti.CharLimit = 200
	ti.Width = 40

	ci := textinput.New()
	ci.Placeholder = "¿Te sientes bloqueado?"
	ci.CharLimit = 500
	ci.Width = 30

	ta := textarea.New()
	ta.Placeholder = "Pega aquí tu texto largo para leerlo más rápido..."
	ta.CharLimit = 0
	ta.SetValue(bionic.SampleText)

	m := Model{
		ctx:       context.Background(),
		ctrl:      ctrl,
		coach:     c,
		keys:      keymap.Default(),
		logger:    logging.NopLogger(),
		settings:  DefaultSettings(),
		section:   state.SectionIntro,
		mode:      keymap.ModeNormal,
		taskInput: ti,
		chatInput: ci,
		editor:    ta,
		viewport:  viewport.New(60, 10),
		reading:   readingState{text: bionic.SampleText, mode: bionic.Enabled},
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.settings.ToastDuration <= 0 {
		m.settings.ToastDuration = DefaultSettings().ToastDuration
	}
	m.logger = m.logger.WithComponent("tui")
	m.timer = focus.NewTimer(m.settings.FocusDuration)
	m.ctrl.Visit(m.section)
	m.refreshReading()
	return m
}

// Section returns the section on screen.
func (m Model) Section() state.Section { return m.section }

// Mode returns the current input mode.
func (m Model) Mode() keymap.Mode { return m.mode }
