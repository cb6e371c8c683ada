// Package tui implements the interactive terminal interface: the section
// tabs, the traffic-light board, the focus timer, bionic reading and the
// chat coach panel.
package tui

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/cerebro/internal/state"
	tuimsg "github.com/Iron-Ham/cerebro/internal/tui/msg"
)

// App wraps the Bubbletea program
type App struct {
	mu      sync.Mutex
	program *tea.Program
	model   Model
}

// New creates a new TUI application
func New(ctrl *state.Controller, c Coach, opts ...ModelOption) *App {
	return &App{model: NewModel(ctrl, c, opts...)}
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run(programOpts ...tea.ProgramOption) error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, programOpts...)

	a.mu.Lock()
	a.program = tea.NewProgram(a.model, opts...)
	a.mu.Unlock()

	// Set up signal handling for graceful shutdown
	// The state is saved on every change, so quitting loses nothing
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})

	go func() {
		select {
		case <-sigChan:
			a.Send(tea.Quit())
		case <-done:
		}
	}()

	_, err := a.program.Run()

	// Clean up signal handler
	signal.Stop(sigChan)
	close(done)

	return err
}

// Send delivers msg to the running program. It is a no-op before Run.
func (a *App) Send(msg tea.Msg) {
	a.mu.Lock()
	p := a.program
	a.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// ReloadSettings pushes changed config values into the running program.
func (a *App) ReloadSettings(s Settings) {
	a.Send(tuimsg.ConfigReloadedMsg{
		FocusDuration: s.FocusDuration,
		Bell:          s.Bell,
		ToastDuration: s.ToastDuration,
	})
}
