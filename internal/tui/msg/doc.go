// Package msg defines the message types used by the TUI's Bubbletea event loop
// and the command factories that produce them.
//
// Long-running work (capability calls, timers) runs inside tea.Cmd closures
// and reports back through these messages; the Update loop then applies the
// result against the controller's current state.
package msg
