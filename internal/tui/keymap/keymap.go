// Package keymap maps key presses to TUI commands per section, keeping key
// bindings out of the Update loop.
package keymap

import (
	"github.com/Iron-Ham/cerebro/internal/state"
)

// Mode represents the current input mode of the TUI.
type Mode string

const (
	ModeNormal   Mode = "normal"    // Keys are commands
	ModeAddTask  Mode = "add_task"  // Typing a new task
	ModeChat     Mode = "chat"      // Typing a chat message
	ModeEditText Mode = "edit_text" // Editing the reading text
)

// Command represents a named action that can be triggered by a key binding.
type Command string

// Global commands
const (
	CmdQuit        Command = "quit"
	CmdNextSection Command = "next_section"
	CmdPrevSection Command = "prev_section"
	CmdToggleChat  Command = "toggle_chat"
	CmdToggleHelp  Command = "toggle_help"
)

// Section commands
const (
	CmdContinue Command = "continue" // intro -> board

	CmdLeft        Command = "left"
	CmdRight       Command = "right"
	CmdUp          Command = "up"
	CmdDown        Command = "down"
	CmdAddTask     Command = "add_task"
	CmdDeleteTask  Command = "delete_task"
	CmdPickDrop    Command = "pick_drop"
	CmdDropUrgent  Command = "drop_urgent"
	CmdDropProcess Command = "drop_in_progress"
	CmdDropDone    Command = "drop_done"
	CmdBreakdown   Command = "breakdown"
	CmdCancel      Command = "cancel"

	CmdToggleTimer   Command = "toggle_timer"
	CmdResetTimer    Command = "reset_timer"
	CmdBrownNoise    Command = "brown_noise"
	CmdBinauralNoise Command = "binaural_noise"

	CmdEditText     Command = "edit_text"
	CmdToggleBionic Command = "toggle_bionic"
	CmdScrollUp     Command = "scroll_up"
	CmdScrollDown   Command = "scroll_down"
)

// Binding is one entry of the help bar.
type Binding struct {
	Key  string
	Desc string
}

// KeyMap resolves keys for normal mode.
type KeyMap struct {
	global   map[string]Command
	sections map[state.Section]map[string]Command
	help     map[state.Section][]Binding
}

// Default returns the standard bindings.
func Default() *KeyMap {
	return &KeyMap{
		global: map[string]Command{
			"q":         CmdQuit,
			"ctrl+c":    CmdQuit,
			"tab":       CmdNextSection,
			"shift+tab": CmdPrevSection,
			"c":         CmdToggleChat,
			"?":         CmdToggleHelp,
		},
		sections: map[state.Section]map[string]Command{
			state.SectionIntro: {
				"enter": CmdContinue,
			},
			state.SectionBoard: {
				"left": CmdLeft, "h": CmdLeft,
				"right": CmdRight, "l": CmdRight,
				"up": CmdUp, "k": CmdUp,
				"down": CmdDown, "j": CmdDown,
				"a":      CmdAddTask,
				"x":      CmdDeleteTask,
				"delete": CmdDeleteTask,
				" ":      CmdPickDrop,
				"space":  CmdPickDrop,
				"enter":  CmdPickDrop,
				"1":      CmdDropUrgent,
				"2":      CmdDropProcess,
				"3":      CmdDropDone,
				"s":      CmdBreakdown,
				"esc":    CmdCancel,
			},
			state.SectionFocus: {
				" ":     CmdToggleTimer,
				"space": CmdToggleTimer,
				"enter": CmdToggleTimer,
				"r":     CmdResetTimer,
				"b":     CmdBrownNoise,
				"n":     CmdBinauralNoise,
			},
			state.SectionReading: {
				"e":    CmdEditText,
				"t":    CmdToggleBionic,
				"up":   CmdScrollUp,
				"k":    CmdScrollUp,
				"down": CmdScrollDown,
				"j":    CmdScrollDown,
			},
		},
		help: map[state.Section][]Binding{
			state.SectionIntro: {
				{"enter", "vamos a organizarnos"},
			},
			state.SectionBoard: {
				{"←→↑↓", "mover"},
				{"a", "añadir"},
				{"space", "coger/soltar"},
				{"1/2/3", "mover a columna"},
				{"s", "desglosar con IA"},
				{"x", "borrar"},
			},
			state.SectionFocus: {
				{"space", "iniciar/pausar"},
				{"r", "reiniciar"},
				{"b", "ruido marrón"},
				{"n", "binaural"},
			},
			state.SectionReading: {
				{"e", "editar texto"},
				{"t", "activar/desactivar"},
				{"↑↓", "desplazar"},
			},
		},
	}
}

// Lookup returns the command bound to key in section, falling back to the
// global bindings.
func (k *KeyMap) Lookup(section state.Section, key string) (Command, bool) {
	if cmds, ok := k.sections[section]; ok {
		if cmd, ok := cmds[key]; ok {
			return cmd, true
		}
	}
	cmd, ok := k.global[key]
	return cmd, ok
}

// Help returns the help bar entries for section followed by the global ones.
func (k *KeyMap) Help(section state.Section) []Binding {
	out := append([]Binding{}, k.help[section]...)
	return append(out,
		Binding{"tab", "sección"},
		Binding{"c", "coach"},
		Binding{"q", "salir"},
	)
}
