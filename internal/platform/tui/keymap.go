package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snakeboy/internal/core"
)

// KeyMap defines the key bindings for the game screen. The buttons mirror
// the handheld: a d-pad, START, SELECT, A and B.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Start  key.Binding
	Pause  key.Binding
	Select key.Binding
	A      key.Binding
	B      key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Select, k.A, k.B, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Start, k.Pause, k.Select, k.Reset},
		{k.A, k.B, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "pause"),
		),
		Select: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "mode"),
		),
		A: key.NewBinding(
			key.WithKeys("z", "j"),
			key.WithHelp("z/j", "boost"),
		),
		B: key.NewBinding(
			key.WithKeys("x", "k"),
			key.WithHelp("x/k", "shield"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r", "backspace"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Start):
		return core.ActionStart
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Select):
		return core.ActionSelect
	case key.Matches(msg, k.A):
		return core.ActionA
	case key.Matches(msg, k.B):
		return core.ActionB
	case key.Matches(msg, k.Reset):
		return core.ActionReset
	}
	return core.ActionNone
}

// konamiCode is ↑ ↑ ↓ ↓ ← → ← → B A.
var konamiCode = []core.Action{
	core.ActionUp, core.ActionUp,
	core.ActionDown, core.ActionDown,
	core.ActionLeft, core.ActionRight,
	core.ActionLeft, core.ActionRight,
	core.ActionB, core.ActionA,
}

// Konami watches the action stream for the Konami code.
type Konami struct {
	pos int
}

// Feed records one action and reports whether it completed the code.
func (k *Konami) Feed(a core.Action) bool {
	if a == core.ActionNone {
		return false
	}
	if a == konamiCode[k.pos] {
		k.pos++
		if k.pos == len(konamiCode) {
			k.pos = 0
			return true
		}
		return false
	}
	// ↑↑↑ keeps the last two presses; any other miss may start a new attempt.
	if a == konamiCode[0] && k.pos == 2 {
		return false
	}
	k.pos = 0
	if a == konamiCode[0] {
		k.pos = 1
	}
	return false
}
