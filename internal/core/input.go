package core

// Action represents a semantic game action, abstracted from physical key presses.
// The buttons mirror the handheld: a d-pad, START, SELECT, A and B.
type Action int

const (
	ActionNone   Action = iota
	ActionUp            // W, Up arrow
	ActionDown          // S, Down arrow
	ActionLeft          // A, Left arrow
	ActionRight         // D, Right arrow
	ActionStart         // Enter - start, pause, resume
	ActionPause         // P, Space - pause/unpause
	ActionSelect        // Tab - cycle game mode on the start screen
	ActionA             // Z, J - speed boost ability
	ActionB             // X, K - shield ability
	ActionReset         // R, Backspace - back to the start screen
	ActionCheat         // synthesized by the Konami detector
	ActionQuit          // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionSelect:
		return "Select"
	case ActionA:
		return "A"
	case ActionB:
		return "B"
	case ActionReset:
		return "Reset"
	case ActionCheat:
		return "Cheat"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two animation frames.
// Order is preserved so that two quick turns within a frame both count.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}
