package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the session to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionJump              // Space, Up, z - request a jump (buffered)
	ActionDashStart         // Down, s - begin or refresh a held dash
	ActionDashEnd           // synthesized when the dash key goes quiet
	ActionPause             // P, Escape - pause/unpause
	ActionStart             // Enter, R - start or restart a run
	ActionScoreboard        // Tab - open the scoreboard from the menu
	ActionBack              // B - go back to menu
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionDashStart:
		return "DashStart"
	case ActionDashEnd:
		return "DashEnd"
	case ActionPause:
		return "Pause"
	case ActionStart:
		return "Start"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Event is a fire-and-forget notification emitted by the simulation.
type Event int

const (
	EventJump Event = iota
	EventNewHighScore
	EventSessionEnded
)

// String returns the event name used in logs.
func (e Event) String() string {
	switch e {
	case EventJump:
		return "jump"
	case EventNewHighScore:
		return "newHighScore"
	case EventSessionEnded:
		return "sessionEnded"
	default:
		return "unknown"
	}
}
