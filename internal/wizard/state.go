package wizard

import "errors"

// State enumerates the wizard pages. Transitions are linear
// (home -> create -> result) with an explicit reset back to create.
type State int

const (
	StateHome State = iota
	StateCreate
	StateResult
)

func (s State) String() string {
	switch s {
	case StateHome:
		return "home"
	case StateCreate:
		return "create"
	case StateResult:
		return "result"
	default:
		return "unknown"
	}
}

var ErrInvalidTransition = errors.New("invalid wizard transition")

var transitions = map[State][]State{
	StateHome:   {StateCreate},
	StateCreate: {StateResult},
	StateResult: {StateCreate},
}

// canTransition reports whether moving from one state to another is allowed.
func canTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
