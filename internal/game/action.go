package game

import "fmt"

// Action is a betting action a seat can take on its turn.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

// String returns the wire name of the action
func (a Action) String() string {
	if a < Fold || a > AllIn {
		return "unknown"
	}
	return [...]string{"fold", "check", "call", "raise", "allin"}[a]
}

// ParseAction maps a wire action name to an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise", "bet":
		return Raise, nil
	case "allin", "all_in":
		return AllIn, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}
