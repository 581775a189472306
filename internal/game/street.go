package game

// Street is the phase a room is in: the four betting streets plus the
// non-betting phases around them.
type Street int

const (
	Waiting Street = iota
	Preflop
	Flop
	Turn
	River
	Showdown
	RoundComplete
)

// String returns the wire name of the street
func (s Street) String() string {
	if s < Waiting || s > RoundComplete {
		return "unknown"
	}
	return [...]string{"waiting", "preflop", "flop", "turn", "river", "showdown", "round_complete"}[s]
}

// Betting reports whether seats act on this street.
func (s Street) Betting() bool {
	return s >= Preflop && s <= River
}
