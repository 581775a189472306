package game

import (
	"github.com/sagythepigy/LAN-Poker/internal/deck"
	"github.com/sagythepigy/LAN-Poker/internal/evaluator"
)

// Seat is one player's position at a table plus their per-hand state.
type Seat struct {
	ID   string // connection identity token, stable for the player's session
	Name string

	Chips      int
	HoleCards  []deck.Card
	StreetBet  int // chips committed on the current street
	StartChips int // stack at the start of the current hand

	Folded     bool
	AllIn      bool
	SittingOut bool // not dealt into the current hand (busted or joined mid-hand)
	Absent     bool // disconnected mid-hand; purged at the next hand boundary

	Winner     bool
	LastAction string
	Score      *evaluator.Score // set at showdown for evaluated seats
}

// CanAct reports whether the seat can take a betting action: dealt into the
// hand, not folded, not all-in.
func (s *Seat) CanAct() bool {
	return !s.SittingOut && !s.Folded && !s.AllIn
}

// Live reports whether the seat still contends for the pot.
func (s *Seat) Live() bool {
	return !s.SittingOut && !s.Folded
}

// resetForHand clears the per-hand fields ahead of a new deal.
func (s *Seat) resetForHand() {
	s.HoleCards = nil
	s.StreetBet = 0
	s.StartChips = s.Chips
	s.Folded = false
	s.AllIn = false
	s.SittingOut = s.Chips == 0
	s.Winner = false
	s.LastAction = ""
	s.Score = nil
}
