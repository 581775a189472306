package game

import "github.com/sagythepigy/LAN-Poker/internal/deck"

// CardView is one card as shown to a recipient. A hidden card keeps its
// place in the sequence but reveals nothing.
type CardView struct {
	Rank   string `json:"rank,omitempty"`
	Suit   string `json:"suit,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}

// SeatView is one seat as shown to a recipient.
type SeatView struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Chips      int        `json:"chips"`
	StreetBet  int        `json:"streetBet"`
	Folded     bool       `json:"folded,omitempty"`
	AllIn      bool       `json:"allIn,omitempty"`
	SittingOut bool       `json:"sittingOut,omitempty"`
	Winner     bool       `json:"winner,omitempty"`
	LastAction string     `json:"lastAction,omitempty"`
	HandRank   string     `json:"handRank,omitempty"`
	Cards      []CardView `json:"cards"`
}

// Snapshot is the full room state as visible to one recipient.
type Snapshot struct {
	RoomID     string     `json:"roomId"`
	Street     string     `json:"street"`
	HandNum    int        `json:"handNum"`
	Pot        int        `json:"pot"`
	CurrentBet int        `json:"currentBet"`
	MinRaise   int        `json:"minRaise"`
	SmallBlind int        `json:"smallBlind"`
	BigBlind   int        `json:"bigBlind"`
	Community  []CardView `json:"community"`
	DealerSeat string     `json:"dealerSeat,omitempty"`
	ActiveSeat string     `json:"activeSeat,omitempty"`
	You        string     `json:"you,omitempty"`
	Seats      []SeatView `json:"seats"`
}

// buildSnapshot renders the room for one recipient. Hole cards are visible
// to their owner always, and to everyone once the street reaches showdown,
// except folded and sitting-out seats, whose cards are never revealed to
// others. Caller holds the lock.
func (r *Room) buildSnapshot(recipient string) *Snapshot {
	snap := &Snapshot{
		RoomID:     r.id,
		Street:     r.street.String(),
		HandNum:    r.handNum,
		Pot:        r.pot,
		CurrentBet: r.currentBet,
		MinRaise:   r.minRaise,
		SmallBlind: r.cfg.SmallBlind,
		BigBlind:   r.cfg.BigBlind,
		You:        recipient,
		Community:  make([]CardView, 0, len(r.community)),
		Seats:      make([]SeatView, 0, len(r.seats)),
	}

	for _, c := range r.community {
		snap.Community = append(snap.Community, cardView(c))
	}
	if r.street != Waiting && len(r.seats) > 0 {
		snap.DealerSeat = r.seats[r.dealerIdx].ID
	}
	if r.street.Betting() && r.activeIdx >= 0 && r.activeIdx < len(r.seats) {
		snap.ActiveSeat = r.seats[r.activeIdx].ID
	}

	reveal := r.street == Showdown || r.street == RoundComplete
	for _, s := range r.seats {
		view := SeatView{
			ID:         s.ID,
			Name:       s.Name,
			Chips:      s.Chips,
			StreetBet:  s.StreetBet,
			Folded:     s.Folded,
			AllIn:      s.AllIn,
			SittingOut: s.SittingOut,
			Winner:     s.Winner,
			LastAction: s.LastAction,
			Cards:      make([]CardView, 0, len(s.HoleCards)),
		}
		visible := s.ID == recipient || (reveal && s.Live())
		for _, c := range s.HoleCards {
			if visible {
				view.Cards = append(view.Cards, cardView(c))
			} else {
				view.Cards = append(view.Cards, CardView{Hidden: true})
			}
		}
		if reveal && s.Live() && s.Score != nil {
			view.HandRank = s.Score.String()
		}
		snap.Seats = append(snap.Seats, view)
	}
	return snap
}

func cardView(c deck.Card) CardView {
	return CardView{Rank: c.Rank.String(), Suit: c.Suit.Name()}
}
