package game

import (
	"github.com/sagythepigy/LAN-Poker/internal/deck"
	"github.com/sagythepigy/LAN-Poker/internal/evaluator"
	"github.com/sagythepigy/LAN-Poker/internal/stats"
)

// runShowdown resolves the hand: a lone live seat wins the pot uncontested
// without showing; otherwise every live seat's best seven-card score decides,
// with ties splitting the pot evenly and the odd chip going to the first
// winner in seating order from the dealer. The room then parks in
// round_complete until the restart timer fires.
func (r *Room) runShowdown() {
	r.street = Showdown
	potSize := r.pot

	// Live seats in seating order starting left of the dealer, so a split
	// remainder lands deterministically.
	var live []*Seat
	for i := 1; i <= len(r.seats); i++ {
		s := r.seats[(r.dealerIdx+i)%len(r.seats)]
		if s.Live() {
			live = append(live, s)
		}
	}

	var winners []*Seat
	if len(live) == 1 {
		winners = live
		live[0].Winner = true
		live[0].Chips += r.pot
		r.pot = 0
		r.logger.Info("pot won uncontested", "name", live[0].Name, "pot", potSize)
	} else {
		var best evaluator.Score
		for _, s := range live {
			cards := make([]deck.Card, 0, len(s.HoleCards)+len(r.community))
			cards = append(cards, s.HoleCards...)
			cards = append(cards, r.community...)
			score := evaluator.Rank7(cards)
			s.Score = &score

			switch {
			case len(winners) == 0 || score.Compare(best) > 0:
				best = score
				winners = []*Seat{s}
			case score.Compare(best) == 0:
				winners = append(winners, s)
			}
		}

		share := r.pot / len(winners)
		odd := r.pot % len(winners)
		for _, w := range winners {
			w.Winner = true
			w.Chips += share
		}
		winners[0].Chips += odd
		r.pot = 0
		r.logger.Info("showdown",
			"winners", winnerNames(winners),
			"hand", best.String(),
			"pot", potSize)
	}

	r.recordHandResult(potSize)
	r.notifyAll()

	r.street = RoundComplete
	r.scheduleRestart()
}

// recordHandResult reports the completed hand to the stats recorder.
func (r *Room) recordHandResult(potSize int) {
	board := make([]string, len(r.community))
	for i, c := range r.community {
		board[i] = c.Label()
	}

	results := make([]stats.HandResult, 0, len(r.seats))
	for pos, s := range r.seats {
		if s.SittingOut {
			continue
		}
		cards := make([]string, len(s.HoleCards))
		for i, c := range s.HoleCards {
			cards[i] = c.Label()
		}
		res := stats.HandResult{
			Player:     s.Name,
			StartChips: s.StartChips,
			EndChips:   s.Chips,
			Cards:      cards,
			Position:   pos,
			Winner:     s.Winner,
		}
		switch {
		case s.Folded:
			res.HandType = "Fold"
		case s.Score != nil:
			res.HandType = s.Score.String()
		default:
			res.HandType = "Uncontested"
		}
		results = append(results, res)
	}

	r.recorder.RecordHandResult(r.handRef, potSize, board, results)
}

func winnerNames(winners []*Seat) []string {
	names := make([]string, len(winners))
	for i, w := range winners {
		names[i] = w.Name
	}
	return names
}
