// Package evaluator ranks poker hands. A hand's strength is a Score: the
// hand category plus the tie-break ranks that order hands within a category.
// Scores compare lexicographically, so two Scores decide a pot with a single
// Compare call.
package evaluator

import (
	"sort"

	"github.com/sagythepigy/LAN-Poker/internal/deck"
)

// Category classifies a five-card poker hand. Higher categories beat lower
// ones. A royal flush is the ace-high straight flush, not a category of its
// own.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Score is the strength of a hand: the category followed by tie-break ranks
// in decreasing significance. For a full house the tie-breaks are [trip rank,
// pair rank]; for a straight just the top rank, with the wheel (A-2-3-4-5)
// reporting Five; and so on.
type Score struct {
	Category  Category
	Tiebreaks []deck.Rank
}

// Compare returns 1 if s beats other, -1 if other beats s, and 0 on an exact
// tie. Comparison is lexicographic: category first, then each tie-break rank
// in order.
func (s Score) Compare(other Score) int {
	if s.Category != other.Category {
		if s.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(s.Tiebreaks) && i < len(other.Tiebreaks); i++ {
		if s.Tiebreaks[i] != other.Tiebreaks[i] {
			if s.Tiebreaks[i] > other.Tiebreaks[i] {
				return 1
			}
			return -1
		}
	}
	switch {
	case len(s.Tiebreaks) > len(other.Tiebreaks):
		return 1
	case len(s.Tiebreaks) < len(other.Tiebreaks):
		return -1
	}
	return 0
}

// String names the hand, distinguishing the royal flush from lesser straight
// flushes.
func (s Score) String() string {
	if s.Category == StraightFlush && len(s.Tiebreaks) > 0 && s.Tiebreaks[0] == deck.Ace {
		return "Royal Flush"
	}
	return s.Category.String()
}

// Rank5 scores exactly five cards.
func Rank5(cards [5]deck.Card) Score {
	var rankCount [15]int
	var suitCount [4]int
	for _, c := range cards {
		rankCount[c.Rank]++
		suitCount[c.Suit]++
	}

	flush := false
	for _, n := range suitCount {
		if n == 5 {
			flush = true
			break
		}
	}

	// Distinct ranks in descending order, and the ranks grouped by
	// multiplicity.
	var distinct []deck.Rank
	var quad, trip deck.Rank
	var pairs []deck.Rank
	for r := deck.Ace; r >= deck.Two; r-- {
		switch rankCount[r] {
		case 0:
			continue
		case 2:
			pairs = append(pairs, r)
		case 3:
			trip = r
		case 4:
			quad = r
		}
		distinct = append(distinct, r)
	}

	straightTop := straightHigh(distinct)

	switch {
	case flush && straightTop != 0:
		return Score{StraightFlush, []deck.Rank{straightTop}}
	case quad != 0:
		return Score{FourOfAKind, []deck.Rank{quad, kickers(distinct, quad)[0]}}
	case trip != 0 && len(pairs) == 1:
		return Score{FullHouse, []deck.Rank{trip, pairs[0]}}
	case flush:
		return Score{Flush, ranksDescending(cards)}
	case straightTop != 0:
		return Score{Straight, []deck.Rank{straightTop}}
	case trip != 0:
		return Score{ThreeOfAKind, append([]deck.Rank{trip}, kickers(distinct, trip)...)}
	case len(pairs) == 2:
		return Score{TwoPair, []deck.Rank{pairs[0], pairs[1], kickers(distinct, pairs[0], pairs[1])[0]}}
	case len(pairs) == 1:
		return Score{OnePair, append([]deck.Rank{pairs[0]}, kickers(distinct, pairs[0])...)}
	default:
		return Score{HighCard, ranksDescending(cards)}
	}
}

// Rank7 scores the best five-card hand available from the given cards,
// typically two hole cards plus five community cards. Fewer than five cards
// score as the zero value, which loses to any real hand.
func Rank7(cards []deck.Card) Score {
	n := len(cards)
	if n < 5 {
		return Score{}
	}

	var best Score
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						s := Rank5([5]deck.Card{cards[a], cards[b], cards[c], cards[d], cards[e]})
						if s.Compare(best) > 0 {
							best = s
						}
					}
				}
			}
		}
	}
	return best
}

// straightHigh returns the top rank of a straight formed by the given
// distinct descending ranks, or 0 if they do not form one. The wheel
// (A-2-3-4-5) counts with Five on top.
func straightHigh(distinct []deck.Rank) deck.Rank {
	if len(distinct) != 5 {
		return 0
	}
	if distinct[0]-distinct[4] == 4 {
		return distinct[0]
	}
	if distinct[0] == deck.Ace && distinct[1] == deck.Five && distinct[1]-distinct[4] == 3 {
		return deck.Five
	}
	return 0
}

// kickers returns the distinct ranks minus the excluded ones, preserving
// descending order.
func kickers(distinct []deck.Rank, exclude ...deck.Rank) []deck.Rank {
	var out []deck.Rank
	for _, r := range distinct {
		skip := false
		for _, ex := range exclude {
			if r == ex {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, r)
		}
	}
	return out
}

// ranksDescending returns all five card ranks sorted high to low, duplicates
// included.
func ranksDescending(cards [5]deck.Card) []deck.Rank {
	ranks := make([]deck.Rank, 5)
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })
	return ranks
}
