package evaluator

import (
	"testing"

	"github.com/sagythepigy/LAN-Poker/internal/deck"
)

func rank5(t *testing.T, s string) Score {
	t.Helper()
	cards := deck.MustParseCards(s)
	if len(cards) != 5 {
		t.Fatalf("expected 5 cards in %q, got %d", s, len(cards))
	}
	return Rank5([5]deck.Card{cards[0], cards[1], cards[2], cards[3], cards[4]})
}

func TestRank5Categories(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		want  Category
	}{
		{"high card", "AsKh9d5c2s", HighCard},
		{"one pair", "AsAh9d5c2s", OnePair},
		{"two pair", "AsAh9d9c2s", TwoPair},
		{"three of a kind", "AsAhAd5c2s", ThreeOfAKind},
		{"straight", "9s8h7d6c5s", Straight},
		{"wheel straight", "As2h3d4c5s", Straight},
		{"flush", "AsKs9s5s2s", Flush},
		{"full house", "AsAhAd5c5s", FullHouse},
		{"four of a kind", "AsAhAdAc2s", FourOfAKind},
		{"straight flush", "9s8s7s6s5s", StraightFlush},
		{"royal flush", "AsKsQsJsTs", StraightFlush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rank5(t, tt.cards)
			if got.Category != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got.Category)
			}
		})
	}
}

func TestWheelStraightRanksAsFiveHigh(t *testing.T) {
	wheel := rank5(t, "As2h3d4c5s")
	if wheel.Tiebreaks[0] != deck.Five {
		t.Errorf("wheel top rank should be Five, got %v", wheel.Tiebreaks[0])
	}

	sixHigh := rank5(t, "2s3h4d5c6s")
	if sixHigh.Compare(wheel) != 1 {
		t.Error("six-high straight should beat the wheel")
	}

	aceHigh := rank5(t, "AsKh9d5c2s")
	if wheel.Compare(aceHigh) != 1 {
		t.Error("wheel should beat ace-high card")
	}
}

func TestScoreString(t *testing.T) {
	tests := []struct {
		cards string
		want  string
	}{
		{"AsKsQsJsTs", "Royal Flush"},
		{"9s8s7s6s5s", "Straight Flush"},
		{"AsAhAdAc2s", "Four of a Kind"},
		{"AsAhAd5c5s", "Full House"},
		{"AsKs9s5s2s", "Flush"},
		{"9s8h7d6c5s", "Straight"},
		{"AsAhAd5c2s", "Three of a Kind"},
		{"AsAh9d9c2s", "Two Pair"},
		{"AsAh9d5c2s", "One Pair"},
		{"AsKh9d5c2s", "High Card"},
	}
	for _, tt := range tests {
		if got := rank5(t, tt.cards).String(); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.cards, tt.want, got)
		}
	}
}

func TestCompareTiebreaks(t *testing.T) {
	tests := []struct {
		name     string
		stronger string
		weaker   string
	}{
		{"pair kicker", "AsAh9d5c3s", "AsAh9d5c2s"},
		{"higher pair", "KsKh9d5c2s", "QsQh9d5c2s"},
		{"two pair high", "AsAh9d9c2s", "KsKhQdQc2s"},
		{"two pair kicker", "AsAh9d9cKs", "AsAh9d9cQs"},
		{"trip rank", "KsKhKd5c2s", "QsQhQdAcKs"},
		{"straight top", "Ts9h8d7c6s", "9s8h7d6c5s"},
		{"flush ranks", "AsKs9s5s3s", "AsKs9s5s2s"},
		{"full house trip", "KsKhKd2c2s", "QsQhQdAcAs"},
		{"quad kicker", "AsAhAdAcKs", "AsAhAdAcQs"},
		{"quad rank", "KsKhKdKc2s", "QsQhQdQcAs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := rank5(t, tt.stronger)
			b := rank5(t, tt.weaker)
			if a.Compare(b) != 1 {
				t.Errorf("expected %s to beat %s", tt.stronger, tt.weaker)
			}
			if b.Compare(a) != -1 {
				t.Errorf("expected %s to lose to %s", tt.weaker, tt.stronger)
			}
		})
	}
}

func TestCompareExactTie(t *testing.T) {
	a := rank5(t, "AsKh9d5c2s")
	b := rank5(t, "AdKc9s5h2d")
	if a.Compare(b) != 0 || b.Compare(a) != 0 {
		t.Error("identical ranks in different suits should tie")
	}
}

func TestCategoryOrdering(t *testing.T) {
	ascending := []string{
		"AsKh9d5c2s", // high card
		"2s2h9d5c3s", // one pair
		"2s2h3d3c4s", // two pair
		"2s2h2d5c4s", // three of a kind
		"As2h3d4c5s", // straight (wheel)
		"7s5s4s3s2s", // flush
		"2s2h2d3c3s", // full house
		"2s2h2d2c3s", // four of a kind
		"As2s3s4s5s", // straight flush
	}

	for i := 1; i < len(ascending); i++ {
		lo := rank5(t, ascending[i-1])
		hi := rank5(t, ascending[i])
		if hi.Compare(lo) != 1 {
			t.Errorf("expected %s to beat %s", ascending[i], ascending[i-1])
		}
	}
}

func TestRank7PicksBestSubset(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		want  Category
	}{
		{"flush hidden in seven", "AsKs2h9s3d4s8s", Flush},
		{"straight across hole and board", "9h8s2c7d3hTc6s", Straight},
		{"full house from paired board", "AsAh2c2d2hKsQd", FullHouse},
		{"board plays", "2s3h9dTcJhQsKd", Straight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank7(deck.MustParseCards(tt.cards))
			if got.Category != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got.Category)
			}
		})
	}
}

func TestRank7UsesBestFive(t *testing.T) {
	// Three pairs among seven cards: the two highest plus the best kicker
	// must win, the third pair is dead.
	s := Rank7(deck.MustParseCards("AsAh9d9c5s5hKd"))
	if s.Category != TwoPair {
		t.Fatalf("expected two pair, got %v", s.Category)
	}
	want := []deck.Rank{deck.Ace, deck.Nine, deck.King}
	for i, r := range want {
		if s.Tiebreaks[i] != r {
			t.Errorf("tiebreak %d: expected %v, got %v", i, r, s.Tiebreaks[i])
		}
	}
}

func TestRank7ShortInput(t *testing.T) {
	zero := Rank7(deck.MustParseCards("AsKh"))
	if zero.Category != HighCard || len(zero.Tiebreaks) != 0 {
		t.Errorf("short input should produce the zero score, got %+v", zero)
	}

	real := Rank7(deck.MustParseCards("2s3h4d5c7s"))
	if real.Compare(zero) != 1 {
		t.Error("any real hand should beat the zero score")
	}
}
