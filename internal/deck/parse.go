package deck

import "fmt"

// ParseCards parses compact card notation like "AsKhQd" into cards. Each card
// is a rank character (2-9, T, J, Q, K, A) followed by a suit character
// (s, h, d, c). Spaces between cards are ignored.
func ParseCards(s string) ([]Card, error) {
	var cards []Card
	i := 0
	for i < len(s) {
		if s[i] == ' ' {
			i++
			continue
		}
		if i+1 >= len(s) {
			return nil, fmt.Errorf("incomplete card at position %d in %q", i, s)
		}
		rank, err := parseRank(s[i])
		if err != nil {
			return nil, fmt.Errorf("position %d in %q: %w", i, s, err)
		}
		suit, err := parseSuit(s[i+1])
		if err != nil {
			return nil, fmt.Errorf("position %d in %q: %w", i+1, s, err)
		}
		cards = append(cards, NewCard(suit, rank))
		i += 2
	}
	return cards, nil
}

// MustParseCards is ParseCards that panics on malformed input. Intended for
// tests and fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(b byte) (Rank, error) {
	switch b {
	case '2':
		return Two, nil
	case '3':
		return Three, nil
	case '4':
		return Four, nil
	case '5':
		return Five, nil
	case '6':
		return Six, nil
	case '7':
		return Seven, nil
	case '8':
		return Eight, nil
	case '9':
		return Nine, nil
	case 'T', 't':
		return Ten, nil
	case 'J', 'j':
		return Jack, nil
	case 'Q', 'q':
		return Queen, nil
	case 'K', 'k':
		return King, nil
	case 'A', 'a':
		return Ace, nil
	default:
		return 0, fmt.Errorf("invalid rank %q", b)
	}
}

func parseSuit(b byte) (Suit, error) {
	switch b {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("invalid suit %q", b)
	}
}
