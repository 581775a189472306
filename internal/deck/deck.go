package deck

import (
	"errors"
	rand "math/rand/v2"
)

// Size is the number of cards in a fresh deck.
const Size = 52

// ErrExhausted is returned when a card is requested from an empty deck.
var ErrExhausted = errors.New("deck exhausted")

// Deck is an ordered pile of cards. Cards are dealt from the front and never
// returned; a new hand gets a new deck.
type Deck struct {
	cards []Card
}

// New creates a full 52-card deck in canonical order (suits ascending, ranks
// ascending within each suit).
func New() *Deck {
	d := &Deck{cards: make([]Card, 0, Size)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	return d
}

// NewShuffled creates a full deck and shuffles it with rng.
func NewShuffled(rng *rand.Rand) *Deck {
	d := New()
	d.Shuffle(rng)
	return d
}

// Shuffle randomizes the order of the remaining cards using a Fisher-Yates
// shuffle driven by rng.
func (d *Deck) Shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card from the deck.
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrExhausted
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// DealN deals n cards from the deck. It returns ErrExhausted without dealing
// anything if fewer than n cards remain.
func (d *Deck) DealN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrExhausted
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// Burn discards the top card unseen, as dealt casino-style before each
// community street.
func (d *Deck) Burn() error {
	_, err := d.Deal()
	return err
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
