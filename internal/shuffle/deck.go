package shuffle

import (
	"errors"
	"fmt"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// ErrInvalidInput is returned when a deck is not a permutation of the expected size,
// or when two decks of different lengths are compared.
var ErrInvalidInput = errors.New("invalid input")

// Deck is one ordering of the symbols 0..len(Deck)-1.
// Each position holds a card ID, and no card ID appears twice.
type Deck []int

// Compare returns the number of positions holding the same card in both decks.
func Compare(a, b Deck) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: comparing decks of length %d and %d", ErrInvalidInput, len(a), len(b))
	}
	return CountMatches(a, b), nil
}

// CountMatches is Compare without the length check, for hot loops whose callers
// have already validated both decks. Decks of different lengths are compared over
// their common prefix.
func CountMatches(a, b Deck) int {
	n := min(len(a), len(b))
	a, b = a[:n], b[:n]
	matches := 0
	for i, card := range a {
		if card == b[i] {
			matches++
		}
	}
	return matches
}

// Validate checks that deck holds each of the card IDs 0..size-1 exactly once.
func Validate(deck Deck, size int) error {
	if len(deck) != size {
		return fmt.Errorf("%w: deck has %d cards, expected %d", ErrInvalidInput, len(deck), size)
	}
	seen := make([]bool, size)
	for pos, card := range deck {
		if card < 0 || card >= size {
			return fmt.Errorf("%w: card %d at position %d is out of range [0, %d)", ErrInvalidInput, card, pos, size)
		}
		if seen[card] {
			return fmt.Errorf("%w: card %d repeated at position %d", ErrInvalidInput, card, pos)
		}
		seen[card] = true
	}
	return nil
}

// Clone returns a copy of the deck that shares no memory with it.
func (d Deck) Clone() Deck {
	return append(Deck(nil), d...)
}
