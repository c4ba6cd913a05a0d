package stats

import (
	"fmt"

	"github.com/janpfeifer/GoShuffle/internal/shuffle"
)

// History holds every deck processed so far, in processing order, and scores each new
// deck against all of them.
//
// Scoring is O(len(History) * deckSize) per deck, so O(T^2) over T decks: this is the
// intrinsic cost of comparing against the full history. The optional position index
// (see WithPositionIndex) only shortcuts the scan once the best possible score was found.
type History struct {
	deckSize int
	decks    []shuffle.Deck
	index    *positionIndex // nil if disabled.
}

// NewHistory creates an empty history of decks with deckSize cards.
func NewHistory(deckSize int, indexed bool) *History {
	h := &History{deckSize: deckSize}
	if indexed {
		h.index = newPositionIndex(deckSize)
	}
	return h
}

// Len returns the number of decks processed so far.
func (h *History) Len() int {
	return len(h.decks)
}

// DeckSize returns the number of cards per deck.
func (h *History) DeckSize() int {
	return h.deckSize
}

// Score returns the maximum number of positions the deck shares with any deck in the
// history, or 0 if the history is empty. It doesn't modify the history.
func (h *History) Score(deck shuffle.Deck) (int, error) {
	if len(deck) != h.deckSize {
		return 0, fmt.Errorf("%w: deck has %d cards, history holds decks of %d", shuffle.ErrInvalidInput, len(deck), h.deckSize)
	}
	if len(h.decks) == 0 {
		return 0, nil
	}

	bound := h.deckSize
	if h.index != nil {
		bound = h.index.upperBound(deck)
	}
	best := 0
	for _, previous := range h.decks {
		if best >= bound {
			break
		}
		if matches := shuffle.CountMatches(deck, previous); matches > best {
			best = matches
		}
	}
	return best, nil
}

// Process scores the deck against the history and then appends it, so a deck is
// never compared against itself.
func (h *History) Process(deck shuffle.Deck) (int, error) {
	score, err := h.Score(deck)
	if err != nil {
		return 0, err
	}
	h.append(deck)
	return score, nil
}

func (h *History) append(deck shuffle.Deck) {
	deck = deck.Clone()
	h.decks = append(h.decks, deck)
	if h.index != nil {
		h.index.add(deck)
	}
}
