package stats

import "github.com/janpfeifer/GoShuffle/internal/shuffle"

// positionIndex counts, for each position and card, how many historical decks hold that
// card at that position.
//
// A historical deck can only match a new deck at a position if some historical deck holds
// the new deck's card there, so the number of such positions bounds the score from above.
type positionIndex struct {
	deckSize int
	counts   []int // counts[pos*deckSize+card]
}

func newPositionIndex(deckSize int) *positionIndex {
	return &positionIndex{
		deckSize: deckSize,
		counts:   make([]int, deckSize*deckSize),
	}
}

func (ix *positionIndex) add(deck shuffle.Deck) {
	for pos, card := range deck {
		ix.counts[pos*ix.deckSize+card]++
	}
}

func (ix *positionIndex) upperBound(deck shuffle.Deck) int {
	bound := 0
	for pos, card := range deck {
		if card < 0 || card >= ix.deckSize {
			continue
		}
		if ix.counts[pos*ix.deckSize+card] > 0 {
			bound++
		}
	}
	return bound
}
