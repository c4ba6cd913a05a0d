package shuffle

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrExhausted is returned by a finite Source once all of its decks were handed out.
var ErrExhausted = errors.New("deck source exhausted")

// Source produces one new deck per call to Next.
type Source interface {
	// Next returns a new deck. The caller owns the returned slice.
	Next() (Deck, error)
}

// RandomSource generates uniformly random permutations with a Fisher-Yates shuffle.
// It is not safe for concurrent use.
type RandomSource struct {
	size int
	rng  *rand.Rand
}

// NewRandomSource creates a source of decks with size cards.
// If seed is 0 a random seed is used, otherwise the sequence of decks is reproducible.
func NewRandomSource(size int, seed uint64) (*RandomSource, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: deck size must be positive, got %d", ErrInvalidInput, size)
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandomSource{
		size: size,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Next implements Source.
func (s *RandomSource) Next() (Deck, error) {
	deck := make(Deck, s.size)
	for i := range deck {
		deck[i] = i
	}
	s.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck, nil
}

// FixedSource hands out a predetermined sequence of decks, and then returns ErrExhausted.
// It is used to drive the statistics deterministically.
type FixedSource struct {
	decks []Deck
	next  int
}

// NewFixedSource creates a source that returns copies of decks in order.
func NewFixedSource(decks ...Deck) *FixedSource {
	return &FixedSource{decks: decks}
}

// Next implements Source.
func (s *FixedSource) Next() (Deck, error) {
	if s.next >= len(s.decks) {
		return nil, ErrExhausted
	}
	deck := s.decks[s.next].Clone()
	s.next++
	return deck, nil
}

// Remaining returns how many decks are still to be handed out.
func (s *FixedSource) Remaining() int {
	return len(s.decks) - s.next
}
