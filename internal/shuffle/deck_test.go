package shuffle

import (
	"errors"
	"fmt"
	"testing"
)

func TestCompareSymmetricAndIdentity(t *testing.T) {
	sizes := []int{1, 4, 13, DeckSize}

	for _, size := range sizes {
		t.Run(fmt.Sprintf("%d", size), func(t *testing.T) {
			source, err := NewRandomSource(size, uint64(size))
			if err != nil {
				t.Fatalf("NewRandomSource(%d): %v", size, err)
			}
			decks := make([]Deck, 20)
			for i := range decks {
				decks[i], _ = source.Next()
			}

			for i := range decks {
				self, err := Compare(decks[i], decks[i])
				if err != nil {
					t.Fatalf("Compare(deck %d, itself): %v", i, err)
				}
				if self != size {
					t.Errorf("Expected deck %d to match itself in %d positions, got %d", i, size, self)
				}
				for j := i + 1; j < len(decks); j++ {
					ab, _ := Compare(decks[i], decks[j])
					ba, _ := Compare(decks[j], decks[i])
					if ab != ba {
						t.Errorf("Compare is not symmetric for decks %d %v and %d %v: %d != %d",
							i, decks[i], j, decks[j], ab, ba)
					}
				}
			}
		})
	}
}

func TestCompareCountsMatchingPositions(t *testing.T) {
	tests := []struct {
		a, b Deck
		want int
	}{
		{Deck{0, 1, 2, 3}, Deck{0, 1, 3, 2}, 2},
		{Deck{0, 1, 2, 3}, Deck{3, 2, 1, 0}, 0},
		{Deck{0, 1, 3, 2}, Deck{3, 2, 1, 0}, 0},
		{Deck{2, 0, 1, 3}, Deck{2, 1, 0, 3}, 2},
		{Deck{}, Deck{}, 0},
	}
	for _, tc := range tests {
		got, err := Compare(tc.a, tc.b)
		if err != nil {
			t.Fatalf("Compare(%v, %v): %v", tc.a, tc.b, err)
		}
		if got != tc.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCompareLengthMismatch(t *testing.T) {
	_, err := Compare(Deck{0, 1, 2}, Deck{0, 1, 2, 3})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestCountMatchesUnequalLengths(t *testing.T) {
	long, short := Deck{0, 1, 2, 3}, Deck{0, 2, 1}
	if got := CountMatches(long, short); got != 1 {
		t.Errorf("CountMatches(%v, %v) = %d, want 1", long, short, got)
	}
	if got := CountMatches(short, long); got != 1 {
		t.Errorf("CountMatches(%v, %v) = %d, want 1", short, long, got)
	}
	if got := CountMatches(long, nil); got != 0 {
		t.Errorf("CountMatches(%v, nil) = %d, want 0", long, got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		deck  Deck
		size  int
		valid bool
	}{
		{"identity", Deck{0, 1, 2, 3}, 4, true},
		{"reversed", Deck{3, 2, 1, 0}, 4, true},
		{"short", Deck{0, 1, 2}, 4, false},
		{"long", Deck{0, 1, 2, 3, 4}, 4, false},
		{"repeated", Deck{0, 1, 1, 3}, 4, false},
		{"out of range", Deck{0, 1, 2, 4}, 4, false},
		{"negative", Deck{0, -1, 2, 3}, 4, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.deck, tc.size)
			if tc.valid && err != nil {
				t.Errorf("Validate(%v, %d) failed: %v", tc.deck, tc.size, err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate(%v, %d) = %v, expected ErrInvalidInput", tc.deck, tc.size, err)
			}
		})
	}
}

func TestRandomSourceGeneratesPermutations(t *testing.T) {
	source, err := NewRandomSource(DeckSize, 0)
	if err != nil {
		t.Fatalf("NewRandomSource: %v", err)
	}
	// Every card should end up in every position at least once over enough shuffles.
	seenAt := make([][DeckSize]bool, DeckSize)
	for range 5000 {
		deck, err := source.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if err := Validate(deck, DeckSize); err != nil {
			t.Fatalf("Invalid deck %v: %v", deck, err)
		}
		for pos, card := range deck {
			seenAt[pos][card] = true
		}
	}
	for pos := range seenAt {
		for card, seen := range seenAt[pos] {
			if !seen {
				t.Errorf("Card %d never landed at position %d", card, pos)
			}
		}
	}
}

func TestRandomSourceSeedIsReproducible(t *testing.T) {
	s1, _ := NewRandomSource(DeckSize, 42)
	s2, _ := NewRandomSource(DeckSize, 42)
	for i := range 10 {
		d1, _ := s1.Next()
		d2, _ := s2.Next()
		if n, _ := Compare(d1, d2); n != DeckSize {
			t.Fatalf("Deck %d differs between sources with the same seed: %v vs %v", i, d1, d2)
		}
	}
	if _, err := NewRandomSource(0, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for size 0, got %v", err)
	}
}

func TestFixedSource(t *testing.T) {
	original := Deck{0, 1, 2, 3}
	source := NewFixedSource(original, Deck{3, 2, 1, 0})
	first, err := source.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	first[0] = 99
	if original[0] != 0 {
		t.Errorf("FixedSource handed out its own slice instead of a copy")
	}
	if source.Remaining() != 1 {
		t.Errorf("Expected 1 remaining deck, got %d", source.Remaining())
	}
	if _, err := source.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, err := source.Next(); !errors.Is(err, ErrExhausted) {
		t.Errorf("Expected ErrExhausted, got %v", err)
	}
}
