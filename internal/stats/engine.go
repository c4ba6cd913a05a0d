package stats

import (
	"fmt"

	"github.com/janpfeifer/GoShuffle/internal/shuffle"
)

// Engine owns the history of decks, the cumulative histogram and the rolling window.
// It is not safe for concurrent use: callers serialize calls to Step, and share
// Snapshot values with readers.
type Engine struct {
	history   *History
	histogram *Histogram
	window    *Window
	lastScore int
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	indexed bool
}

// WithPositionIndex makes the history keep per-position card counts, used to stop
// scanning the history as soon as the best possible score was found.
// The reported scores are the same with or without it.
func WithPositionIndex() Option {
	return func(o *engineOptions) { o.indexed = true }
}

// NewEngine creates an engine for decks of deckSize cards, with a rolling window of
// windowSize decks.
func NewEngine(deckSize, windowSize int, opts ...Option) (*Engine, error) {
	if deckSize <= 0 {
		return nil, fmt.Errorf("deck size must be positive, got %d", deckSize)
	}
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}
	window, err := NewWindow(windowSize, deckSize)
	if err != nil {
		return nil, err
	}
	return &Engine{
		history:   NewHistory(deckSize, o.indexed),
		histogram: NewHistogram(deckSize),
		window:    window,
		lastScore: -1,
	}, nil
}

// Step scores the deck against all previous decks, and records the score in the
// histogram and the rolling window.
//
// The deck is validated first: if it fails, nothing is recorded.
func (e *Engine) Step(deck shuffle.Deck) (int, error) {
	if err := shuffle.Validate(deck, e.history.DeckSize()); err != nil {
		return 0, err
	}
	score, err := e.history.Process(deck)
	if err != nil {
		return 0, err
	}
	// score is within [0, deckSize] by construction, so neither Record can fail.
	if err := e.histogram.Record(score); err != nil {
		panic(err)
	}
	if err := e.window.Record(score); err != nil {
		panic(err)
	}
	e.lastScore = score
	return score, nil
}

// Total returns the number of decks processed.
func (e *Engine) Total() int {
	return e.histogram.Total()
}

// Histogram returns the cumulative histogram. It must not be modified.
func (e *Engine) Histogram() *Histogram {
	return e.histogram
}

// Window returns the rolling window. It must not be modified.
func (e *Engine) Window() *Window {
	return e.window
}

// Snapshot is an immutable copy of the statistics after a step.
type Snapshot struct {
	Total             int       `json:"total"`              // Decks processed.
	Counts            []int     `json:"counts"`             // Cumulative histogram, indexed by score.
	RecentFrequencies []float64 `json:"recent_frequencies"` // Fraction of the window per score.
	WindowSize        int       `json:"window_size"`        // Configured window capacity.
	LastScore         int       `json:"last_score"`         // Score of the latest deck, -1 before the first.
	MaxScore          int       `json:"max_score"`          // Highest score with a non-zero count, -1 if none.
	MeanScore         float64   `json:"mean_score"`         // Average score over all decks.
}

// Snapshot returns a copy of the current statistics.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Total:             e.histogram.Total(),
		Counts:            e.histogram.Counts(),
		RecentFrequencies: e.window.RecentFrequencies(),
		WindowSize:        e.window.Capacity(),
		LastScore:         e.lastScore,
		MaxScore:          e.histogram.MaxScore(),
		MeanScore:         e.histogram.Mean(),
	}
}
