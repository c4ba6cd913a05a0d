package stats

import "fmt"

// Phase of a Window.
type Phase int

const (
	// Filling means fewer than capacity events were ever recorded.
	Filling Phase = iota
	// Steady means the window is full and every new event evicts the oldest one.
	Steady
)

func (p Phase) String() string {
	switch p {
	case Filling:
		return "filling"
	case Steady:
		return "steady"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Window keeps the scores of the most recent decks in a circular buffer, along with a
// per-score count of the events it currently holds.
type Window struct {
	events  []int // Circular buffer of scores.
	next    int   // Position of the next insertion, which is also the oldest event once full.
	size    int   // Number of events held: min(seen, capacity).
	seen    int   // Total events ever recorded.
	buckets []int // buckets[score] = number of held events equal to score.
}

// NewWindow creates a window holding up to capacity events with scores 0..maxScore.
func NewWindow(capacity, maxScore int) (*Window, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("window capacity must be positive, got %d", capacity)
	}
	return &Window{
		events:  make([]int, capacity),
		buckets: make([]int, maxScore+1),
	}, nil
}

// Record pushes a new event, evicting the oldest one if the window is already full.
func (w *Window) Record(score int) error {
	if score < 0 || score >= len(w.buckets) {
		return fmt.Errorf("score %d out of window range [0, %d]", score, len(w.buckets)-1)
	}
	if w.size == len(w.events) {
		w.buckets[w.events[w.next]]--
	} else {
		w.size++
	}
	w.events[w.next] = score
	w.buckets[score]++
	w.next = (w.next + 1) % len(w.events)
	w.seen++
	return nil
}

// Capacity returns the maximum number of events held.
func (w *Window) Capacity() int {
	return len(w.events)
}

// Len returns the number of events held.
func (w *Window) Len() int {
	return w.size
}

// Seen returns the number of events ever recorded.
func (w *Window) Seen() int {
	return w.seen
}

// Phase returns Steady once capacity events have been recorded.
func (w *Window) Phase() Phase {
	if w.seen >= len(w.events) {
		return Steady
	}
	return Filling
}

// Events returns the held scores, oldest first.
func (w *Window) Events() []int {
	out := make([]int, 0, w.size)
	start := w.next - w.size
	if start < 0 {
		start += len(w.events)
	}
	for i := range w.size {
		out = append(out, w.events[(start+i)%len(w.events)])
	}
	return out
}

// RecentFrequencies returns, for each score, the fraction of held events equal to it.
// The denominator is the number of events held, so early values are not diluted by
// empty slots. All values are 0 if nothing was recorded yet.
func (w *Window) RecentFrequencies() []float64 {
	freqs := make([]float64, len(w.buckets))
	if w.size == 0 {
		return freqs
	}
	for score, count := range w.buckets {
		freqs[score] = float64(count) / float64(w.size)
	}
	return freqs
}
