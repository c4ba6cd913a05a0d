package stats

import "fmt"

// Histogram counts how many decks achieved each similarity score.
// It only ever grows.
type Histogram struct {
	counts []int
	total  int
}

// NewHistogram creates a histogram for scores 0..maxScore.
func NewHistogram(maxScore int) *Histogram {
	return &Histogram{counts: make([]int, maxScore+1)}
}

// Record increments the counter for score.
func (h *Histogram) Record(score int) error {
	if score < 0 || score >= len(h.counts) {
		return fmt.Errorf("score %d out of histogram range [0, %d]", score, len(h.counts)-1)
	}
	h.counts[score]++
	h.total++
	return nil
}

// Counts returns a copy of the counters, indexed by score.
func (h *Histogram) Counts() []int {
	return append([]int(nil), h.counts...)
}

// Total returns the number of recorded scores, which is also the sum of Counts.
func (h *Histogram) Total() int {
	return h.total
}

// MaxScore returns the highest score with a non-zero count, or -1 if nothing was recorded.
func (h *Histogram) MaxScore() int {
	for score := len(h.counts) - 1; score >= 0; score-- {
		if h.counts[score] > 0 {
			return score
		}
	}
	return -1
}

// Mean returns the average recorded score, or 0 if nothing was recorded.
func (h *Histogram) Mean() float64 {
	if h.total == 0 {
		return 0
	}
	weighted := 0
	for score, count := range h.counts {
		weighted += score * count
	}
	return float64(weighted) / float64(h.total)
}
