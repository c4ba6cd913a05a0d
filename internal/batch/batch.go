// Package batch shuffles decks as fast as possible, writing the score of one new deck per
// milestone to a sink.
package batch

import (
	"context"
	"fmt"

	"github.com/janpfeifer/GoShuffle/internal/shuffle"
	"github.com/janpfeifer/GoShuffle/internal/sink"
	"github.com/janpfeifer/GoShuffle/internal/stats"
	"k8s.io/klog/v2"
)

// Options of a batch run.
type Options struct {
	// Start is the label of the first milestone.
	Start int
	// Step is the difference between consecutive milestone labels.
	Step int
	// MaxDecks is the largest milestone label.
	MaxDecks int
}

// Milestones returns the number of rows a run writes: one per label in
// Start, Start+Step, ... up to MaxDecks.
func (o Options) Milestones() int {
	if o.Start <= 0 || o.Step <= 0 || o.MaxDecks < o.Start {
		return 0
	}
	return (o.MaxDecks-o.Start)/o.Step + 1
}

// Run seeds the engine's history with one deck, and then processes exactly one new deck
// per milestone, writing the milestone label and that deck's score to out.
//
// Labels count milestones, not decks: a run processes Milestones()+1 decks in total,
// which keeps the quadratic history scan affordable for large MaxDecks.
// It stops early, returning ctx.Err(), if ctx is cancelled.
//
// It returns the number of rows written.
func Run(ctx context.Context, opts Options, engine *stats.Engine, source shuffle.Source, out sink.Sink) (int, error) {
	if opts.Milestones() == 0 {
		return 0, fmt.Errorf("invalid batch options %+v", opts)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if _, err := step(engine, source); err != nil {
		return 0, err
	}

	rows := 0
	for label := opts.Start; label <= opts.MaxDecks; label += opts.Step {
		if err := ctx.Err(); err != nil {
			return rows, err
		}
		score, err := step(engine, source)
		if err != nil {
			return rows, err
		}
		if err := out.WriteRow(sink.Row{DecksProcessed: label, MaxSimilarityScore: score}); err != nil {
			return rows, err
		}
		rows++
		klog.V(1).Infof("Processed %d decks: Max Matching Cards = %d", label, score)
	}
	return rows, nil
}

func step(engine *stats.Engine, source shuffle.Source) (int, error) {
	deck, err := source.Next()
	if err != nil {
		return 0, fmt.Errorf("generating deck %d: %w", engine.Total()+1, err)
	}
	score, err := engine.Step(deck)
	if err != nil {
		return 0, fmt.Errorf("processing deck %d: %w", engine.Total()+1, err)
	}
	return score, nil
}
