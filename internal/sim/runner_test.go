package sim

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/janpfeifer/GoShuffle/internal/config"
	"github.com/janpfeifer/GoShuffle/internal/shuffle"
	"github.com/janpfeifer/GoShuffle/internal/stats"
)

func newTestRunner(t *testing.T, interval time.Duration) *Runner {
	t.Helper()
	engine, err := stats.NewEngine(shuffle.DeckSize, 50, stats.WithPositionIndex())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	source, err := shuffle.NewRandomSource(shuffle.DeckSize, 11)
	if err != nil {
		t.Fatalf("NewRandomSource: %v", err)
	}
	r, err := NewRunner(engine, source, interval)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return r
}

func TestRunnerStepOrder(t *testing.T) {
	engine, _ := stats.NewEngine(4, 2)
	source := shuffle.NewFixedSource(
		shuffle.Deck{0, 1, 2, 3},
		shuffle.Deck{0, 1, 3, 2},
		shuffle.Deck{3, 2, 1, 0},
	)
	r, err := NewRunner(engine, source, time.Millisecond)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if got := r.State().Snapshot.Total; got != 0 {
		t.Fatalf("Expected an empty initial snapshot, got total %d", got)
	}

	var published []int
	unsubscribe := r.Subscribe(func(s State) {
		published = append(published, s.Snapshot.LastScore)
	})
	for _, want := range []int{0, 2, 0} {
		score, err := r.Step()
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if score != want {
			t.Errorf("Expected score %d, got %d", want, score)
		}
	}
	if _, err := r.Step(); !errors.Is(err, shuffle.ErrExhausted) {
		t.Errorf("Expected ErrExhausted, got %v", err)
	}
	unsubscribe()

	if len(published) != 3 || published[0] != 0 || published[1] != 2 || published[2] != 0 {
		t.Errorf("Unexpected published scores: %v", published)
	}
	snap := r.State().Snapshot
	if snap.Total != 3 || snap.Counts[0] != 2 || snap.Counts[2] != 1 {
		t.Errorf("Unexpected snapshot: %+v", snap)
	}
	if snap.RecentFrequencies[0] != 0.5 || snap.RecentFrequencies[2] != 0.5 {
		t.Errorf("Unexpected recent frequencies: %v", snap.RecentFrequencies)
	}
}

func TestRunnerPacingAndPause(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		r := newTestRunner(t, 100*time.Millisecond)

		errCh := make(chan error, 1)
		go func() { errCh <- r.Run(ctx) }()

		// Steps at 0ms, 100ms, ..., 900ms.
		time.Sleep(950 * time.Millisecond)
		synctest.Wait()
		if got := r.State().Snapshot.Total; got != 10 {
			t.Fatalf("Expected 10 decks after 950ms, got %d", got)
		}

		if !r.Toggle() {
			t.Fatalf("Expected Toggle to pause")
		}
		time.Sleep(5 * time.Second)
		synctest.Wait()
		state := r.State()
		if !state.Paused || state.Snapshot.Total != 10 {
			t.Fatalf("Expected to stay paused at 10 decks, got paused=%v total=%d", state.Paused, state.Snapshot.Total)
		}

		// Resuming steps right away, keeping the history.
		if r.Toggle() {
			t.Fatalf("Expected Toggle to resume")
		}
		synctest.Wait()
		if got := r.State().Snapshot.Total; got != 11 {
			t.Fatalf("Expected 11 decks right after resuming, got %d", got)
		}

		cancel()
		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})
}

func TestRunnerNotifiesPauseChanges(t *testing.T) {
	r := newTestRunner(t, time.Second)
	var states []bool
	r.Subscribe(func(s State) { states = append(states, s.Paused) })
	r.Pause()
	r.Pause() // No change, no notification.
	r.Resume()
	if len(states) != 2 || !states[0] || states[1] {
		t.Errorf("Unexpected notifications: %v", states)
	}
	if r.Paused() {
		t.Errorf("Expected runner to be running")
	}
}

func TestRunnerStopsOnSourceError(t *testing.T) {
	engine, _ := stats.NewEngine(4, 2)
	r, _ := NewRunner(engine, shuffle.NewFixedSource(shuffle.Deck{0, 1, 2, 3}), time.Millisecond)
	err := r.Run(context.Background())
	if !errors.Is(err, shuffle.ErrExhausted) {
		t.Errorf("Expected ErrExhausted, got %v", err)
	}
	if r.State().Snapshot.Total != 1 {
		t.Errorf("Expected 1 deck processed, got %d", r.State().Snapshot.Total)
	}
}

func TestNewRunnerRejectsInterval(t *testing.T) {
	engine, _ := stats.NewEngine(4, 2)
	if _, err := NewRunner(engine, shuffle.NewFixedSource(), 0); err == nil {
		t.Errorf("Expected error for zero interval")
	}
}

func TestNewRunnerFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DeckSize = 8
	cfg.WindowSize = 3
	cfg.Seed = 5
	r, err := NewRunnerFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewRunnerFromConfig: %v", err)
	}
	for range 5 {
		if _, err := r.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	snap := r.State().Snapshot
	if len(snap.Counts) != 9 || snap.WindowSize != 3 || snap.Total != 5 {
		t.Errorf("Unexpected snapshot for an 8-card deck: %+v", snap)
	}

	cfg.WindowSize = 0
	if _, err := NewRunnerFromConfig(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
