// Package sim drives the statistics engine at a fixed pace, and lets it be paused and
// resumed without losing any state.
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/janpfeifer/GoShuffle/internal/shuffle"
	"github.com/janpfeifer/GoShuffle/internal/stats"
	"k8s.io/klog/v2"
)

// State is what the Runner publishes after each step, or when paused/resumed.
type State struct {
	Snapshot stats.Snapshot `json:"snapshot"`
	Paused   bool           `json:"paused"`
	// Seq increases with every change, so receivers can discard out-of-order states.
	Seq uint64 `json:"seq"`
}

// Runner repeatedly takes a deck from its source and feeds it to the engine.
//
// Only one goroutine should call Run (or Step). Pause, Resume, Toggle, State and
// Subscribe are safe to call from any goroutine.
type Runner struct {
	interval time.Duration

	mu        sync.Mutex
	engine    *stats.Engine
	source    shuffle.Source
	paused    bool
	state     State
	listeners map[int]func(State)
	nextID    int

	// notifyMu serializes notifications, so listeners see states in order.
	notifyMu sync.Mutex

	// wake is signaled on Resume, to unblock a paused Run.
	wake chan struct{}
}

// NewRunner creates a Runner that steps every interval.
func NewRunner(engine *stats.Engine, source shuffle.Source, interval time.Duration) (*Runner, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", interval)
	}
	return &Runner{
		interval:  interval,
		engine:    engine,
		source:    source,
		state:     State{Snapshot: engine.Snapshot()},
		listeners: make(map[int]func(State)),
		wake:      make(chan struct{}, 1),
	}, nil
}

// Step processes one deck and notifies subscribers. It returns the deck's score.
// It steps even if the Runner is paused.
func (r *Runner) Step() (int, error) {
	score, _, err := r.step(false)
	return score, err
}

// step processes one deck, unless skipIfPaused is set and the Runner is paused.
// The pause check and the step are atomic, so no step happens after Pause returns.
func (r *Runner) step(skipIfPaused bool) (score int, stepped bool, err error) {
	r.mu.Lock()
	if skipIfPaused && r.paused {
		r.mu.Unlock()
		return 0, false, nil
	}
	deck, err := r.source.Next()
	if err != nil {
		r.mu.Unlock()
		return 0, false, fmt.Errorf("generating deck %d: %w", r.engine.Total()+1, err)
	}
	score, err = r.engine.Step(deck)
	if err != nil {
		r.mu.Unlock()
		return 0, false, fmt.Errorf("processing deck %d: %w", r.engine.Total()+1, err)
	}
	r.state.Snapshot = r.engine.Snapshot()
	r.state.Seq++
	klog.V(2).Infof("Runner: deck %d scored %d", r.state.Snapshot.Total, score)
	r.mu.Unlock()
	r.notify()
	return score, true, nil
}

// Run steps until ctx is cancelled, waiting for the interval between steps, and
// blocking while paused. It returns ctx.Err() when cancelled, or the first step error.
func (r *Runner) Run(ctx context.Context) error {
	klog.Infof("Runner: started, interval=%s", r.interval)
	defer klog.Infof("Runner: stopped")
	for {
		_, stepped, err := r.step(true)
		if err != nil {
			klog.Errorf("Runner: %v", err)
			return err
		}
		if !stepped {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-r.wake:
				continue
			}
		}
		timer := time.NewTimer(r.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Pause stops stepping after the current step, if any.
func (r *Runner) Pause() {
	r.setPaused(func(bool) bool { return true })
}

// Resume continues stepping from where it stopped.
func (r *Runner) Resume() {
	r.setPaused(func(bool) bool { return false })
}

// Toggle pauses a running Runner or resumes a paused one. It returns whether it is now paused.
func (r *Runner) Toggle() bool {
	return r.setPaused(func(paused bool) bool { return !paused })
}

func (r *Runner) setPaused(next func(paused bool) bool) bool {
	r.mu.Lock()
	paused := next(r.paused)
	changed := paused != r.paused
	r.paused = paused
	if changed {
		r.state.Paused = paused
		r.state.Seq++
	}
	r.mu.Unlock()
	if !changed {
		return paused
	}
	klog.Infof("Runner: paused=%v", paused)
	if !paused {
		select {
		case r.wake <- struct{}{}:
		default:
		}
	}
	r.notify()
	return paused
}

// Paused returns whether the Runner is paused.
func (r *Runner) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// State returns the latest published state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Subscribe registers fn to be called with the new state after every step and every
// pause/resume. fn is called from the goroutine that caused the change, and must neither
// block nor call back into the Runner.
// The returned function unsubscribes it.
func (r *Runner) Subscribe(fn func(State)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

func (r *Runner) notify() {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()
	r.mu.Lock()
	state := r.state
	listeners := make([]func(State), 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	r.mu.Unlock()
	for _, l := range listeners {
		l(state)
	}
}
