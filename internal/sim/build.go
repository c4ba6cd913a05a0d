package sim

import (
	"github.com/janpfeifer/GoShuffle/internal/config"
	"github.com/janpfeifer/GoShuffle/internal/shuffle"
	"github.com/janpfeifer/GoShuffle/internal/stats"
)

// Build validates cfg and creates the engine and the random deck source it describes.
func Build(cfg config.Config) (*stats.Engine, *shuffle.RandomSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	var opts []stats.Option
	if cfg.Indexed {
		opts = append(opts, stats.WithPositionIndex())
	}
	engine, err := stats.NewEngine(cfg.DeckSize, cfg.WindowSize, opts...)
	if err != nil {
		return nil, nil, err
	}
	source, err := shuffle.NewRandomSource(cfg.DeckSize, cfg.Seed)
	if err != nil {
		return nil, nil, err
	}
	return engine, source, nil
}

// NewRunnerFromConfig builds the engine and source described by cfg, and a Runner
// stepping at cfg.Interval.
func NewRunnerFromConfig(cfg config.Config) (*Runner, error) {
	engine, source, err := Build(cfg)
	if err != nil {
		return nil, err
	}
	return NewRunner(engine, source, cfg.Interval)
}
