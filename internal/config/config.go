// Package config holds the options shared by the interactive server and the batch runner.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/janpfeifer/GoShuffle/internal/shuffle"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Sink kinds for batch output.
const (
	SinkCSV    = "csv"
	SinkSQLite = "sqlite"
)

// Default output directories, per sink kind.
const (
	DefaultCSVDir    = "CreatedCSVs"
	DefaultSQLiteDir = "CreatedDBs"
)

// Config for a shuffling run.
type Config struct {
	// WindowSize is the number of recent shuffles used for the recent frequency of each score.
	WindowSize int
	// Interval between shuffles in the interactive mode.
	Interval time.Duration
	// DeckSize is the number of cards per deck.
	DeckSize int
	// Indexed enables the position index, which shortcuts the history scan.
	Indexed bool
	// Seed for the random decks, 0 picks a random one.
	Seed uint64

	// Batch mode: one row, holding the score of one new deck, is written per
	// milestone label Start, Start+Step, Start+2*Step, ... up to MaxDecks.
	Start    int
	Step     int
	MaxDecks int

	// OutputDir is where batch output files are created. Empty means the default
	// directory for Sink, see Dir.
	OutputDir string
	// Sink is one of SinkCSV or SinkSQLite.
	Sink string

	// Addr to listen on in interactive mode. Empty means auto-port on localhost.
	Addr string
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		WindowSize: 50,
		Interval:   100 * time.Millisecond,
		DeckSize:   shuffle.DeckSize,
		Indexed:    true,
		Start:      2,
		Step:       10,
		MaxDecks:   1_000_000,
		Sink:       SinkCSV,
	}
}

// RegisterFlags registers the configuration flags on fs, and returns the config they
// are parsed into, pre-filled with Default values.
func RegisterFlags(fs *flag.FlagSet) *Config {
	cfg := Default()
	fs.IntVar(&cfg.WindowSize, "n", cfg.WindowSize, "Number of recent shuffles to consider for the frequency of each score")
	fs.Func("interval", "Interval between shuffles in milliseconds (default 100)", func(s string) error {
		ms, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("interval must be an integer number of milliseconds: %w", err)
		}
		cfg.Interval = time.Duration(ms) * time.Millisecond
		return nil
	})
	fs.IntVar(&cfg.DeckSize, "deck", cfg.DeckSize, "Number of cards per deck")
	fs.BoolVar(&cfg.Indexed, "index", cfg.Indexed, "Keep per-position card counts to shortcut the history scan")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed, 0 for a random one")
	fs.IntVar(&cfg.Start, "start", cfg.Start, "Batch mode: label of the first row")
	fs.IntVar(&cfg.Step, "step", cfg.Step, "Batch mode: label increment between rows, one new deck is shuffled per row")
	fs.IntVar(&cfg.MaxDecks, "max", cfg.MaxDecks, "Batch mode: largest row label")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir,
		"Batch mode: output directory, created if missing (default "+DefaultCSVDir+" for csv, "+DefaultSQLiteDir+" for sqlite)")
	fs.StringVar(&cfg.Sink, "sink", cfg.Sink, "Batch mode: output format, csv or sqlite")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Address to listen on (default: auto-port on localhost)")
	return &cfg
}

// Dir returns the batch output directory: OutputDir if set, otherwise the default
// directory for Sink.
func (c Config) Dir() string {
	switch {
	case c.OutputDir != "":
		return c.OutputDir
	case c.Sink == SinkSQLite:
		return DefaultSQLiteDir
	default:
		return DefaultCSVDir
	}
}

// Validate returns an error wrapping ErrInvalidConfig for the first invalid option found.
func (c Config) Validate() error {
	switch {
	case c.WindowSize <= 0:
		return fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidConfig, c.WindowSize)
	case c.Interval <= 0:
		return fmt.Errorf("%w: interval must be positive, got %s", ErrInvalidConfig, c.Interval)
	case c.DeckSize <= 0:
		return fmt.Errorf("%w: deck size must be positive, got %d", ErrInvalidConfig, c.DeckSize)
	case c.Start <= 0:
		return fmt.Errorf("%w: start must be positive, got %d", ErrInvalidConfig, c.Start)
	case c.Step <= 0:
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidConfig, c.Step)
	case c.MaxDecks <= 0:
		return fmt.Errorf("%w: max decks must be positive, got %d", ErrInvalidConfig, c.MaxDecks)
	case c.Start > c.MaxDecks:
		return fmt.Errorf("%w: start (%d) is larger than max decks (%d)", ErrInvalidConfig, c.Start, c.MaxDecks)
	case c.Sink != SinkCSV && c.Sink != SinkSQLite:
		return fmt.Errorf("%w: unknown sink %q, expected %q or %q", ErrInvalidConfig, c.Sink, SinkCSV, SinkSQLite)
	}
	return nil
}
