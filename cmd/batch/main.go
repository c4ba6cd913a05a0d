// Batch shuffles decks as fast as possible, and writes one row per milestone label
// (-start, -start + -step, ... up to -max) to a file in -out, by default CreatedCSVs or
// CreatedDBs depending on -sink. Each row holds the similarity score of one newly shuffled
// deck, so a run shuffles one deck per milestone (plus a seed deck), not -max decks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/janpfeifer/GoShuffle/internal/batch"
	"github.com/janpfeifer/GoShuffle/internal/config"
	"github.com/janpfeifer/GoShuffle/internal/sim"
	"github.com/janpfeifer/GoShuffle/internal/sink"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	cfg := config.RegisterFlags(flag.CommandLine)
	flag.Parse()
	defer klog.Flush()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := run(ctx, *cfg); err != nil {
		klog.Errorf("%v", err)
		klog.Flush()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	engine, source, err := sim.Build(cfg)
	if err != nil {
		return err
	}

	out, err := sink.Open(cfg.Sink, cfg.Dir(), time.Now())
	if err != nil {
		return err
	}
	klog.Infof("Writing milestones to %s", out.Path())

	start := time.Now()
	rows, runErr := batch.Run(ctx, batch.Options{Start: cfg.Start, Step: cfg.Step, MaxDecks: cfg.MaxDecks}, engine, source, out)
	if err := out.Close(); err != nil && runErr == nil {
		runErr = err
	}
	snap := engine.Snapshot()
	klog.Infof("Shuffled %d decks in %s: %d rows written, highest score %d, average %.3f",
		snap.Total, time.Since(start), rows, snap.MaxScore, snap.MeanScore)
	if runErr != nil {
		return fmt.Errorf("batch run: %w", runErr)
	}
	fmt.Println(out.Path())
	return nil
}
