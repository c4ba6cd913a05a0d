package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/janpfeifer/GoShuffle/internal/config"
	"github.com/janpfeifer/GoShuffle/internal/frontend"
	"github.com/janpfeifer/GoShuffle/internal/sim"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Run starts the server and the shuffling runner, and blocks until the context is canceled.
//
// If addr is empty, it listens on an automatically chosen port on localhost.
// Once listening, the server state is sent to started (if not nil).
func Run(ctx context.Context, addr string, cfg config.Config, started chan<- *ServerState) error {
	runner, err := sim.NewRunnerFromConfig(cfg)
	if err != nil {
		return err
	}

	// Initialize global frontend state for server-side prerendering without panic
	frontend.InitState()

	serverState := NewServerState(runner)

	// Register go-app routes so the server knows how to prerender them
	app.Route("/", func() app.Composer { return &frontend.Histogram{} })

	// The web assets and the compiled webassembly
	// are served natively by the go-app framework
	h := &app.Handler{
		Name:        "GoShuffle",
		Description: "How often do shuffled decks repeat card positions?",
		Styles: []string{
			"/web/css/main.css",
		},
	}

	mux := http.NewServeMux()

	// Register WebSocket endpoint
	mux.HandleFunc("/ws", serverState.HandleWS)

	// Serve the go-app UI
	mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir("web/"))))
	mux.Handle("/", h)

	if addr == "" {
		addr = "localhost:0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %q: %w", addr, err)
	}
	serverState.Address = listener.Addr().String()

	srv := &http.Server{
		Handler: mux,
		// WebSocket handlers outlive Shutdown, so they are stopped through this context.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		klog.Infof("Server started on %s", serverState.Address)
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			klog.Errorf("Server error: %v", err)
		}
	}()

	runnerErr := make(chan error, 1)
	go func() {
		runnerErr <- runner.Run(ctx)
	}()

	if started != nil {
		started <- serverState
	}

	var result error
	select {
	case <-ctx.Done():
	case err := <-runnerErr:
		if !errors.Is(err, context.Canceled) {
			result = fmt.Errorf("shuffling stopped: %w", err)
		}
	}

	// Graceful shutdown with 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	klog.Infof("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil && result == nil {
		result = err
	}
	return result
}
