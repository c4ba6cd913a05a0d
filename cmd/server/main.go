// Server for the interactive mode: it shuffles decks at a steady pace and serves the live
// histogram at its address.
//
// The browser client is the WebAssembly build of cmd/wasm, expected in web/app.wasm:
//
//	GOARCH=wasm GOOS=js go build -o web/app.wasm ./cmd/wasm
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/janpfeifer/GoShuffle/internal/config"
	"github.com/janpfeifer/GoShuffle/internal/server"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	cfg := config.RegisterFlags(flag.CommandLine)
	flag.Parse()
	defer klog.Flush()

	if err := cfg.Validate(); err != nil {
		klog.Exitf("%v", err)
	}

	started := make(chan *server.ServerState, 1)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	go func() {
		state := <-started
		fmt.Printf("GoShuffle server listening on http://%s\n", state.Address)
	}()

	if err := server.Run(ctx, cfg.Addr, *cfg, started); err != nil {
		klog.Errorf("%v", err)
		klog.Flush()
		os.Exit(1)
	}
}
