// Package main is the entry point for the chatstubd daemon, a local
// stand-in for the platform's chat API used to develop the TUI against.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/logging"
	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/stubserver"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var _ = []string{commit, date}

func main() {
	addr := flag.String("addr", ":8095", "address to listen on")
	logLevel := flag.String("log-level", "info", "logging level (debug, info, warn, error)")
	seed := flag.Bool("seed", true, "preload demo users and messages")
	flag.Parse()

	logging.Init(logging.Config{Level: *logLevel, Format: "console"})
	logger := logging.Component("chatstubd")

	store := stubserver.NewMessageStore()
	if *seed {
		stubserver.SeedDemo(store)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           stubserver.New(store).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", *addr).Str("version", version).Msg("chatstubd listening")
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("shutdown incomplete")
		}
	}
}
