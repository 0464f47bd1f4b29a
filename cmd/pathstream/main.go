// Command pathstream serves simulated GBM price paths over WebSocket for
// plotting clients. Each connection streams one path; a "seed" query
// parameter selects it reproducibly.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quantlab/optionsynth/internal/model"
	"github.com/quantlab/optionsynth/internal/stream"
	"github.com/quantlab/optionsynth/internal/version"
)

func main() {
	addr := flag.String("addr", ":8081", "listen address")
	seed := flag.Uint64("seed", 55, "default path seed")
	initial := flag.Float64("initial", 10, "initial price S0")
	drift := flag.Float64("drift", 0.01, "drift mu")
	vol := flag.Float64("vol", 0.5, "volatility sigma")
	horizon := flag.Float64("horizon", 1, "time horizon T in years")
	steps := flag.Int("steps", 1000, "step count N")
	interval := flag.Duration("interval", 10*time.Millisecond, "delay between streamed points")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting pathstream",
		"version", version.Version,
		"addr", *addr,
		"seed", *seed,
	)

	params := model.SimulationParams{
		Drift:        *drift,
		Volatility:   *vol,
		InitialPrice: *initial,
		Horizon:      *horizon,
		Steps:        *steps,
	}
	if err := params.Validate(); err != nil {
		logger.Error("invalid simulation parameters", "error", err)
		os.Exit(1)
	}

	srv := stream.NewServer(stream.ServerConfig{
		Params:   params,
		Seed:     *seed,
		Interval: *interval,
	}, logger)

	mux := http.NewServeMux()
	mux.Handle("/path", srv)

	httpServer := &http.Server{Addr: *addr, Handler: mux}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown timed out", "error", err)
		}
	}()

	logger.Info("listening", "addr", *addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("pathstream stopped")
}
