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

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/grid-battle/internal/app"
	"github.com/Garsondee/grid-battle/internal/config"
	"github.com/Garsondee/grid-battle/internal/logs"
	"github.com/Garsondee/grid-battle/internal/render"
	"github.com/Garsondee/grid-battle/internal/stream"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("battle-server", flag.ContinueOnError)
	cfg, err := app.Load("battle-server", fs, config.RegisterFlags(fs), args)
	if err != nil {
		return err
	}
	defer logs.Sync()

	sim, _, err := app.NewSimulation(ctx, cfg)
	if err != nil {
		return err
	}
	frames, err := render.NewFrameWriter(cfg.Frames)
	if err != nil {
		return err
	}

	hub := stream.NewHub()
	runner := stream.NewRunner(sim, hub, cfg.Server.TPS, frames)
	srv := stream.NewServer(cfg.Server.Addr, stream.NewRouter(runner, hub))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runner.Run(ctx)
	})
	g.Go(func() error {
		logs.Info("viewer listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
