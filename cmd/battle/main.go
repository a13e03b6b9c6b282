package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/grid-battle/internal/app"
	"github.com/Garsondee/grid-battle/internal/config"
	"github.com/Garsondee/grid-battle/internal/game"
	"github.com/Garsondee/grid-battle/internal/logs"
	"github.com/Garsondee/grid-battle/internal/render"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("battle", flag.ContinueOnError)
	cfg, err := app.Load("battle", fs, config.RegisterFlags(fs), args)
	if err != nil {
		return err
	}
	defer logs.Sync()

	sim, _, err := app.NewSimulation(context.Background(), cfg)
	if err != nil {
		return err
	}
	frames, err := render.NewFrameWriter(cfg.Frames)
	if err != nil {
		return err
	}

	g := game.New(sim, game.Options{
		Scale:         cfg.Scale,
		TicksPerFrame: cfg.TicksPerFrame,
		Framerate:     cfg.Framerate,
		Frames:        frames,
	})
	ebiten.SetWindowTitle(fmt.Sprintf("Grid Battle - %s", sim.Kind()))
	ebiten.SetWindowSize(g.WindowSize())
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(g); err != nil {
		logs.Error("game exited", zap.Error(err))
		return err
	}
	return nil
}
