// Package app holds the start-up steps shared by the battle commands.
package app

import (
	"context"
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/Garsondee/grid-battle/internal/config"
	"github.com/Garsondee/grid-battle/internal/fighters"
	"github.com/Garsondee/grid-battle/internal/logs"
	"github.com/Garsondee/grid-battle/internal/roster"
)

// Load parses args into a validated config and starts logging for name.
// Commands register their own flags on fs before calling Load.
func Load(name string, fs *flag.FlagSet, flags *config.Flags, args []string) (config.Config, error) {
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	cfg, err := flags.Load()
	if err != nil {
		return config.Config{}, err
	}
	if err := logs.Init(name, cfg.Log); err != nil {
		return config.Config{}, fmt.Errorf("init logs: %w", err)
	}
	return cfg, nil
}

// NewSimulation builds the battle cfg describes, fetching the roster first for
// real-pokemon. The seed used is logged and returned.
func NewSimulation(ctx context.Context, cfg config.Config) (fighters.Simulation, int64, error) {
	kind, err := cfg.Kind()
	if err != nil {
		return nil, 0, err
	}
	var pokedex []fighters.RealPokemon
	if kind == fighters.KindRealPokemon {
		if pokedex, err = roster.Load(ctx, cfg.Roster.Source); err != nil {
			return nil, 0, err
		}
	}
	rng, seed := cfg.NewRand()
	sim, err := fighters.NewSimulation(kind, cfg.BattleOptions(), rng, pokedex)
	if err != nil {
		return nil, 0, err
	}
	logs.Info("simulation ready",
		zap.Stringer("kind", kind),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Stringer("selection", cfg.Selection()),
		zap.Bool("fight_own", cfg.FightOwn),
		zap.Int64("seed", seed))
	return sim, seed, nil
}
