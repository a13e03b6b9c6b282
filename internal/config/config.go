// Package config resolves run settings from defaults, an optional config file,
// BATTLE_* environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Garsondee/grid-battle/internal/battle"
	"github.com/Garsondee/grid-battle/internal/fighters"
)

var (
	ErrSizeOutOfRange       = errors.New("size out of range")
	ErrUnknownFighterKind   = errors.New("unknown fighter kind")
	ErrUnknownFrameFormat   = errors.New("unknown frame format")
	ErrNonPositiveSetting   = errors.New("setting must be positive")
	ErrConfigFileUnreadable = errors.New("config file unreadable")
)

const (
	MinSize     = 32
	MaxSize     = 8192
	DefaultSize = 512

	DefaultRosterSource = "https://raw.githubusercontent.com/Purukitto/pokemon-data.json/master/pokedex.json"
)

// Frame formats understood by the frame writer.
const (
	FramePNG     = "png"
	FrameBMP     = "bmp"
	FrameLetters = "letters"
)

type FrameConfig struct {
	Dir    string `mapstructure:"dir" env:"BATTLE_FRAMES_DIR"`
	Format string `mapstructure:"format" env:"BATTLE_FRAMES_FORMAT"`
	Every  int    `mapstructure:"every" env:"BATTLE_FRAMES_EVERY"`
}

type RosterConfig struct {
	Source string `mapstructure:"source" env:"BATTLE_ROSTER_SOURCE"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" env:"BATTLE_SERVER_ADDR"`
	TPS  int    `mapstructure:"tps" env:"BATTLE_SERVER_TPS"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" env:"BATTLE_LOG_LEVEL"`
	File       string `mapstructure:"file" env:"BATTLE_LOG_FILE"`
	MaxSize    int    `mapstructure:"max_size" env:"BATTLE_LOG_MAX_SIZE"` // MB
	MaxBackups int    `mapstructure:"max_backups" env:"BATTLE_LOG_MAX_BACKUPS"`
	MaxAge     int    `mapstructure:"max_age" env:"BATTLE_LOG_MAX_AGE"` // days
	Compress   bool   `mapstructure:"compress" env:"BATTLE_LOG_COMPRESS"`
	Dev        bool   `mapstructure:"dev" env:"BATTLE_LOG_DEV"`
}

// Config is everything a battle command needs to build and drive a simulation.
type Config struct {
	FighterKind   string `mapstructure:"fighter_type" env:"BATTLE_FIGHTER_TYPE"`
	Width         int    `mapstructure:"width" env:"BATTLE_WIDTH"`
	Height        int    `mapstructure:"height" env:"BATTLE_HEIGHT"`
	Random        bool   `mapstructure:"random" env:"BATTLE_RANDOM"`
	FightOwn      bool   `mapstructure:"fightown" env:"BATTLE_FIGHTOWN"`
	Framerate     bool   `mapstructure:"framerate" env:"BATTLE_FRAMERATE"`
	Seed          int64  `mapstructure:"seed" env:"BATTLE_SEED"`
	Scale         int    `mapstructure:"scale" env:"BATTLE_SCALE"`
	TicksPerFrame int    `mapstructure:"ticks_per_frame" env:"BATTLE_TICKS_PER_FRAME"`

	Frames FrameConfig  `mapstructure:"frames"`
	Roster RosterConfig `mapstructure:"roster"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		FighterKind:   fighters.KindStreetFighter.String(),
		Width:         DefaultSize,
		Height:        DefaultSize,
		Scale:         1,
		TicksPerFrame: 1,
		Frames:        FrameConfig{Format: FramePNG, Every: 1},
		Roster:        RosterConfig{Source: DefaultRosterSource},
		Server:        ServerConfig{Addr: ":8080", TPS: 10},
		Log:           LogConfig{Level: "info", MaxSize: 50, MaxBackups: 3, MaxAge: 7},
	}
}

// Validate reports the first setting that cannot drive a run.
func (c Config) Validate() error {
	if c.Width < MinSize || c.Width > MaxSize {
		return fmt.Errorf("%w: width %d not in [%d, %d]", ErrSizeOutOfRange, c.Width, MinSize, MaxSize)
	}
	if c.Height < MinSize || c.Height > MaxSize {
		return fmt.Errorf("%w: height %d not in [%d, %d]", ErrSizeOutOfRange, c.Height, MinSize, MaxSize)
	}
	if _, err := c.Kind(); err != nil {
		return err
	}
	switch strings.ToLower(c.Frames.Format) {
	case FramePNG, FrameBMP, FrameLetters:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFrameFormat, c.Frames.Format)
	}
	for _, s := range []struct {
		name  string
		value int
	}{
		{"scale", c.Scale},
		{"ticks_per_frame", c.TicksPerFrame},
		{"frames.every", c.Frames.Every},
		{"server.tps", c.Server.TPS},
	} {
		if s.value < 1 {
			return fmt.Errorf("%w: %s = %d", ErrNonPositiveSetting, s.name, s.value)
		}
	}
	return nil
}

// Kind resolves FighterKind.
func (c Config) Kind() (fighters.Kind, error) {
	k, err := fighters.ParseKind(c.FighterKind)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFighterKind, c.FighterKind,
			strings.Join(fighters.KindNames(), ", "))
	}
	return k, nil
}

// Selection is RandomNeighbour when -r was given, WeakestNeighbour otherwise.
func (c Config) Selection() battle.SelectionAlgorithm {
	if c.Random {
		return battle.RandomNeighbour
	}
	return battle.WeakestNeighbour
}

// FilterCandidates is the inverse of FightOwn.
func (c Config) FilterCandidates() bool {
	return !c.FightOwn
}

// BattleOptions derives the engine options.
func (c Config) BattleOptions() battle.Options {
	return battle.Options{
		Width:            c.Width,
		Height:           c.Height,
		Selection:        c.Selection(),
		FilterCandidates: c.FilterCandidates(),
	}
}

// NewRand returns a source seeded with Seed, or with the clock when Seed is 0.
// The seed actually used is returned so the run can be replayed.
func (c Config) NewRand() (*rand.Rand, int64) {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed // #nosec G404 -- simulation, not crypto
}
