package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"

	"github.com/Garsondee/grid-battle/internal/fighters"
)

// Flags binds the shared battle flags to a FlagSet. Only flags the user
// actually set override the file and environment layers.
type Flags struct {
	fs         *flag.FlagSet
	cli        Config
	configPath string
	setters    map[string]func(dst *Config)
}

// RegisterFlags adds the battle flags to fs. Commands may register their own
// flags on the same set before calling fs.Parse.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs, cli: Default(), setters: make(map[string]func(*Config))}
	fs.StringVar(&f.configPath, "config", "", "path to a JSON or YAML config file")

	bindVar(f, fs.StringVar, "t", "fighter type ("+strings.Join(fighters.KindNames(), ", ")+")", func(c *Config) *string { return &c.FighterKind })
	bindVar(f, fs.IntVar, "w", "grid width in cells", func(c *Config) *int { return &c.Width })
	bindVar(f, fs.IntVar, "h", "grid height in cells", func(c *Config) *int { return &c.Height })
	bindVar(f, fs.BoolVar, "r", "attack a random neighbour instead of the weakest", func(c *Config) *bool { return &c.Random })
	bindVar(f, fs.BoolVar, "o", "allow fighting neighbours of the same kind", func(c *Config) *bool { return &c.FightOwn })
	bindVar(f, fs.BoolVar, "f", "print ticks per second", func(c *Config) *bool { return &c.Framerate })
	bindVar(f, fs.Int64Var, "seed", "random seed (0 = time based)", func(c *Config) *int64 { return &c.Seed })
	bindVar(f, fs.IntVar, "scale", "window pixels per cell", func(c *Config) *int { return &c.Scale })
	bindVar(f, fs.IntVar, "tpf", "simulation ticks per displayed frame", func(c *Config) *int { return &c.TicksPerFrame })
	bindVar(f, fs.StringVar, "frames-dir", "directory for frame dumps (empty disables)", func(c *Config) *string { return &c.Frames.Dir })
	bindVar(f, fs.StringVar, "frames-format", "frame dump format (png, bmp, letters)", func(c *Config) *string { return &c.Frames.Format })
	bindVar(f, fs.IntVar, "frames-every", "dump one frame every N ticks", func(c *Config) *int { return &c.Frames.Every })
	bindVar(f, fs.StringVar, "roster", "real-pokemon pokedex file or URL", func(c *Config) *string { return &c.Roster.Source })
	bindVar(f, fs.StringVar, "addr", "live viewer listen address", func(c *Config) *string { return &c.Server.Addr })
	bindVar(f, fs.IntVar, "tps", "live viewer ticks per second", func(c *Config) *int { return &c.Server.TPS })
	bindVar(f, fs.StringVar, "log-level", "log level (debug, info, warn, error)", func(c *Config) *string { return &c.Log.Level })
	bindVar(f, fs.StringVar, "log-file", "rotated JSON log file (empty disables)", func(c *Config) *string { return &c.Log.File })
	return f
}

func bindVar[T any](f *Flags, define func(p *T, name string, value T, usage string), name, usage string, field func(*Config) *T) {
	p := field(&f.cli)
	define(p, name, *p, usage)
	f.setters[name] = func(dst *Config) { *field(dst) = *field(&f.cli) }
}

// Load layers defaults, the config file, the environment and the flags that
// were set, then validates. fs must already be parsed.
func (f *Flags) Load() (Config, error) {
	if !f.fs.Parsed() {
		return Config{}, fmt.Errorf("config: flags not parsed")
	}
	cfg := Default()
	if f.configPath != "" {
		if err := loadFile(f.configPath, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	f.fs.Visit(func(fl *flag.Flag) {
		if set, ok := f.setters[fl.Name]; ok {
			set(&cfg)
		}
	})
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse is RegisterFlags, fs.Parse and Load in one call for commands without
// extra flags.
func Parse(name string, args []string) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return f.Load()
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigFileUnreadable, err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigFileUnreadable, path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}
