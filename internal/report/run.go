// Package report drives battles without a window and summarises how the
// population of each fighter kind evolves.
package report

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/Garsondee/grid-battle/internal/battle"
	"github.com/Garsondee/grid-battle/internal/fighters"
)

// Run is a headless battle with a structured log and a census reporter.
type Run struct {
	Kind      fighters.Kind
	Width     int
	Height    int
	Seed      int64
	Selection battle.SelectionAlgorithm
	FightOwn  bool

	Sim      fighters.Simulation
	SimLog   *SimLog
	Reporter *Reporter

	roster      []fighters.RealPokemon
	windowTicks int
	every       int
	verbose     bool

	deathsSinceSnapshot int
	lastCensus          map[string]int
}

// Option configures a Run before its battle is built.
type Option func(*Run)

func WithKind(k fighters.Kind) Option {
	return func(r *Run) { r.Kind = k }
}

// WithSize sets the grid dimensions.
func WithSize(w, h int) Option {
	return func(r *Run) { r.Width, r.Height = w, h }
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) Option {
	return func(r *Run) { r.Seed = seed }
}

func WithSelection(s battle.SelectionAlgorithm) Option {
	return func(r *Run) { r.Selection = s }
}

// WithFightOwn lets fighters attack neighbours of their own kind.
func WithFightOwn(v bool) Option {
	return func(r *Run) { r.FightOwn = v }
}

// WithRoster supplies the species for real-pokemon runs.
func WithRoster(roster []fighters.RealPokemon) Option {
	return func(r *Run) { r.roster = roster }
}

// WithWindow sets the reporter window and how often a census is taken.
func WithWindow(windowTicks, every int) Option {
	return func(r *Run) { r.windowTicks, r.every = windowTicks, every }
}

// WithVerbose records a log entry for every tick, not only census events.
func WithVerbose(v bool) Option {
	return func(r *Run) { r.verbose = v }
}

// NewRun builds the battle described by opts. Defaults are a 64x64 type-chart
// battle, weakest-neighbour selection with filtering, seed 1.
func NewRun(opts ...Option) (*Run, error) {
	r := &Run{
		Kind:      fighters.KindPokemon,
		Width:     64,
		Height:    64,
		Seed:      1,
		Selection: battle.WeakestNeighbour,
		every:     1,
	}
	for _, o := range opts {
		o(r)
	}
	r.SimLog = NewSimLog(r.verbose)
	r.Reporter = NewReporter(r.windowTicks)
	r.every = max(1, r.every)

	rng := rand.New(rand.NewSource(r.Seed)) // #nosec G404 -- reproducible simulation
	sim, err := fighters.NewSimulation(r.Kind, battle.Options{
		Width:            r.Width,
		Height:           r.Height,
		Selection:        r.Selection,
		FilterCandidates: !r.FightOwn,
	}, rng, r.roster)
	if err != nil {
		return nil, fmt.Errorf("new run: %w", err)
	}
	r.Sim = sim
	r.census()
	return r, nil
}

// Tick advances one tick and returns its deaths.
func (r *Run) Tick() int {
	deaths := r.Sim.Action()
	tick := r.Sim.Tick()
	r.deathsSinceSnapshot += deaths
	r.SimLog.AddVerbose(tick, "--", "tick", "deaths", strconv.Itoa(deaths), float64(deaths))
	if tick%r.every == 0 {
		r.census()
	}
	return deaths
}

// RunTicks advances n ticks and returns the total deaths. A final census is
// taken if the last tick was not a census tick.
func (r *Run) RunTicks(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += r.Tick()
	}
	if latest := r.Reporter.Latest(); latest == nil || latest.Tick != r.Sim.Tick() {
		r.census()
	}
	return total
}

// census snapshots the population and logs extinctions and takeovers.
func (r *Run) census() {
	tick := r.Sim.Tick()
	counts := r.Sim.Census()
	r.Reporter.Collect(tick, counts, r.deathsSinceSnapshot)
	r.deathsSinceSnapshot = 0

	for label, before := range r.lastCensus {
		if before > 0 && counts[label] == 0 {
			r.SimLog.Add(tick, label, "census", "extinct", fmt.Sprintf("was %d", before), float64(before))
		}
	}
	if len(counts) == 1 && len(r.lastCensus) > 1 {
		for label, n := range counts {
			r.SimLog.Add(tick, label, "census", "takeover", fmt.Sprintf("holds all %d cells", n), float64(n))
		}
	}
	r.lastCensus = counts
}

// Summary is shorthand for Reporter.Summary.
func (r *Run) Summary() Summary {
	return r.Reporter.Summary()
}
