package stream

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Garsondee/grid-battle/internal/fighters"
	"github.com/Garsondee/grid-battle/internal/grid"
	"github.com/Garsondee/grid-battle/internal/logs"
	"github.com/Garsondee/grid-battle/internal/render"
)

const defaultTPS = 10

// State is the JSON view of a running battle.
type State struct {
	Kind    string         `json:"kind"`
	Tick    int            `json:"tick"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Count   int            `json:"count"`
	Deaths  int            `json:"deaths"`
	Viewers int            `json:"viewers"`
	Census  map[string]int `json:"census"`
}

// Runner advances a simulation at a fixed rate and publishes a frame after
// every tick. All access to the simulation goes through its lock.
type Runner struct {
	mu     sync.RWMutex
	sim    fighters.Simulation
	hub    *Hub
	tps    int
	frame  *image.RGBA
	frames *render.FrameWriter
	deaths int
}

// NewRunner publishes the initial frame immediately. tps <= 0 means 10.
// frames may be nil.
func NewRunner(sim fighters.Simulation, hub *Hub, tps int, frames *render.FrameWriter) *Runner {
	if tps <= 0 {
		tps = defaultTPS
	}
	r := &Runner{sim: sim, hub: hub, tps: tps, frames: frames}
	r.frame = render.Rasterize(sim, nil)
	hub.Broadcast(EncodeFrame(r.frame))
	return r
}

// Step advances one tick and broadcasts the result.
func (r *Runner) Step() (int, error) {
	r.mu.Lock()
	deaths := r.sim.Action()
	r.deaths += deaths
	tick := r.sim.Tick()
	r.frame = render.Rasterize(r.sim, r.frame)
	payload := EncodeFrame(r.frame)
	_, err := r.frames.Write(r.sim)
	r.mu.Unlock()

	r.hub.Broadcast(payload)
	if err != nil {
		return deaths, fmt.Errorf("tick %d: %w", tick, err)
	}
	return deaths, nil
}

// Run steps at the configured rate until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.tps))
	defer ticker.Stop()
	logs.Info("runner started", zap.Int("tps", r.tps))
	for {
		select {
		case <-ctx.Done():
			logs.Info("runner stopped", zap.Int("tick", r.State().Tick))
			return nil
		case <-ticker.C:
			if _, err := r.Step(); err != nil {
				return err
			}
		}
	}
}

// State snapshots the battle.
func (r *Runner) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, h := r.sim.Size()
	return State{
		Kind:    r.sim.Kind().String(),
		Tick:    r.sim.Tick(),
		Width:   w,
		Height:  h,
		Count:   r.sim.Count(),
		Deaths:  r.deaths,
		Viewers: r.hub.Clients(),
		Census:  r.sim.Census(),
	}
}

// Inspect describes one cell and its neighbours.
func (r *Runner) Inspect(loc grid.Location) (fighters.Inspection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sim.Inspect(loc)
}
