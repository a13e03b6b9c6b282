// Package game shows a running battle in an ebiten window.
package game

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/grid-battle/internal/fighters"
	"github.com/Garsondee/grid-battle/internal/logs"
	"github.com/Garsondee/grid-battle/internal/render"
)

// speedSteps are the ticks-per-frame settings cycled by , and .
var speedSteps = []int{1, 2, 4, 8, 16, 32}

// Options configures a Game.
type Options struct {
	Scale         int
	TicksPerFrame int
	Framerate     bool // log ticks per second once a second
	Frames        *render.FrameWriter
}

// Game implements ebiten.Game over a fighters.Simulation.
type Game struct {
	sim   fighters.Simulation
	scale int

	frame *image.RGBA
	tex   *ebiten.Image

	paused        bool
	step          bool
	ticksPerFrame int

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool

	inspector Inspector
	tickLog   *TickLog
	frames    *render.FrameWriter
	framerate bool
	meter     tpsMeter
}

// New wraps sim for display. Scale and TicksPerFrame below 1 are treated as 1.
func New(sim fighters.Simulation, opts Options) *Game {
	return &Game{
		sim:           sim,
		scale:         max(1, opts.Scale),
		ticksPerFrame: max(1, opts.TicksPerFrame),
		prevKeys:      map[ebiten.Key]bool{},
		tickLog:       NewTickLog(),
		frames:        opts.Frames,
		framerate:     opts.Framerate,
	}
}

// WindowSize is the grid scaled up plus the side panel.
func (g *Game) WindowSize() (int, int) {
	w, h := g.sim.Size()
	return w*g.scale + logPanelWidth, h * g.scale
}

func (g *Game) Update() error {
	g.handleInput()

	n := g.ticksPerFrame
	if g.paused {
		n = 0
		if g.step {
			n = 1
		}
	}
	g.step = false
	return g.advance(n, time.Now())
}

// advance runs n ticks, feeding the side log, frame dumps and framerate meter.
func (g *Game) advance(n int, now time.Time) error {
	for i := 0; i < n; i++ {
		deaths := g.sim.Action()
		tick := g.sim.Tick()
		g.tickLog.Add(tick, deaths, fmt.Sprintf("%d deaths", deaths))

		if g.frames.Due(tick) {
			if _, err := g.frames.Write(g.sim); err != nil {
				return fmt.Errorf("tick %d: %w", tick, err)
			}
		}
	}
	if rate, ok := g.meter.Observe(now, n); ok && g.framerate {
		logs.Info("framerate", zap.Float64("ticks_per_second", rate), zap.Int("tick", g.sim.Tick()))
	}
	return nil
}

// handleInput processes keypresses (edge-triggered) and clicks.
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	if pressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if pressed(ebiten.KeyS) && g.paused {
		g.step = true
	}
	if pressed(ebiten.KeyComma) {
		g.ticksPerFrame = slower(g.ticksPerFrame)
	}
	if pressed(ebiten.KeyPeriod) {
		g.ticksPerFrame = faster(g.ticksPerFrame)
	}
	if pressed(ebiten.KeyI) {
		g.inspector.visible = !g.inspector.visible
	}
	if pressed(ebiten.KeyC) {
		g.copyInspection()
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !g.prevMouseLeft {
		mx, my := ebiten.CursorPosition()
		g.handleInspectorClick(mx, my)
	}
	g.prevMouseLeft = left

	g.prevKeys = currentKeys
}

func slower(cur int) int {
	for i := len(speedSteps) - 1; i >= 0; i-- {
		if speedSteps[i] < cur {
			return speedSteps[i]
		}
	}
	return speedSteps[0]
}

func faster(cur int) int {
	for _, s := range speedSteps {
		if s > cur {
			return s
		}
	}
	return speedSteps[len(speedSteps)-1]
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 10, A: 255})

	w, h := g.sim.Size()
	g.frame = render.Rasterize(g.sim, g.frame)
	if g.tex == nil {
		g.tex = ebiten.NewImage(w, h)
	}
	g.tex.WritePixels(g.frame.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.tex, op)

	_, sh := g.WindowSize()
	g.tickLog.Draw(screen, w*g.scale, sh, g.statusLines())
	g.drawInspector(screen)
}

func (g *Game) statusLines() []string {
	state := "running"
	if g.paused {
		state = "PAUSED  S=step"
	}
	w, h := g.sim.Size()
	return []string{
		fmt.Sprintf("%s %dx%d", g.sim.Kind(), w, h),
		fmt.Sprintf("tick %d  %d/frame", g.sim.Tick(), g.ticksPerFrame),
		state,
		"P pause  ,/. speed",
		"click inspect  I panel",
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.WindowSize()
}

// tpsMeter counts ticks and reports the rate once per second.
type tpsMeter struct {
	since time.Time
	ticks int
}

// Observe adds n ticks at now and returns the rate when a second has passed.
func (m *tpsMeter) Observe(now time.Time, n int) (float64, bool) {
	if m.since.IsZero() {
		m.since = now
	}
	m.ticks += n
	elapsed := now.Sub(m.since)
	if elapsed < time.Second {
		return 0, false
	}
	rate := float64(m.ticks) / elapsed.Seconds()
	m.since, m.ticks = now, 0
	return rate, true
}
