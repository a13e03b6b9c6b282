package game

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Garsondee/grid-battle/internal/battle"
	"github.com/Garsondee/grid-battle/internal/config"
	"github.com/Garsondee/grid-battle/internal/fighters"
	"github.com/Garsondee/grid-battle/internal/grid"
	"github.com/Garsondee/grid-battle/internal/render"
)

func newSim(t *testing.T, kind fighters.Kind, w, h int) fighters.Simulation {
	t.Helper()
	sim, err := fighters.NewSimulation(kind, battle.Options{Width: w, Height: h}, rand.New(rand.NewSource(4)), nil)
	if err != nil {
		t.Fatal(err)
	}
	return sim
}

func TestTickLog_Wraps(t *testing.T) {
	tl := NewTickLog()
	for i := 1; i <= logMaxEntries+10; i++ {
		tl.Add(i, i%3, "x")
	}
	if tl.Len() != logMaxEntries {
		t.Fatalf("expected %d entries, got %d", logMaxEntries, tl.Len())
	}
	recent := tl.Recent()
	if recent[0].Tick != 11 || recent[len(recent)-1].Tick != logMaxEntries+10 {
		t.Fatalf("expected ticks 11..%d, got %d..%d", logMaxEntries+10, recent[0].Tick, recent[len(recent)-1].Tick)
	}
}

func TestSpeedSteps(t *testing.T) {
	if got := faster(1); got != 2 {
		t.Fatalf("faster(1) = %d", got)
	}
	if got := faster(32); got != 32 {
		t.Fatalf("faster should clamp at 32, got %d", got)
	}
	if got := slower(1); got != 1 {
		t.Fatalf("slower should clamp at 1, got %d", got)
	}
	if got := slower(5); got != 4 {
		t.Fatalf("slower(5) = %d, want 4", got)
	}
}

func TestCellAt(t *testing.T) {
	cases := []struct {
		mx, my int
		want   grid.Location
		ok     bool
	}{
		{0, 0, grid.Location{X: 0, Y: 0}, true},
		{9, 5, grid.Location{X: 2, Y: 1}, true},
		{39, 23, grid.Location{X: 9, Y: 5}, true},
		{40, 0, grid.Location{}, false},
		{-1, 3, grid.Location{}, false},
	}
	for _, tc := range cases {
		got, ok := cellAt(tc.mx, tc.my, 4, 10, 6)
		if ok != tc.ok || got != tc.want {
			t.Errorf("cellAt(%d,%d) = %v %v, want %v %v", tc.mx, tc.my, got, ok, tc.want, tc.ok)
		}
	}
}

func TestInspectorClick(t *testing.T) {
	g := New(newSim(t, fighters.KindRPS, 10, 6), Options{Scale: 4})
	if !g.handleInspectorClick(9, 5) {
		t.Fatal("click inside the grid should select a cell")
	}
	if loc, ok := g.inspector.Selected(); !ok || loc != (grid.Location{X: 2, Y: 1}) {
		t.Fatalf("expected (2,1), got %v %v", loc, ok)
	}
	if g.handleInspectorClick(41, 0) {
		t.Fatal("click on the side panel should not select")
	}
	if _, ok := g.inspector.Selected(); ok {
		t.Fatal("selection should be cleared")
	}
}

func TestInspectionLines(t *testing.T) {
	sim := newSim(t, fighters.KindPokemon, 4, 4)
	in, ok := sim.Inspect(grid.Location{X: 0, Y: 0})
	if !ok {
		t.Fatal("inspect failed")
	}
	lines := inspectionLines(in)
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "cell (0,0)" || lines[1] != in.Description {
		t.Fatalf("unexpected header %q %q", lines[0], lines[1])
	}
	if !strings.Contains(lines[3], "up") || !strings.Contains(lines[3], "(0,3)") {
		t.Fatalf("first neighbour should be the wrapped cell above: %q", lines[3])
	}
}

func TestAdvance_FramesAndLog(t *testing.T) {
	dir := t.TempDir()
	fw, err := render.NewFrameWriter(config.FrameConfig{Dir: dir, Format: config.FramePNG, Every: 2})
	if err != nil {
		t.Fatal(err)
	}
	g := New(newSim(t, fighters.KindColor, 8, 8), Options{Frames: fw})
	if err := g.advance(5, time.Unix(0, 0)); err != nil {
		t.Fatal(err)
	}
	if g.sim.Tick() != 5 || g.tickLog.Len() != 5 {
		t.Fatalf("expected 5 ticks logged, got tick=%d log=%d", g.sim.Tick(), g.tickLog.Len())
	}
	for _, name := range []string{"frame-000002.png", "frame-000004.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "frame-000003.png")); err == nil {
		t.Fatal("odd ticks should not be dumped")
	}
}

func TestWindowSize(t *testing.T) {
	g := New(newSim(t, fighters.KindRPS, 40, 30), Options{Scale: 3, TicksPerFrame: 0})
	w, h := g.WindowSize()
	if w != 120+logPanelWidth || h != 90 {
		t.Fatalf("unexpected window %dx%d", w, h)
	}
	if g.ticksPerFrame != 1 {
		t.Fatalf("ticks per frame should default to 1, got %d", g.ticksPerFrame)
	}
}

func TestTPSMeter(t *testing.T) {
	var m tpsMeter
	t0 := time.Unix(100, 0)
	if _, ok := m.Observe(t0, 10); ok {
		t.Fatal("no rate before a second has passed")
	}
	if _, ok := m.Observe(t0.Add(500*time.Millisecond), 10); ok {
		t.Fatal("no rate before a second has passed")
	}
	rate, ok := m.Observe(t0.Add(2*time.Second), 20)
	if !ok || rate != 20 {
		t.Fatalf("expected 20 ticks/s, got %v %v", rate, ok)
	}
}
