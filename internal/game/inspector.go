package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/grid-battle/internal/fighters"
	"github.com/Garsondee/grid-battle/internal/grid"
	"github.com/Garsondee/grid-battle/internal/logs"
)

const (
	inspPad   = 6
	inspLineH = 14
	inspCharW = 7 // basicfont.Face7x13 advance
)

var neighbourNames = [4]string{"up", "right", "down", "left"}

// Inspector holds the selected cell and whether the panel is shown.
type Inspector struct {
	selected grid.Location
	has      bool
	visible  bool
}

// Select marks loc as the inspected cell.
func (in *Inspector) Select(loc grid.Location) {
	in.selected, in.has = loc, true
}

// Clear drops the selection.
func (in *Inspector) Clear() {
	in.has = false
}

// Selected returns the inspected cell, if any.
func (in *Inspector) Selected() (grid.Location, bool) {
	return in.selected, in.has
}

// cellAt maps window coordinates to a grid cell for a grid drawn at the
// origin with the given scale.
func cellAt(mx, my, scale, w, h int) (grid.Location, bool) {
	if scale <= 0 || mx < 0 || my < 0 {
		return grid.Location{}, false
	}
	x, y := mx/scale, my/scale
	if x >= w || y >= h {
		return grid.Location{}, false
	}
	return grid.Location{X: x, Y: y}, true
}

// inspectionLines renders an inspection as plain text, one fact per line.
func inspectionLines(in fighters.Inspection) []string {
	lines := []string{
		fmt.Sprintf("cell %v", in.Location),
		in.Description,
		fmt.Sprintf("colour #%02x%02x%02x", in.Color.R, in.Color.G, in.Color.B),
	}
	for i, n := range in.Neighbours {
		mark := " "
		if n.ShouldFight {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%s%-5s %v %s eff=%d", mark, neighbourNames[i], n.Location, n.Description, n.Effectiveness))
	}
	return lines
}

// handleInspectorClick selects the clicked cell, or clears the selection when
// the click lands outside the grid.
func (g *Game) handleInspectorClick(mx, my int) bool {
	w, h := g.sim.Size()
	loc, ok := cellAt(mx, my, g.scale, w, h)
	if !ok {
		g.inspector.Clear()
		return false
	}
	g.inspector.Select(loc)
	g.inspector.visible = true
	return true
}

// copyInspection puts the inspected cell's text on the system clipboard.
func (g *Game) copyInspection() {
	loc, ok := g.inspector.Selected()
	if !ok {
		return
	}
	in, ok := g.sim.Inspect(loc)
	if !ok {
		return
	}
	body := strings.Join(inspectionLines(in), "\n")
	if err := clipboard.WriteAll(body); err != nil {
		logs.Warn("clipboard write failed", zap.Error(err))
		return
	}
	logs.Debug("inspection copied", zap.Stringer("cell", loc))
}

// drawInspector renders the panel near the top-left corner of the grid.
func (g *Game) drawInspector(screen *ebiten.Image) {
	if !g.inspector.visible {
		return
	}
	loc, ok := g.inspector.Selected()
	if !ok {
		return
	}
	in, ok := g.sim.Inspect(loc)
	if !ok {
		return
	}

	s := float32(g.scale)
	vector.StrokeRect(screen, float32(loc.X)*s-1, float32(loc.Y)*s-1, s+2, s+2, 1.0, color.White, false)

	lines := append(inspectionLines(in), "[C] copy  [I] hide")
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	bw := float32(maxLen*inspCharW + 2*inspPad + 12)
	bh := float32(len(lines)*inspLineH + 2*inspPad)
	const bx, by = 8, 8

	vector.FillRect(screen, bx, by, bw, bh, color.RGBA{R: 14, G: 16, B: 20, A: 230}, false)
	vector.StrokeRect(screen, bx, by, bw, bh, 1.0, color.RGBA{R: 55, G: 70, B: 95, A: 255}, false)
	vector.FillRect(screen, bx+inspPad, by+inspPad+2, 8, 8, in.Color, false)

	ty := int(by) + inspPad + 10
	for i, l := range lines {
		tx := int(bx) + inspPad
		if i == 0 {
			tx += 12
		}
		text.Draw(screen, l, basicfont.Face7x13, tx, ty, color.White)
		ty += inspLineH
	}
}
