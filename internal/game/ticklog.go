package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	logPanelWidth = 240
	logMaxEntries = 60
	logLineHeight = 14
)

// TickEntry is one line in the side log.
type TickEntry struct {
	Tick    int
	Deaths  int
	Message string
}

// TickLog is a ring buffer of recent tick outcomes rendered beside the grid.
type TickLog struct {
	entries []TickEntry
	head    int
	count   int
}

// NewTickLog creates a tick log with a fixed capacity.
func NewTickLog() *TickLog {
	return &TickLog{entries: make([]TickEntry, logMaxEntries)}
}

// Add appends an entry, overwriting the oldest once full.
func (tl *TickLog) Add(tick, deaths int, msg string) {
	tl.entries[tl.head] = TickEntry{Tick: tick, Deaths: deaths, Message: msg}
	tl.head = (tl.head + 1) % logMaxEntries
	if tl.count < logMaxEntries {
		tl.count++
	}
}

// Len reports how many entries are held.
func (tl *TickLog) Len() int { return tl.count }

// Recent returns entries in chronological order (oldest first).
func (tl *TickLog) Recent() []TickEntry {
	result := make([]TickEntry, tl.count)
	for i := 0; i < tl.count; i++ {
		idx := (tl.head - tl.count + i + logMaxEntries) % logMaxEntries
		result[i] = tl.entries[idx]
	}
	return result
}

// Draw renders the panel at panelX with the status lines on top.
func (tl *TickLog) Draw(screen *ebiten.Image, panelX, panelH int, status []string) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	y := logLineHeight
	for _, s := range status {
		text.Draw(screen, s, basicfont.Face7x13, panelX+8, y, color.White)
		y += logLineHeight
	}
	vector.StrokeLine(screen, float32(panelX), float32(y-8), float32(panelX+logPanelWidth), float32(y-8), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 200}, false)
	y += 4

	entries := tl.Recent()
	maxVisible := (panelH - y) / logLineHeight
	if maxVisible <= 0 {
		return
	}
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	// Newest entries at the bottom; older ones dimmed.
	for i, e := range entries {
		c := color.RGBA{R: 140, G: 150, B: 160, A: 255}
		if i >= len(entries)-3 {
			c = color.RGBA{R: 235, G: 240, B: 245, A: 255}
		}
		text.Draw(screen, fmt.Sprintf("%6d %s", e.Tick, e.Message), basicfont.Face7x13, panelX+8, y, c)
		y += logLineHeight
	}
}
