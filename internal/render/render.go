// Package render turns a simulation into images and frame dumps.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/bmp"

	"github.com/Garsondee/grid-battle/internal/config"
	"github.com/Garsondee/grid-battle/internal/fighters"
	"github.com/Garsondee/grid-battle/internal/grid"
	"github.com/Garsondee/grid-battle/internal/logs"
)

// ErrNoKindIndex is returned by Letters for families without discrete kinds.
var ErrNoKindIndex = errors.New("fighters have no kind index")

// Rasterize writes one pixel per cell into dst and returns it. A nil dst or one
// whose bounds do not match the grid is replaced by a fresh image.
func Rasterize(sim fighters.Simulation, dst *image.RGBA) *image.RGBA {
	w, h := sim.Size()
	if dst == nil || dst.Rect.Dx() != w || dst.Rect.Dy() != h {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	sim.EachColor(func(loc grid.Location, c color.RGBA) {
		i := dst.PixOffset(loc.X+dst.Rect.Min.X, loc.Y+dst.Rect.Min.Y)
		dst.Pix[i+0] = c.R
		dst.Pix[i+1] = c.G
		dst.Pix[i+2] = c.B
		dst.Pix[i+3] = c.A
	})
	return dst
}

// Letters encodes each cell as 'A' + its kind index, one row per line.
func Letters(sim fighters.Simulation) ([]byte, error) {
	w, h := sim.Size()
	out := make([]byte, 0, (w+1)*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			k, ok := sim.KindIndexAt(grid.Location{X: x, Y: y})
			if !ok {
				return nil, fmt.Errorf("%v: %w", sim.Kind(), ErrNoKindIndex)
			}
			out = append(out, byte('A'+k))
		}
		out = append(out, '\n')
	}
	return out, nil
}

// FrameWriter dumps frames to Dir every Every ticks.
type FrameWriter struct {
	Dir    string
	Format string
	Every  int

	img *image.RGBA
}

// NewFrameWriter returns nil when cfg.Dir is empty, meaning dumps are off.
func NewFrameWriter(cfg config.FrameConfig) (*FrameWriter, error) {
	if cfg.Dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame dir: %w", err)
	}
	return &FrameWriter{Dir: cfg.Dir, Format: strings.ToLower(cfg.Format), Every: max(1, cfg.Every)}, nil
}

// Due reports whether the current tick should be dumped.
func (fw *FrameWriter) Due(tick int) bool {
	return fw != nil && tick%max(1, fw.Every) == 0
}

// Write dumps the current state if Due and returns the file written, if any.
func (fw *FrameWriter) Write(sim fighters.Simulation) (string, error) {
	tick := sim.Tick()
	if !fw.Due(tick) {
		return "", nil
	}
	var buf bytes.Buffer
	if err := fw.Encode(&buf, sim); err != nil {
		return "", err
	}
	path := filepath.Join(fw.Dir, fmt.Sprintf("frame-%06d.%s", tick, fw.ext()))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write frame: %w", err)
	}
	logs.Debug("frame written", zap.String("path", path), zap.Int("tick", tick))
	return path, nil
}

// Encode writes the current state in the writer's format.
func (fw *FrameWriter) Encode(w io.Writer, sim fighters.Simulation) error {
	switch fw.Format {
	case config.FrameLetters:
		b, err := Letters(sim)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case config.FrameBMP:
		fw.img = Rasterize(sim, fw.img)
		return bmp.Encode(w, fw.img)
	case config.FramePNG, "":
		fw.img = Rasterize(sim, fw.img)
		return png.Encode(w, fw.img)
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownFrameFormat, fw.Format)
	}
}

func (fw *FrameWriter) ext() string {
	switch fw.Format {
	case config.FrameLetters:
		return "txt"
	case config.FrameBMP:
		return "bmp"
	default:
		return "png"
	}
}
