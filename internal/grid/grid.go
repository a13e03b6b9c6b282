// Package grid provides the flat, row-major cell storage the battle runs on.
package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned when a grid is requested with a non-positive dimension.
var ErrInvalidSize = errors.New("grid dimensions must be positive")

// Location addresses one cell. Valid when 0 <= X < width and 0 <= Y < height.
type Location struct {
	X int
	Y int
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

// Grid owns width*height cells stored row-major (index = y*width + x).
type Grid[T any] struct {
	cells  []T
	width  int
	height int
}

// New fills a width×height grid by calling generate once per cell, in index order.
// The first generator error aborts construction; no partial grid is returned.
func New[T any](width, height int, generate func() (T, error)) (*Grid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	cells := make([]T, width*height)
	for i := range cells {
		c, err := generate()
		if err != nil {
			return nil, fmt.Errorf("generate cell %d: %w", i, err)
		}
		cells[i] = c
	}
	return &Grid[T]{cells: cells, width: width, height: height}, nil
}

// Index returns the linear index of loc, or false if loc is out of bounds.
func (g *Grid[T]) Index(loc Location) (int, bool) {
	if loc.X < 0 || loc.Y < 0 || loc.X >= g.width || loc.Y >= g.height {
		return 0, false
	}
	return loc.Y*g.width + loc.X, true
}

// LocationOf decodes a linear index. The caller guarantees 0 <= i < Count().
func (g *Grid[T]) LocationOf(i int) Location {
	return Location{X: i % g.width, Y: i / g.width}
}

// Get returns the cell at loc. Out-of-bounds locations yield (nil, false).
func (g *Grid[T]) Get(loc Location) (*T, bool) {
	i, ok := g.Index(loc)
	if !ok {
		return nil, false
	}
	return &g.cells[i], true
}

// PairMut returns pointers to two distinct cells that can be mutated in the same
// operation. The backing slice is split at the larger of the two indices so the
// pointers come from disjoint halves. Equal or out-of-bounds locations yield false.
func (g *Grid[T]) PairMut(a, b Location) (*T, *T, bool) {
	i1, ok1 := g.Index(a)
	i2, ok2 := g.Index(b)
	if !ok1 || !ok2 {
		return nil, nil, false
	}
	switch {
	case i1 < i2:
		lo, hi := g.cells[:i2], g.cells[i2:]
		return &lo[i1], &hi[0], true
	case i1 > i2:
		lo, hi := g.cells[:i1], g.cells[i1:]
		return &hi[0], &lo[i2], true
	default:
		return nil, nil, false
	}
}

// Each calls fn for every cell in index order.
func (g *Grid[T]) Each(fn func(loc Location, cell *T)) {
	for i := range g.cells {
		fn(g.LocationOf(i), &g.cells[i])
	}
}

// Size returns the grid dimensions.
func (g *Grid[T]) Size() (int, int) {
	return g.width, g.height
}

// Count returns the number of cells.
func (g *Grid[T]) Count() int {
	return len(g.cells)
}
