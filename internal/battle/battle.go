// Package battle runs the territorial fight simulation over a torus grid.
package battle

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/Garsondee/grid-battle/internal/grid"
)

// ErrNilRand is returned when a battle is constructed without a random source.
var ErrNilRand = errors.New("battle requires a random source")

// Offsets are the strides used to walk the grid in a scattered order each tick.
// They are not guaranteed to be coprime with the cell count; when they are not,
// a tick only visits the cells on the cycle reachable from its start index.
var Offsets = [...]int{48817, 58099, 89867, 105407, 126943, 200723, 221021, 231677}

// Options configure a Battle. They are fixed for the lifetime of the battle.
type Options struct {
	Width            int
	Height           int
	Selection        SelectionAlgorithm
	FilterCandidates bool // only pick defenders the attacker ShouldFight
}

// Battle owns the fighter grid, the random source and the bound selection
// strategy. It is not safe for concurrent use; separate battles share nothing.
type Battle[F Fighter[F]] struct {
	fighters       *grid.Grid[F]
	rng            *rand.Rand
	selectDefender selector
	tick           int
}

// New populates a grid by calling generate once per cell with rng, and binds the
// selection strategy described by opts.
func New[F Fighter[F]](opts Options, rng *rand.Rand, generate func(*rand.Rand) (F, error)) (*Battle[F], error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	fighters, err := grid.New(opts.Width, opts.Height, func() (F, error) {
		return generate(rng)
	})
	if err != nil {
		return nil, fmt.Errorf("populate battle: %w", err)
	}
	b := &Battle[F]{
		fighters: fighters,
		rng:      rng,
	}
	b.selectDefender = b.bindSelector(opts.Selection, opts.FilterCandidates)
	return b, nil
}

// Action advances the simulation by one tick and returns the number of deaths.
//
// The sweep starts at a random index and repeatedly adds a stride drawn from
// Offsets (mod the cell count) until it returns to the start.
func (b *Battle[F]) Action() int {
	n := b.fighters.Count()
	start := b.rng.Intn(n)
	offset := Offsets[b.rng.Intn(len(Offsets))]

	deaths := 0
	sweep(start, offset, n, func(i int) {
		attacker := b.fighters.LocationOf(i)
		defender, ok := b.selectDefender(attacker)
		if !ok {
			return
		}
		if b.Fight(attacker, defender) {
			deaths++
		}
	})
	b.tick++
	return deaths
}

// sweep visits start, start+offset, ... (mod n) until the walk returns to start.
func sweep(start, offset, n int, visit func(i int)) {
	current := start
	for {
		visit(current)
		current = (current + offset) % n
		if current == start {
			return
		}
	}
}

// Fight resolves a single attack. It is a no-op returning false when the two
// locations coincide or either is out of bounds.
func (b *Battle[F]) Fight(attacker, defender grid.Location) bool {
	a, d, ok := b.fighters.PairMut(attacker, defender)
	if !ok {
		return false
	}
	return (*a).Fight(d, b.rng)
}

// SelectDefender runs the bound selection strategy for one attacker.
func (b *Battle[F]) SelectDefender(attacker grid.Location) (grid.Location, bool) {
	return b.selectDefender(attacker)
}

// FighterAt returns the fighter at loc, or false when loc is out of range.
func (b *Battle[F]) FighterAt(loc grid.Location) (F, bool) {
	f, ok := b.fighters.Get(loc)
	if !ok {
		var zero F
		return zero, false
	}
	return *f, true
}

// Each calls fn with a copy of every fighter in index order.
func (b *Battle[F]) Each(fn func(loc grid.Location, f F)) {
	b.fighters.Each(func(loc grid.Location, f *F) {
		fn(loc, *f)
	})
}

// Size returns the grid dimensions.
func (b *Battle[F]) Size() (int, int) {
	return b.fighters.Size()
}

// Count returns the number of cells.
func (b *Battle[F]) Count() int {
	return b.fighters.Count()
}

// Tick returns how many ticks have completed.
func (b *Battle[F]) Tick() int {
	return b.tick
}
