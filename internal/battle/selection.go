package battle

import (
	"fmt"
	"strings"

	"github.com/Garsondee/grid-battle/internal/grid"
)

// SelectionAlgorithm decides how an attacker picks its defender.
type SelectionAlgorithm int

const (
	WeakestNeighbour SelectionAlgorithm = iota
	RandomNeighbour
)

func (s SelectionAlgorithm) String() string {
	switch s {
	case WeakestNeighbour:
		return "weakest"
	case RandomNeighbour:
		return "random"
	default:
		return "unknown"
	}
}

// ParseSelectionAlgorithm accepts "weakest" or "random" (case-insensitive).
func ParseSelectionAlgorithm(s string) (SelectionAlgorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weakest", "weakest-neighbour":
		return WeakestNeighbour, nil
	case "random", "random-neighbour":
		return RandomNeighbour, nil
	default:
		return 0, fmt.Errorf("unknown selection algorithm %q", s)
	}
}

// Neighbours returns the four torus-wrapped neighbours of loc in the fixed order
// up, right, down, left. On grids with a side of 1 or 2 some of them coincide.
func Neighbours(loc grid.Location, w, h int) [4]grid.Location {
	return [4]grid.Location{
		{X: loc.X, Y: (loc.Y + h - 1) % h},
		{X: (loc.X + 1) % w, Y: loc.Y},
		{X: loc.X, Y: (loc.Y + 1) % h},
		{X: (loc.X + w - 1) % w, Y: loc.Y},
	}
}

// selector maps an attacker location to an optional defender location.
type selector func(attacker grid.Location) (grid.Location, bool)

func (b *Battle[F]) bindSelector(alg SelectionAlgorithm, filter bool) selector {
	switch {
	case alg == RandomNeighbour && filter:
		return b.randomNeighbourFiltered
	case alg == RandomNeighbour:
		return b.randomNeighbour
	case filter:
		return b.weakestNeighbourFiltered
	default:
		return b.weakestNeighbour
	}
}

// weakestNeighbour picks the neighbour the attacker is most effective against.
// Ties go to the last candidate in neighbour order.
func (b *Battle[F]) weakestNeighbour(origin grid.Location) (grid.Location, bool) {
	return b.weakest(origin, false)
}

func (b *Battle[F]) weakestNeighbourFiltered(origin grid.Location) (grid.Location, bool) {
	return b.weakest(origin, true)
}

func (b *Battle[F]) weakest(origin grid.Location, filter bool) (grid.Location, bool) {
	attacker, ok := b.fighters.Get(origin)
	if !ok {
		return grid.Location{}, false
	}
	w, h := b.fighters.Size()
	var best grid.Location
	bestScore := 0
	found := false
	for _, loc := range Neighbours(origin, w, h) {
		candidate, ok := b.fighters.Get(loc)
		if !ok {
			continue
		}
		if filter && !(*attacker).ShouldFight(*candidate) {
			continue
		}
		score := (*attacker).Effectiveness(*candidate)
		if !found || score >= bestScore {
			best, bestScore, found = loc, score, true
		}
	}
	return best, found
}

func (b *Battle[F]) randomNeighbour(origin grid.Location) (grid.Location, bool) {
	w, h := b.fighters.Size()
	n := Neighbours(origin, w, h)
	return n[b.rng.Intn(len(n))], true
}

func (b *Battle[F]) randomNeighbourFiltered(origin grid.Location) (grid.Location, bool) {
	attacker, ok := b.fighters.Get(origin)
	if !ok {
		return grid.Location{}, false
	}
	w, h := b.fighters.Size()
	var candidates [4]grid.Location
	count := 0
	for _, loc := range Neighbours(origin, w, h) {
		candidate, ok := b.fighters.Get(loc)
		if !ok || !(*attacker).ShouldFight(*candidate) {
			continue
		}
		candidates[count] = loc
		count++
	}
	if count == 0 {
		return grid.Location{}, false
	}
	return candidates[b.rng.Intn(count)], true
}
