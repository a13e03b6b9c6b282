package fighters

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/Garsondee/grid-battle/internal/battle"
	"github.com/Garsondee/grid-battle/internal/grid"
)

// Simulation is a battle of any fighter family seen through display-level
// accessors, so callers that render or report need no type parameters.
type Simulation interface {
	Kind() Kind
	Action() int
	Tick() int
	Size() (int, int)
	Count() int
	ColorAt(loc grid.Location) (color.RGBA, bool)
	Describe(loc grid.Location) (string, bool)
	KindIndexAt(loc grid.Location) (int, bool)
	EachColor(fn func(loc grid.Location, c color.RGBA))
	Census() map[string]int
	Inspect(loc grid.Location) (Inspection, bool)
}

// Neighbour is one adjacent cell as seen from an inspected fighter.
type Neighbour struct {
	Location      grid.Location
	Description   string
	Effectiveness int
	ShouldFight   bool
}

// Inspection describes a cell and its four neighbours, in Neighbours order.
type Inspection struct {
	Location    grid.Location
	Description string
	Label       string
	Color       color.RGBA
	Neighbours  [4]Neighbour
}

type displayFighter[F any] interface {
	battle.Fighter[F]
	fmt.Stringer
	Color() color.RGBA
	Label() string
}

type kindIndexer interface {
	KindIndex() int
}

type simulation[F displayFighter[F]] struct {
	*battle.Battle[F]
	kind Kind
}

// NewSimulation builds a battle of the given family. roster is only used by
// KindRealPokemon and must not be empty for it.
func NewSimulation(kind Kind, opts battle.Options, rng *rand.Rand, roster []RealPokemon) (Simulation, error) {
	switch kind {
	case KindPokemon:
		return newSimulation(kind, opts, rng, RandomPokemon)
	case KindRPS:
		return newSimulation(kind, opts, rng, RandomRPS)
	case KindStreetFighter:
		return newSimulation(kind, opts, rng, RandomStreetFighter)
	case KindColor:
		return newSimulation(kind, opts, rng, RandomColorFighter)
	case KindRealPokemon:
		if len(roster) == 0 {
			return nil, ErrEmptyRoster
		}
		return newSimulation(kind, opts, rng, RosterGenerator(roster))
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}

func newSimulation[F displayFighter[F]](kind Kind, opts battle.Options, rng *rand.Rand, generate func(*rand.Rand) (F, error)) (Simulation, error) {
	b, err := battle.New(opts, rng, generate)
	if err != nil {
		return nil, fmt.Errorf("%s battle: %w", kind, err)
	}
	return &simulation[F]{Battle: b, kind: kind}, nil
}

func (s *simulation[F]) Kind() Kind { return s.kind }

func (s *simulation[F]) ColorAt(loc grid.Location) (color.RGBA, bool) {
	f, ok := s.FighterAt(loc)
	if !ok {
		return color.RGBA{}, false
	}
	return f.Color(), true
}

func (s *simulation[F]) Describe(loc grid.Location) (string, bool) {
	f, ok := s.FighterAt(loc)
	if !ok {
		return "", false
	}
	return f.String(), true
}

// KindIndexAt is false for families without a discrete kind (colour).
func (s *simulation[F]) KindIndexAt(loc grid.Location) (int, bool) {
	f, ok := s.FighterAt(loc)
	if !ok {
		return 0, false
	}
	k, ok := any(f).(kindIndexer)
	if !ok {
		return 0, false
	}
	return k.KindIndex(), true
}

func (s *simulation[F]) EachColor(fn func(loc grid.Location, c color.RGBA)) {
	s.Each(func(loc grid.Location, f F) {
		fn(loc, f.Color())
	})
}

// Census counts fighters per label.
func (s *simulation[F]) Census() map[string]int {
	counts := make(map[string]int)
	s.Each(func(_ grid.Location, f F) {
		counts[f.Label()]++
	})
	return counts
}

func (s *simulation[F]) Inspect(loc grid.Location) (Inspection, bool) {
	f, ok := s.FighterAt(loc)
	if !ok {
		return Inspection{}, false
	}
	in := Inspection{
		Location:    loc,
		Description: f.String(),
		Label:       f.Label(),
		Color:       f.Color(),
	}
	w, h := s.Size()
	for i, n := range battle.Neighbours(loc, w, h) {
		d, _ := s.FighterAt(n)
		in.Neighbours[i] = Neighbour{
			Location:      n,
			Description:   d.String(),
			Effectiveness: f.Effectiveness(d),
			ShouldFight:   f.ShouldFight(d),
		}
	}
	return in, true
}
