package fighters

import (
	"errors"
	"image/color"
	"math/rand"
	"testing"

	"github.com/Garsondee/grid-battle/internal/battle"
	"github.com/Garsondee/grid-battle/internal/grid"
)

func testRoster(t *testing.T) []RealPokemon {
	t.Helper()
	return []RealPokemon{
		mustReal(t, "Bulbasaur", []PokemonType{Grass, Poison}, BaseStats{HP: 45, Attack: 49, Defense: 49, SpAttack: 65, SpDefense: 65, Speed: 45}),
		mustReal(t, "Charmander", []PokemonType{Fire}, BaseStats{HP: 39, Attack: 52, Defense: 43, SpAttack: 60, SpDefense: 50, Speed: 65}),
		mustReal(t, "Squirtle", []PokemonType{Water}, BaseStats{HP: 44, Attack: 48, Defense: 65, SpAttack: 50, SpDefense: 64, Speed: 43}),
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"pokemon":             KindPokemon,
		"rock-paper-scissors": KindRPS,
		"RPS":                 KindRPS,
		"street-fighter":      KindStreetFighter,
		"streetfighter":       KindStreetFighter,
		"color":               KindColor,
		"colour":              KindColor,
		"Real-Pokemon":        KindRealPokemon,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseKind("chess"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	for _, k := range Kinds() {
		back, err := ParseKind(k.String())
		if err != nil || back != k {
			t.Fatalf("round trip of %v failed: %v, %v", k, back, err)
		}
	}
}

func TestNewSimulation_AllKinds(t *testing.T) {
	opts := battle.Options{Width: 8, Height: 6, Selection: battle.WeakestNeighbour, FilterCandidates: true}
	for _, k := range Kinds() {
		sim, err := NewSimulation(k, opts, rand.New(rand.NewSource(11)), testRoster(t))
		if err != nil {
			t.Fatalf("%v: %v", k, err)
		}
		if sim.Kind() != k {
			t.Fatalf("expected kind %v, got %v", k, sim.Kind())
		}
		total := 0
		for _, n := range sim.Census() {
			total += n
		}
		if total != 48 {
			t.Fatalf("%v: census should cover 48 cells, got %d", k, total)
		}
		for i := 0; i < 3; i++ {
			if d := sim.Action(); d < 0 || d > 48 {
				t.Fatalf("%v: impossible death count %d", k, d)
			}
		}
		if sim.Tick() != 3 {
			t.Fatalf("%v: expected tick 3, got %d", k, sim.Tick())
		}
	}
}

func TestNewSimulation_RealPokemonNeedsRoster(t *testing.T) {
	opts := battle.Options{Width: 4, Height: 4}
	if _, err := NewSimulation(KindRealPokemon, opts, rand.New(rand.NewSource(1)), nil); !errors.Is(err, ErrEmptyRoster) {
		t.Fatalf("expected ErrEmptyRoster, got %v", err)
	}
	if _, err := NewSimulation(KindPokemon, opts, nil, nil); !errors.Is(err, battle.ErrNilRand) {
		t.Fatalf("expected ErrNilRand, got %v", err)
	}
}

func TestSimulation_Accessors(t *testing.T) {
	opts := battle.Options{Width: 4, Height: 4}
	sim, err := NewSimulation(KindPokemon, opts, rand.New(rand.NewSource(5)), nil)
	if err != nil {
		t.Fatal(err)
	}
	out := grid.Location{X: 4, Y: 0}
	if _, ok := sim.Describe(out); ok {
		t.Fatal("describe out of range should fail")
	}
	if _, ok := sim.ColorAt(out); ok {
		t.Fatal("color out of range should fail")
	}
	if _, ok := sim.Inspect(out); ok {
		t.Fatal("inspect out of range should fail")
	}

	seen := 0
	sim.EachColor(func(loc grid.Location, c color.RGBA) {
		want, _ := sim.ColorAt(loc)
		if c != want {
			t.Fatalf("EachColor and ColorAt disagree at %v", loc)
		}
		seen++
	})
	if seen != 16 {
		t.Fatalf("expected 16 colours, got %d", seen)
	}

	loc := grid.Location{X: 1, Y: 2}
	in, ok := sim.Inspect(loc)
	if !ok {
		t.Fatal("inspect in range should succeed")
	}
	desc, _ := sim.Describe(loc)
	if in.Description != desc {
		t.Fatalf("inspection %q differs from description %q", in.Description, desc)
	}
	idx, ok := sim.KindIndexAt(loc)
	if !ok {
		t.Fatal("pokemon cells have a kind index")
	}
	self := PokemonType(idx)
	for i, n := range in.Neighbours {
		if n.Location != battle.Neighbours(loc, 4, 4)[i] {
			t.Fatalf("neighbour %d at %v, want %v", i, n.Location, battle.Neighbours(loc, 4, 4)[i])
		}
		other, _ := sim.KindIndexAt(n.Location)
		if want := TypeEffectiveness(self, PokemonType(other)); n.Effectiveness != want {
			t.Fatalf("neighbour %d effectiveness %d, want %d", i, n.Effectiveness, want)
		}
		if n.ShouldFight != (self != PokemonType(other)) {
			t.Fatalf("neighbour %d should-fight mismatch", i)
		}
	}
}

func TestSimulation_ColorHasNoKindIndex(t *testing.T) {
	sim, err := NewSimulation(KindColor, battle.Options{Width: 2, Height: 2}, rand.New(rand.NewSource(5)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sim.KindIndexAt(grid.Location{}); ok {
		t.Fatal("colour fighters have no discrete kind")
	}
}
