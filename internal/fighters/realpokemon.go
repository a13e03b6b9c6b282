package fighters

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
)

// ErrEmptyRoster is returned when a real-Pokémon battle is requested without entries.
var ErrEmptyRoster = errors.New("real pokemon roster is empty")

// BaseStats are the base values of a species.
type BaseStats struct {
	HP        int
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int
}

// RealPokemon is a species from a pokedex. Each fight is a full duel between
// attacker and defender; the defender becomes a copy of the attacker if it faints.
type RealPokemon struct {
	name    string
	type1   PokemonType
	type2   PokemonType
	hasType bool // type2 is set
	stats   BaseStats
}

// NewRealPokemon builds a species. types must hold one or two entries.
func NewRealPokemon(name string, types []PokemonType, stats BaseStats) (RealPokemon, error) {
	if len(types) == 0 || len(types) > 2 {
		return RealPokemon{}, fmt.Errorf("pokemon %q: expected 1 or 2 types, got %d", name, len(types))
	}
	// Guard the attack/defence ratios below against zero divisors.
	stats.Defense = max(1, stats.Defense)
	stats.SpDefense = max(1, stats.SpDefense)
	p := RealPokemon{name: name, type1: types[0], stats: stats}
	if len(types) == 2 {
		p.type2, p.hasType = types[1], true
	}
	return p, nil
}

// RosterGenerator draws uniformly from roster.
func RosterGenerator(roster []RealPokemon) func(*rand.Rand) (RealPokemon, error) {
	return func(rng *rand.Rand) (RealPokemon, error) {
		if len(roster) == 0 {
			return RealPokemon{}, ErrEmptyRoster
		}
		return roster[rng.Intn(len(roster))], nil
	}
}

func (p RealPokemon) ShouldFight(defender RealPokemon) bool {
	return p.name != defender.name
}

// Effectiveness multiplies the chart values of the attacker's primary type
// against both defender types, so the result is in percent².
func (p RealPokemon) Effectiveness(defender RealPokemon) int {
	second := 100
	if defender.hasType {
		second = TypeEffectiveness(p.type1, defender.type2)
	}
	return TypeEffectiveness(p.type1, defender.type1) * second
}

// Fight runs a duel. The faster side strikes first, attacker on speed ties, and
// both sides alternate until one drops below zero HP.
func (p RealPokemon) Fight(defender *RealPokemon, _ *rand.Rand) bool {
	attackerHP := p.stats.HP
	defenderHP := defender.stats.HP

	if defender.stats.Speed > p.stats.Speed {
		attackerHP -= strike(*defender, p)
	}
	for attackerHP >= 0 && defenderHP >= 0 {
		defenderHP -= strike(p, *defender)
		if defenderHP < 0 {
			break
		}
		attackerHP -= strike(*defender, p)
	}

	if defenderHP >= 0 {
		return false
	}
	*defender = p
	return true
}

// strike is a simplified level-5, power-40 move using the attacker's better
// attack stat and primary type, without STAB. Always deals at least 2.
func strike(attacker, defender RealPokemon) int {
	ad := max(
		1000*attacker.stats.Attack/defender.stats.Defense,
		1000*attacker.stats.SpAttack/defender.stats.SpDefense,
	)
	eff := attacker.Effectiveness(defender)
	return 4*40*ad/50000*eff/10000 + 2
}

// Name returns the species name.
func (p RealPokemon) Name() string { return p.name }

// Types returns the primary type and, when present, the secondary one.
func (p RealPokemon) Types() (PokemonType, PokemonType, bool) {
	return p.type1, p.type2, p.hasType
}

// Stats returns the species' base stats.
func (p RealPokemon) Stats() BaseStats { return p.stats }

func (p RealPokemon) KindIndex() int { return int(p.type1) }

func (p RealPokemon) Label() string { return p.name }

func (p RealPokemon) Color() color.RGBA { return p.type1.Color() }

func (p RealPokemon) String() string {
	if p.hasType {
		return fmt.Sprintf("%s (%s/%s)", p.name, p.type1, p.type2)
	}
	return fmt.Sprintf("%s (%s)", p.name, p.type1)
}
