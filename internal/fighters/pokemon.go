package fighters

import (
	"fmt"
	"image/color"
	"math/rand"
	"strings"
)

// PokemonType is one of the 18 elemental types of the type chart.
type PokemonType int

const (
	Normal PokemonType = iota
	Fire
	Water
	Electric
	Grass
	Ice
	Fighting
	Poison
	Ground
	Flying
	Psychic
	Bug
	Rock
	Ghost
	Dragon
	Dark
	Steel
	Fairy
	pokemonTypeCount
)

var pokemonTypeNames = [pokemonTypeCount]string{
	"Normal", "Fire", "Water", "Electric", "Grass", "Ice", "Fighting", "Poison", "Ground",
	"Flying", "Psychic", "Bug", "Rock", "Ghost", "Dragon", "Dark", "Steel", "Fairy",
}

var pokemonPalette = [pokemonTypeCount]color.RGBA{
	Normal:   {R: 168, G: 168, B: 120, A: 255},
	Fire:     {R: 240, G: 128, B: 48, A: 255},
	Water:    {R: 104, G: 144, B: 240, A: 255},
	Electric: {R: 248, G: 208, B: 48, A: 255},
	Grass:    {R: 120, G: 200, B: 80, A: 255},
	Ice:      {R: 152, G: 216, B: 216, A: 255},
	Fighting: {R: 192, G: 48, B: 40, A: 255},
	Poison:   {R: 160, G: 64, B: 160, A: 255},
	Ground:   {R: 224, G: 192, B: 104, A: 255},
	Flying:   {R: 168, G: 144, B: 240, A: 255},
	Psychic:  {R: 248, G: 88, B: 136, A: 255},
	Bug:      {R: 168, G: 184, B: 32, A: 255},
	Rock:     {R: 184, G: 160, B: 56, A: 255},
	Ghost:    {R: 112, G: 88, B: 152, A: 255},
	Dragon:   {R: 112, G: 56, B: 248, A: 255},
	Dark:     {R: 112, G: 88, B: 72, A: 255},
	Steel:    {R: 184, G: 184, B: 208, A: 255},
	Fairy:    {R: 240, G: 182, B: 188, A: 255},
}

// typeChart holds damage multipliers in percent: row = attacker, column = defender.
var typeChart = [pokemonTypeCount][pokemonTypeCount]int{
	{100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 50, 0, 100, 100, 50, 100},  // Normal
	{100, 50, 50, 100, 200, 200, 100, 100, 100, 100, 100, 200, 50, 100, 50, 100, 200, 100},  // Fire
	{100, 200, 50, 100, 50, 100, 100, 100, 200, 100, 100, 100, 200, 100, 50, 100, 100, 100}, // Water
	{100, 100, 200, 50, 50, 100, 100, 100, 0, 200, 100, 100, 100, 100, 50, 100, 100, 100},   // Electric
	{100, 50, 200, 100, 50, 100, 100, 50, 200, 50, 100, 50, 200, 100, 50, 100, 50, 100},     // Grass
	{100, 50, 50, 100, 200, 50, 100, 100, 200, 200, 100, 100, 100, 100, 200, 100, 50, 100},  // Ice
	{200, 100, 100, 100, 100, 200, 100, 50, 100, 50, 50, 50, 200, 0, 100, 200, 200, 50},     // Fighting
	{100, 100, 100, 100, 200, 100, 100, 50, 50, 100, 100, 100, 50, 50, 100, 100, 0, 200},    // Poison
	{100, 200, 100, 200, 50, 100, 100, 200, 100, 0, 100, 50, 200, 100, 100, 100, 200, 100},  // Ground
	{100, 100, 100, 50, 200, 100, 200, 100, 100, 100, 100, 200, 50, 100, 100, 100, 50, 100}, // Flying
	{100, 100, 100, 100, 100, 100, 200, 200, 100, 100, 50, 100, 100, 100, 100, 0, 50, 100},  // Psychic
	{100, 50, 100, 100, 200, 100, 50, 50, 100, 50, 200, 100, 100, 50, 100, 200, 50, 50},     // Bug
	{100, 200, 100, 100, 100, 200, 50, 100, 50, 200, 100, 200, 100, 100, 100, 100, 50, 100}, // Rock
	{0, 100, 100, 100, 100, 100, 100, 100, 100, 100, 200, 100, 100, 200, 100, 50, 100, 100}, // Ghost
	{100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 200, 100, 50, 0}, // Dragon
	{100, 100, 100, 100, 100, 100, 50, 100, 100, 100, 200, 100, 100, 200, 100, 50, 100, 50}, // Dark
	{100, 50, 50, 50, 100, 200, 100, 100, 100, 100, 100, 100, 200, 100, 100, 100, 50, 200},  // Steel
	{100, 50, 100, 100, 100, 100, 200, 50, 100, 100, 100, 100, 100, 100, 200, 200, 50, 100}, // Fairy
}

func (t PokemonType) String() string {
	if t < 0 || t >= pokemonTypeCount {
		return "Unknown"
	}
	return pokemonTypeNames[t]
}

// Color returns the display colour of the type.
func (t PokemonType) Color() color.RGBA {
	if t < 0 || t >= pokemonTypeCount {
		return color.RGBA{A: 255}
	}
	return pokemonPalette[t]
}

// ParsePokemonType matches a type name case-insensitively.
func ParsePokemonType(s string) (PokemonType, error) {
	for i, name := range pokemonTypeNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return PokemonType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown pokemon type %q", s)
}

// TypeEffectiveness is the chart multiplier (percent) of attacker against defender.
func TypeEffectiveness(attacker, defender PokemonType) int {
	return typeChart[attacker][defender]
}

const (
	pokemonHealth = 80
	pokemonDamage = 40
)

// Pokemon is a type-chart fighter: damage scales with the attacker→defender
// multiplier and the defender converts when its health runs out.
type Pokemon struct {
	health int
	damage int
	kind   PokemonType
}

// NewPokemon returns a fresh fighter of the given type.
func NewPokemon(kind PokemonType) Pokemon {
	return Pokemon{health: pokemonHealth, damage: pokemonDamage, kind: kind}
}

// RandomPokemon draws a uniform type from rng.
func RandomPokemon(rng *rand.Rand) (Pokemon, error) {
	return NewPokemon(PokemonType(rng.Intn(int(pokemonTypeCount)))), nil
}

func (p *Pokemon) reset(kind PokemonType) {
	*p = NewPokemon(kind)
}

func (p *Pokemon) takeDamage(damage int) bool {
	p.health -= damage
	return p.health <= 0
}

func (p Pokemon) ShouldFight(defender Pokemon) bool {
	return p.kind != defender.kind
}

func (p Pokemon) Effectiveness(defender Pokemon) int {
	return TypeEffectiveness(p.kind, defender.kind)
}

func (p Pokemon) Fight(defender *Pokemon, _ *rand.Rand) bool {
	damage := p.damage * p.Effectiveness(*defender) / 100
	if !defender.takeDamage(damage) {
		return false
	}
	defender.reset(p.kind)
	return true
}

// Type returns the fighter's type.
func (p Pokemon) Type() PokemonType { return p.kind }

// Health returns the remaining health.
func (p Pokemon) Health() int { return p.health }

func (p Pokemon) KindIndex() int { return int(p.kind) }

func (p Pokemon) Label() string { return p.kind.String() }

func (p Pokemon) Color() color.RGBA { return p.kind.Color() }

func (p Pokemon) String() string {
	return fmt.Sprintf("%s hp=%d/%d", p.kind, p.health, pokemonHealth)
}
