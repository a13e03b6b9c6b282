package fighters

import (
	"image/color"
	"math/rand"
)

// RPSType is one of rock, paper or scissor.
type RPSType int

const (
	RPSRock RPSType = iota
	RPSPaper
	RPSScissor
	rpsTypeCount
)

var rpsNames = [rpsTypeCount]string{"Rock", "Paper", "Scissor"}

var rpsPalette = [rpsTypeCount]color.RGBA{
	RPSRock:    {R: 128, A: 255},
	RPSPaper:   {B: 128, A: 255},
	RPSScissor: {G: 128, A: 255},
}

// rpsTable is 100 where the row beats the column and 0 otherwise.
var rpsTable = [rpsTypeCount][rpsTypeCount]int{
	{0, 0, 100}, // Rock
	{100, 0, 0}, // Paper
	{0, 100, 0}, // Scissor
}

func (t RPSType) String() string {
	if t < 0 || t >= rpsTypeCount {
		return "Unknown"
	}
	return rpsNames[t]
}

const (
	rpsHealth = 100
	rpsDamage = 100
)

// RPS is a rock-paper-scissors fighter. A winning attack always kills.
type RPS struct {
	health int
	damage int
	kind   RPSType
}

// NewRPS returns a fresh fighter of the given kind.
func NewRPS(kind RPSType) RPS {
	return RPS{health: rpsHealth, damage: rpsDamage, kind: kind}
}

// RandomRPS draws a uniform kind from rng.
func RandomRPS(rng *rand.Rand) (RPS, error) {
	return NewRPS(RPSType(rng.Intn(int(rpsTypeCount)))), nil
}

func (r *RPS) reset(kind RPSType) {
	*r = NewRPS(kind)
}

func (r *RPS) takeDamage(damage int) bool {
	r.health -= damage
	return r.health <= 0
}

func (r RPS) ShouldFight(defender RPS) bool {
	return r.kind != defender.kind
}

func (r RPS) Effectiveness(defender RPS) int {
	return rpsTable[r.kind][defender.kind]
}

func (r RPS) Fight(defender *RPS, _ *rand.Rand) bool {
	damage := r.damage * r.Effectiveness(*defender) / 100
	if !defender.takeDamage(damage) {
		return false
	}
	defender.reset(r.kind)
	return true
}

// Type returns the fighter's kind.
func (r RPS) Type() RPSType { return r.kind }

// Health returns the remaining health.
func (r RPS) Health() int { return r.health }

func (r RPS) KindIndex() int { return int(r.kind) }

func (r RPS) Label() string { return r.kind.String() }

func (r RPS) Color() color.RGBA { return rpsPalette[r.kind] }

func (r RPS) String() string { return r.kind.String() }
