package battle

import "math/rand"

// Fighter is the combat contract every fighter family implements. F is the
// concrete fighter type itself, stored by value in the grid.
type Fighter[F any] interface {
	// ShouldFight reports whether this fighter considers defender a valid target.
	ShouldFight(defender F) bool
	// Effectiveness scores this fighter against defender. Higher is better for the attacker.
	Effectiveness(defender F) int
	// Fight resolves one attack, mutating only defender. It returns true when the
	// defender died, in which case it has already been replaced in place.
	Fight(defender *F, rng *rand.Rand) bool
}
