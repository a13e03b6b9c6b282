// Package fighters holds the fighter families that can populate a battle: a
// type-chart Pokémon model, rock-paper-scissors, Street Fighter tier odds,
// colour subtraction and pokedex-backed real Pokémon.
package fighters

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned by ParseKind for names it does not recognise.
var ErrUnknownKind = errors.New("unknown fighter kind")

// Kind selects a fighter family.
type Kind int

const (
	KindPokemon Kind = iota
	KindRPS
	KindStreetFighter
	KindColor
	KindRealPokemon
)

var kindNames = map[Kind]string{
	KindPokemon:       "pokemon",
	KindRPS:           "rock-paper-scissors",
	KindStreetFighter: "street-fighter",
	KindColor:         "color",
	KindRealPokemon:   "real-pokemon",
}

var kindAliases = map[string]Kind{
	"rps":           KindRPS,
	"streetfighter": KindStreetFighter,
	"colour":        KindColor,
	"realpokemon":   KindRealPokemon,
}

// Kinds lists every family in declaration order.
func Kinds() []Kind {
	return []Kind{KindPokemon, KindRPS, KindStreetFighter, KindColor, KindRealPokemon}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a family name or one of its short aliases.
func ParseKind(s string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == key {
			return k, nil
		}
	}
	if k, ok := kindAliases[key]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// KindNames returns the canonical names, for help text.
func KindNames() []string {
	names := make([]string, 0, len(kindNames))
	for _, k := range Kinds() {
		names = append(names, k.String())
	}
	return names
}
