// Tier data from community match-up rankings for Super Street Fighter IV Arcade
// Edition v2012: each entry is the percentage chance the row character beats the
// column character.

package fighters

import (
	"fmt"
	"image/color"
	"math/rand"
)

// StreetFighterType is one of the 39 ranked characters.
type StreetFighterType int

const (
	Seth StreetFighterType = iota
	CViper
	Cammy
	Akuma
	FLong
	Rufus
	Sagat
	Balrog
	Adon
	Ibuki
	Abel
	Blanka
	Makoto
	Bison
	Ryu
	Ken
	Yun
	Zangief
	Dhalsim
	Guile
	Sakura
	ChunLi
	DeeJay
	Juri
	Rose
	Gouken
	Guy
	Cody
	Fuerte
	Yang
	EHonda
	Gen
	Vega
	Dudley
	Oni
	EvilRyu
	Hakan
	THawk
	Dan
	streetFighterTypeCount
)

var streetFighterNames = [streetFighterTypeCount]string{
	"Seth", "C. Viper", "Cammy", "Akuma", "Fei Long", "Rufus", "Sagat", "Balrog", "Adon",
	"Ibuki", "Abel", "Blanka", "Makoto", "M. Bison", "Ryu", "Ken", "Yun", "Zangief",
	"Dhalsim", "Guile", "Sakura", "Chun-Li", "Dee Jay", "Juri", "Rose", "Gouken", "Guy",
	"Cody", "Fuerte", "Yang", "E. Honda", "Gen", "Vega", "Dudley", "Oni", "Evil Ryu", "Hakan",
	"T. Hawk", "Dan",
}

var streetFighterPalette = [streetFighterTypeCount]color.RGBA{
	Seth:    {R: 100, G: 122, B: 4, A: 255},
	CViper:  {R: 105, G: 78, B: 203, A: 255},
	Cammy:   {R: 107, G: 255, B: 138, A: 255},
	Akuma:   {R: 136, G: 41, B: 110, A: 255},
	FLong:   {R: 145, G: 143, B: 47, A: 255},
	Rufus:   {R: 15, G: 0, B: 158, A: 255},
	Sagat:   {R: 158, G: 102, B: 221, A: 255},
	Balrog:  {R: 170, G: 122, B: 61, A: 255},
	Adon:    {R: 172, G: 195, B: 17, A: 255},
	Ibuki:   {R: 172, G: 244, B: 210, A: 255},
	Abel:    {R: 180, G: 0, B: 170, A: 255},
	Blanka:  {R: 180, G: 234, B: 210, A: 255},
	Makoto:  {R: 189, G: 94, B: 2, A: 255},
	Bison:   {R: 196, G: 103, B: 77, A: 255},
	Ryu:     {R: 196, G: 238, B: 203, A: 255},
	Ken:     {R: 198, G: 250, B: 237, A: 255},
	Yun:     {R: 20, G: 184, B: 104, A: 255},
	Zangief: {R: 236, G: 120, B: 183, A: 255},
	Dhalsim: {R: 236, G: 231, B: 122, A: 255},
	Guile:   {R: 240, G: 211, B: 242, A: 255},
	Sakura:  {R: 242, G: 255, B: 43, A: 255},
	ChunLi:  {R: 244, G: 214, B: 202, A: 255},
	DeeJay:  {R: 254, G: 177, B: 238, A: 255},
	Juri:    {R: 255, G: 139, B: 106, A: 255},
	Rose:    {R: 27, G: 228, B: 98, A: 255},
	Gouken:  {R: 56, G: 205, B: 99, A: 255},
	Guy:     {R: 56, G: 43, B: 146, A: 255},
	Cody:    {R: 75, G: 245, B: 255, A: 255},
	Fuerte:  {R: 84, G: 123, B: 12, A: 255},
	Yang:    {R: 96, G: 186, B: 0, A: 255},
	EHonda:  {R: 241, G: 204, B: 245, A: 255},
	Gen:     {R: 176, G: 43, B: 196, A: 255},
	Vega:    {R: 175, G: 74, B: 207, A: 255},
	Dudley:  {R: 116, G: 252, B: 200, A: 255},
	Oni:     {R: 187, G: 241, B: 212, A: 255},
	EvilRyu: {R: 137, G: 215, B: 168, A: 255},
	Hakan:   {R: 97, G: 148, B: 5, A: 255},
	THawk:   {R: 250, G: 254, B: 145, A: 255},
	Dan:     {R: 136, G: 51, B: 0, A: 255},
}

// tierTable holds win percentages: row = attacker, column = defender.
var tierTable = [streetFighterTypeCount][streetFighterTypeCount]int{
	{0, 40, 40, 50, 40, 50, 50, 50, 40, 50, 50, 50, 50, 60, 60, 50, 60, 70, 60, 60, 40, 60, 50, 60, 60, 60, 40, 60, 50, 60, 60, 50, 60, 60, 60, 50, 60, 70, 70},
	{60, 0, 60, 60, 50, 50, 60, 40, 50, 40, 60, 50, 60, 40, 60, 60, 50, 40, 70, 60, 50, 60, 50, 40, 60, 60, 50, 60, 50, 50, 50, 60, 50, 50, 60, 60, 50, 60, 60},
	{60, 40, 0, 60, 40, 50, 60, 40, 50, 60, 60, 60, 60, 40, 60, 50, 50, 40, 60, 40, 50, 50, 40, 60, 60, 60, 50, 60, 60, 50, 60, 60, 60, 50, 60, 60, 60, 60, 60},
	{50, 40, 40, 0, 50, 50, 60, 50, 50, 50, 60, 50, 50, 50, 50, 50, 40, 60, 60, 60, 60, 60, 50, 50, 50, 60, 60, 50, 60, 50, 60, 60, 60, 50, 50, 60, 60, 60, 60},
	{60, 50, 60, 50, 0, 50, 60, 40, 50, 50, 50, 60, 50, 50, 60, 50, 50, 60, 60, 50, 50, 60, 60, 60, 40, 50, 50, 50, 50, 50, 60, 50, 50, 50, 60, 50, 60, 60, 60},
	{50, 50, 50, 50, 50, 0, 40, 50, 50, 60, 60, 50, 60, 50, 40, 50, 60, 30, 60, 40, 60, 60, 40, 50, 70, 40, 40, 50, 60, 60, 60, 50, 60, 50, 60, 60, 60, 50, 70},
	{50, 40, 40, 40, 40, 60, 0, 60, 50, 40, 50, 50, 50, 50, 50, 60, 60, 70, 50, 50, 60, 40, 50, 40, 60, 50, 60, 60, 50, 60, 60, 50, 60, 40, 50, 60, 60, 70, 60},
	{50, 60, 60, 50, 60, 50, 40, 0, 60, 50, 50, 60, 60, 50, 50, 50, 50, 40, 40, 40, 60, 40, 50, 50, 60, 50, 60, 50, 50, 60, 50, 50, 50, 60, 60, 50, 50, 50, 60},
	{60, 50, 50, 50, 50, 50, 50, 40, 0, 50, 50, 60, 50, 50, 60, 50, 50, 40, 40, 60, 60, 50, 50, 50, 60, 60, 50, 50, 60, 50, 40, 50, 50, 50, 50, 60, 60, 40, 60},
	{50, 60, 40, 50, 50, 40, 60, 50, 50, 0, 50, 40, 50, 40, 50, 50, 50, 40, 60, 60, 50, 50, 60, 50, 50, 50, 60, 50, 50, 50, 50, 50, 60, 50, 60, 60, 60, 40, 60},
	{50, 40, 40, 40, 50, 40, 50, 50, 50, 50, 0, 60, 50, 50, 60, 50, 50, 40, 70, 60, 50, 40, 50, 40, 50, 60, 50, 50, 50, 50, 60, 60, 60, 50, 60, 60, 60, 40, 50},
	{50, 50, 40, 50, 40, 50, 50, 40, 40, 60, 40, 0, 50, 40, 50, 50, 50, 60, 40, 60, 50, 50, 60, 60, 60, 60, 60, 60, 60, 40, 50, 50, 40, 50, 50, 50, 40, 80, 60},
	{50, 40, 40, 50, 50, 40, 50, 40, 50, 50, 50, 50, 0, 50, 50, 50, 50, 40, 60, 60, 50, 40, 50, 50, 60, 50, 50, 50, 60, 50, 40, 50, 60, 60, 60, 50, 60, 60, 70},
	{40, 60, 60, 50, 50, 50, 50, 50, 50, 60, 50, 60, 50, 0, 50, 50, 40, 40, 50, 30, 60, 50, 60, 60, 50, 50, 50, 50, 60, 50, 40, 50, 50, 50, 50, 50, 60, 50, 60},
	{40, 40, 40, 50, 40, 60, 50, 50, 40, 50, 40, 50, 50, 50, 0, 50, 60, 60, 40, 50, 60, 50, 50, 50, 40, 50, 50, 50, 50, 50, 60, 50, 60, 50, 60, 60, 60, 60, 70},
	{50, 40, 50, 50, 50, 50, 40, 50, 50, 50, 50, 50, 50, 50, 50, 0, 60, 50, 40, 40, 50, 60, 60, 50, 40, 50, 50, 60, 50, 60, 50, 60, 50, 50, 50, 50, 60, 50, 60},
	{40, 50, 50, 60, 50, 40, 40, 50, 50, 50, 50, 50, 50, 60, 40, 40, 0, 40, 70, 60, 50, 60, 50, 50, 60, 40, 50, 50, 50, 50, 60, 60, 60, 50, 50, 50, 50, 40, 60},
	{30, 60, 60, 40, 40, 70, 30, 60, 60, 60, 60, 40, 60, 60, 40, 50, 60, 0, 40, 40, 50, 30, 40, 40, 40, 40, 70, 60, 50, 60, 50, 40, 50, 60, 60, 50, 60, 50, 70},
	{40, 30, 40, 40, 40, 40, 50, 60, 60, 40, 30, 60, 40, 50, 60, 60, 30, 60, 0, 60, 40, 60, 60, 40, 50, 60, 50, 60, 50, 40, 70, 50, 50, 60, 50, 60, 50, 60, 70},
	{40, 40, 60, 40, 50, 60, 50, 60, 40, 40, 40, 40, 40, 70, 50, 60, 40, 60, 40, 0, 50, 60, 50, 60, 40, 50, 40, 50, 40, 50, 60, 50, 50, 60, 50, 50, 60, 70, 60},
	{60, 50, 50, 40, 50, 40, 40, 40, 40, 50, 50, 50, 50, 40, 40, 50, 50, 50, 60, 50, 0, 50, 50, 60, 50, 60, 50, 50, 50, 50, 40, 60, 50, 50, 60, 60, 60, 60, 60},
	{40, 40, 50, 40, 40, 40, 60, 60, 50, 50, 60, 50, 60, 50, 50, 40, 40, 70, 40, 40, 50, 0, 50, 50, 50, 50, 50, 50, 60, 50, 60, 50, 50, 50, 50, 50, 50, 60, 60},
	{50, 50, 60, 50, 40, 60, 50, 50, 50, 40, 50, 40, 50, 40, 50, 40, 50, 60, 40, 50, 50, 50, 0, 50, 40, 50, 50, 50, 50, 60, 60, 50, 50, 50, 50, 50, 50, 70, 60},
	{40, 60, 40, 50, 40, 50, 60, 50, 50, 50, 60, 40, 50, 40, 50, 50, 50, 60, 60, 40, 40, 50, 50, 0, 50, 50, 50, 50, 40, 40, 40, 50, 50, 50, 60, 60, 60, 70, 60},
	{40, 40, 40, 50, 60, 30, 40, 40, 40, 50, 50, 40, 40, 50, 60, 60, 40, 60, 50, 60, 50, 50, 60, 50, 0, 60, 60, 50, 60, 40, 40, 50, 50, 60, 50, 50, 60, 60, 60},
	{40, 40, 40, 40, 50, 60, 50, 50, 40, 50, 40, 40, 50, 50, 50, 50, 60, 60, 40, 50, 40, 50, 50, 50, 40, 0, 40, 40, 60, 60, 60, 50, 50, 60, 60, 60, 50, 60, 60},
	{60, 50, 50, 40, 50, 60, 40, 40, 50, 40, 50, 40, 50, 50, 50, 50, 50, 30, 50, 60, 50, 50, 50, 50, 40, 60, 0, 40, 50, 60, 50, 50, 50, 50, 60, 60, 60, 40, 60},
	{40, 40, 40, 50, 50, 50, 40, 50, 50, 50, 50, 40, 50, 50, 50, 40, 50, 40, 40, 50, 50, 50, 50, 50, 50, 60, 60, 0, 40, 40, 50, 50, 50, 60, 60, 60, 60, 60, 60},
	{50, 50, 40, 40, 50, 40, 50, 50, 40, 50, 50, 40, 40, 40, 50, 50, 50, 50, 50, 60, 50, 40, 50, 60, 40, 40, 50, 60, 0, 60, 50, 50, 50, 50, 60, 60, 50, 60, 50},
	{40, 50, 50, 50, 50, 40, 40, 40, 50, 50, 50, 60, 50, 50, 50, 40, 50, 40, 60, 50, 50, 50, 40, 60, 60, 40, 40, 60, 40, 0, 50, 60, 50, 50, 50, 50, 60, 40, 60},
	{40, 50, 40, 40, 40, 40, 40, 50, 60, 50, 40, 50, 60, 60, 40, 50, 40, 50, 30, 40, 60, 40, 40, 60, 60, 40, 50, 50, 50, 50, 0, 60, 60, 50, 50, 50, 60, 60, 60},
	{50, 40, 40, 40, 50, 50, 50, 50, 50, 50, 40, 50, 50, 50, 50, 40, 40, 60, 50, 50, 40, 50, 50, 50, 50, 50, 50, 50, 50, 40, 40, 0, 50, 50, 50, 50, 50, 70, 60},
	{40, 50, 40, 40, 50, 40, 40, 50, 50, 40, 40, 60, 40, 50, 40, 50, 40, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 40, 50, 0, 50, 50, 50, 60, 60, 60},
	{40, 50, 50, 50, 50, 50, 60, 40, 50, 50, 50, 50, 40, 50, 50, 50, 50, 40, 40, 40, 50, 50, 50, 50, 40, 40, 50, 40, 50, 50, 50, 50, 50, 0, 50, 50, 50, 40, 60},
	{40, 40, 40, 50, 40, 40, 50, 40, 50, 40, 40, 50, 40, 50, 40, 50, 50, 40, 50, 50, 40, 50, 50, 40, 50, 40, 40, 40, 40, 50, 50, 50, 50, 50, 0, 60, 50, 60, 60},
	{50, 40, 40, 40, 50, 40, 40, 50, 40, 40, 40, 50, 50, 50, 40, 50, 50, 50, 40, 50, 40, 50, 50, 40, 50, 40, 40, 40, 40, 50, 50, 50, 50, 50, 40, 0, 50, 60, 60},
	{40, 50, 40, 40, 40, 40, 40, 50, 40, 40, 40, 60, 40, 40, 40, 40, 50, 40, 50, 40, 40, 50, 50, 40, 40, 50, 40, 40, 50, 40, 40, 50, 40, 50, 50, 50, 0, 50, 60},
	{30, 40, 40, 40, 40, 50, 30, 50, 60, 60, 60, 20, 40, 50, 40, 50, 60, 50, 40, 30, 40, 40, 30, 30, 40, 40, 60, 40, 40, 60, 40, 30, 40, 60, 40, 40, 50, 0, 60},
	{30, 40, 40, 40, 40, 30, 40, 40, 40, 40, 50, 40, 30, 40, 30, 40, 40, 30, 30, 40, 40, 40, 40, 40, 40, 40, 40, 40, 50, 40, 40, 40, 40, 40, 40, 40, 40, 40, 0},
}

func (t StreetFighterType) String() string {
	if t < 0 || t >= streetFighterTypeCount {
		return "Unknown"
	}
	return streetFighterNames[t]
}

// StreetFighter is a tier fighter. There is no health: every fight is a single
// roll against the attacker's win percentage.
type StreetFighter struct {
	kind StreetFighterType
}

// NewStreetFighter returns a fighter of the given character.
func NewStreetFighter(kind StreetFighterType) StreetFighter {
	return StreetFighter{kind: kind}
}

// RandomStreetFighter draws a uniform character from rng.
func RandomStreetFighter(rng *rand.Rand) (StreetFighter, error) {
	return NewStreetFighter(StreetFighterType(rng.Intn(int(streetFighterTypeCount)))), nil
}

func (s StreetFighter) ShouldFight(defender StreetFighter) bool {
	return s.kind != defender.kind
}

// Effectiveness is the attacker's chance, in percent, to beat defender.
func (s StreetFighter) Effectiveness(defender StreetFighter) int {
	return tierTable[s.kind][defender.kind]
}

// Fight rolls in [0,100); the defender converts when the roll is below the
// attacker's win percentage.
func (s StreetFighter) Fight(defender *StreetFighter, rng *rand.Rand) bool {
	if !chanceKills(rng.Intn(100), s.Effectiveness(*defender)) {
		return false
	}
	*defender = NewStreetFighter(s.kind)
	return true
}

// chanceKills reports whether a roll in [0,100) beats a win percentage.
// 0 never kills and 100 always does.
func chanceKills(roll, eff int) bool {
	return roll < eff
}

// Type returns the fighter's character.
func (s StreetFighter) Type() StreetFighterType { return s.kind }

func (s StreetFighter) KindIndex() int { return int(s.kind) }

func (s StreetFighter) Label() string { return s.kind.String() }

func (s StreetFighter) Color() color.RGBA { return streetFighterPalette[s.kind] }

func (s StreetFighter) String() string {
	return fmt.Sprintf("%s (#%d)", s.kind, int(s.kind)+1)
}
