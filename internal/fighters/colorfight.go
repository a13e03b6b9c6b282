package fighters

import (
	"fmt"
	"image/color"
	"math/rand"
)

// ColorFighter is a continuous fighter: attacks subtract the attacker's RGB
// channels from the defender's, and a defender with any empty channel dies.
type ColorFighter struct {
	rgb [3]uint8
}

// NewColorFighter returns a fighter with the given channels.
func NewColorFighter(r, g, b uint8) ColorFighter {
	return ColorFighter{rgb: [3]uint8{r, g, b}}
}

// RandomColorFighter draws three independent uniform bytes from rng.
func RandomColorFighter(rng *rand.Rand) (ColorFighter, error) {
	var c ColorFighter
	for i := range c.rgb {
		c.rgb[i] = uint8(rng.Intn(256))
	}
	return c, nil
}

func (c *ColorFighter) takeDamage(attacker [3]uint8) bool {
	dead := false
	for i, v := range attacker {
		if v < c.rgb[i] {
			c.rgb[i] -= v
		} else {
			c.rgb[i] = 0
		}
		if c.rgb[i] == 0 {
			dead = true
		}
	}
	return dead
}

// ShouldFight is true when at least one channel of the attacker is at least as
// strong as the defender's.
func (c ColorFighter) ShouldFight(defender ColorFighter) bool {
	for i, v := range c.rgb {
		if v >= defender.rgb[i] {
			return true
		}
	}
	return false
}

// Effectiveness is constant: every neighbour ranks the same.
func (c ColorFighter) Effectiveness(ColorFighter) int {
	return 1
}

func (c ColorFighter) Fight(defender *ColorFighter, _ *rand.Rand) bool {
	if !defender.takeDamage(c.rgb) {
		return false
	}
	defender.rgb = c.rgb
	return true
}

// RGB returns the fighter's channels.
func (c ColorFighter) RGB() [3]uint8 { return c.rgb }

// Label names the dominant channel, used to bucket the continuous colour space.
func (c ColorFighter) Label() string {
	r, g, b := c.rgb[0], c.rgb[1], c.rgb[2]
	switch {
	case r > g && r > b:
		return "red"
	case g > r && g > b:
		return "green"
	case b > r && b > g:
		return "blue"
	default:
		return "mixed"
	}
}

func (c ColorFighter) Color() color.RGBA {
	return color.RGBA{R: c.rgb[0], G: c.rgb[1], B: c.rgb[2], A: 255}
}

func (c ColorFighter) String() string {
	return fmt.Sprintf("[%d, %d, %d]", c.rgb[0], c.rgb[1], c.rgb[2])
}
