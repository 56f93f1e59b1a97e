package core

import "fmt"

// RGB is a 24-bit color. Each channel is in [0, 255].
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// Predefined colors used by overlays.
var (
	ColorBlack = RGB{0, 0, 0}
	ColorWhite = RGB{255, 255, 255}
	ColorRed   = RGB{255, 0, 0}
)

// Brighten adds step to every channel, saturating at 255.
func (c RGB) Brighten(step int) RGB {
	return RGB{
		R: uint8(Clamp(int(c.R)+step, 0, 255)),
		G: uint8(Clamp(int(c.G)+step, 0, 255)),
		B: uint8(Clamp(int(c.B)+step, 0, 255)),
	}
}

// String returns the color as #rrggbb.
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
