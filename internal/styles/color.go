package styles

import (
	"fmt"
	"strings"
)

// RGB holds a color as float64 components so gradient interpolation
// stays exact until the final conversion back to hex.
type RGB struct {
	R, G, B float64
}

// HexToRGB parses a #RRGGBB hex string. Invalid input yields black.
func HexToRGB(hex string) RGB {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b uint8
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return RGB{float64(r), float64(g), float64(b)}
}
