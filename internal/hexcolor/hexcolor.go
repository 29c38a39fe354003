// Package hexcolor parses the hex color notation shared by model files and stylesheets.
package hexcolor

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Parse parses #rgb, #rrggbb or #rrggbbaa. The leading # is optional; use HasHash where it is required.
func Parse(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// HasHash reports whether s, ignoring surrounding space, starts with #.
func HasHash(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "#")
}
