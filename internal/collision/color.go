package collision

import (
	"fmt"
	"image/color"
	"math"
	"unicode/utf16"
)

const (
	fnvOffset32 = 0x811C9DC5
	fnvPrime32  = 0x01000193

	goldenRatioConjugate = 0.618033988749895
	saturationSpread     = 0.1274123
	lightnessSpread      = 0.2718281
)

// FallbackColor is used for links without a name.
var FallbackColor = Color{R: 1, G: 0x44 / 255.0, B: 0x44 / 255.0}

// Color is an sRGB triple with channels in [0,1].
type Color struct {
	R, G, B float64
}

// AsRGBA returns the color as 8-bit opaque RGBA, rounding each channel.
func (c Color) AsRGBA() color.RGBA {
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 255}
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	rgba := c.AsRGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

// HashLink is 32-bit FNV-1a over the UTF-16 code units of name.
func HashLink(name string) uint32 {
	h := uint32(fnvOffset32)
	for _, unit := range utf16.Encode([]rune(name)) {
		h ^= uint32(unit)
		h *= fnvPrime32
	}
	return h
}

// HSLForLink returns the hue, saturation and lightness assigned to a non-empty link name.
// Hue is spread by the golden ratio so similar hashes land far apart; saturation stays in [0.5,0.85]
// and lightness in [0.42,0.58].
func HSLForLink(name string) (h, s, l float64) {
	v := float64(HashLink(name))
	// the float64 conversions forbid fused multiply-add, keeping results identical on every GOARCH
	h = fract(float64(v * goldenRatioConjugate))
	s = 0.5 + float64(fract(float64(v*saturationSpread))*0.35)
	l = 0.42 + float64(fract(float64(v*lightnessSpread))*0.16)
	return h, s, l
}

// ColorForLink returns the deterministic overlay color for a link. Equal names always give bit-identical colors.
func ColorForLink(name string) Color {
	if name == "" {
		return FallbackColor
	}
	return HSL(HSLForLink(name))
}

// HSL converts hue (wrapped into [0,1)), saturation and lightness (clamped to [0,1]) to RGB.
func HSL(h, s, l float64) Color {
	h = fract(h)
	s = clamp01(s)
	l = clamp01(l)
	if s == 0 {
		return Color{R: l, G: l, B: l}
	}
	var hi float64
	if l <= 0.5 {
		hi = l * (1 + s)
	} else {
		hi = l + s - float64(l*s)
	}
	lo := 2*l - hi
	return Color{
		R: hueChannel(lo, hi, h+1.0/3),
		G: hueChannel(lo, hi, h),
		B: hueChannel(lo, hi, h-1.0/3),
	}
}

func hueChannel(lo, hi, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return lo + float64((hi-lo)*6*t)
	case t < 0.5:
		return hi
	case t < 2.0/3:
		return lo + float64((hi-lo)*6*(2.0/3-t))
	}
	return lo
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
