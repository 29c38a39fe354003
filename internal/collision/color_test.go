package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashLink(t *testing.T) {
	assert.Equal(t, uint32(0x811C9DC5), HashLink(""))
	assert.Equal(t, uint32(0xe40c292c), HashLink("a"))
	assert.Equal(t, uint32(2076215443), HashLink("wheel_fl"))
	// astral characters hash as two UTF-16 code units
	assert.Equal(t, uint32(1154239905), HashLink("é😀"))
}

func TestColorForLinkPinned(t *testing.T) {
	tests := []struct {
		link string
		hex  string
		h    float64
	}{
		{"wheel_fl", "#6415c6", 0.7414202690124512},
		{"wheel_fr", "#40d7e1", 0.5103011131286621},
		{"a", "#bd1e25", 0.9925532341003418},
		{"base_link", "#d042c4", 0.8474303046241403},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			assert.Equal(t, tt.hex, ColorForLink(tt.link).Hex())
			h, _, _ := HSLForLink(tt.link)
			assert.InDelta(t, tt.h, h, 1e-12)
		})
	}
}

func TestColorForLinkDeterministicAndDistinct(t *testing.T) {
	a := ColorForLink("wheel_fl")
	assert.Equal(t, a, ColorForLink("wheel_fl"))
	assert.NotEqual(t, a, ColorForLink("wheel_fr"))
}

func TestColorForLinkRanges(t *testing.T) {
	for _, name := range []string{"base_link", "shoulder", "elbow", "wrist_1", "wrist_2", "gripper", "x"} {
		h, s, l := HSLForLink(name)
		assert.GreaterOrEqual(t, h, 0.0)
		assert.Less(t, h, 1.0)
		assert.GreaterOrEqual(t, s, 0.5)
		assert.LessOrEqual(t, s, 0.85)
		assert.GreaterOrEqual(t, l, 0.42)
		assert.LessOrEqual(t, l, 0.58)
	}
}

func TestColorForLinkFallback(t *testing.T) {
	assert.Equal(t, FallbackColor, ColorForLink(""))
	assert.Equal(t, "#ff4444", ColorForLink("").Hex())
}

func TestHSL(t *testing.T) {
	tests := []struct {
		h, s, l float64
		hex     string
	}{
		{0, 1, 0.5, "#ff0000"},
		{1.0 / 3, 1, 0.5, "#00ff00"},
		{2.0 / 3, 1, 0.5, "#0000ff"},
		{1, 1, 0.5, "#ff0000"},
		{0.5, 0, 0.25, "#404040"},
		{0, 2, 0.5, "#ff0000"},
		{0.25, 1, 0.75, "#bfff80"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.hex, HSL(tt.h, tt.s, tt.l).Hex(), "hsl(%v,%v,%v)", tt.h, tt.s, tt.l)
	}
}
