// File: internal/styles/color_test.go
package styles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/deckforge-cli/internal/styles"
)

func TestParseColor(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		hex   string
		alpha float64
		ok    bool
	}{
		{"six digit hex", "#336699", "#336699", 1, true},
		{"lowercase hex normalized", "#aabbcc", "#AABBCC", 1, true},
		{"three digit hex expands", "#f0a", "#FF00AA", 1, true},
		{"eight digit hex carries alpha", "#33669980", "#336699", 128.0 / 255, true},
		{"rgb", "rgb(51, 102, 153)", "#336699", 1, true},
		{"rgba", "rgba(255, 0, 0, 0.5)", "#FF0000", 0.5, true},
		{"rgb clamps channels", "rgb(300, 0, 0)", "#FF0000", 1, true},
		{"named color", "red", "#FF0000", 1, true},
		{"named color case insensitive", "NAVY", "#000080", 1, true},
		{"transparent", "transparent", "", 0, false},
		{"zero alpha rgba", "rgba(0, 0, 0, 0)", "", 0, false},
		{"zero alpha hex", "#33669900", "", 0, false},
		{"none", "none", "", 0, false},
		{"empty", "", "", 0, false},
		{"unknown keyword", "blurple", "", 0, false},
		{"bad hex", "#zzzzzz", "", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hex, alpha, ok := styles.ParseColor(tc.value)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.hex, hex)
				assert.InDelta(t, tc.alpha, alpha, 1e-3)
			}
		})
	}
}

func TestIsTransparent(t *testing.T) {
	testCases := []struct {
		value       string
		transparent bool
	}{
		{"", true},
		{"none", true},
		{"transparent", true},
		{"rgba(0, 0, 0, 0)", true},
		{"rgba(255, 255, 255, 0)", true},
		{"#33669900", true},
		{"10px solid transparent", true},
		{"10px solid rgba(0, 0, 0, 0)", true},
		{"#336699", false},
		{"rgba(0, 0, 0, 0.1)", false},
		{"red", false},
		{"20px solid rgb(51, 102, 153)", false},
		{"url(texture.png)", false},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			assert.Equal(t, tc.transparent, styles.IsTransparent(tc.value))
		})
	}
}

func TestParseGradient_LinearWithAngle(t *testing.T) {
	g := styles.ParseGradient("linear-gradient(45deg, #ff0000, #0000ff)")
	assert.NotNil(t, g)
	assert.False(t, g.Radial)
	assert.InDelta(t, 45, g.AngleDegrees, 1e-3)
	assert.Len(t, g.Stops, 2)
	assert.Equal(t, "#FF0000", g.Stops[0].Color)
	assert.Equal(t, "#0000FF", g.Stops[1].Color)
}

func TestParseGradient_NamedDirections(t *testing.T) {
	testCases := []struct {
		direction string
		angle     float64
	}{
		{"to top", 0},
		{"to top right", 45},
		{"to right", 90},
		{"to bottom right", 135},
		{"to bottom", 180},
		{"to bottom left", 225},
		{"to left", 270},
		{"to top left", 315},
	}

	for _, tc := range testCases {
		t.Run(tc.direction, func(t *testing.T) {
			g := styles.ParseGradient("linear-gradient(" + tc.direction + ", red, blue)")
			assert.NotNil(t, g)
			assert.InDelta(t, tc.angle, g.AngleDegrees, 1e-3)
		})
	}
}

func TestParseGradient_StopsSpreadEvenly(t *testing.T) {
	g := styles.ParseGradient("linear-gradient(to right, red, white, blue)")
	assert.NotNil(t, g)
	assert.Len(t, g.Stops, 3)
	assert.InDelta(t, 0, g.Stops[0].Position, 1e-3)
	assert.InDelta(t, 50, g.Stops[1].Position, 1e-3)
	assert.InDelta(t, 100, g.Stops[2].Position, 1e-3)
}

func TestParseGradient_Radial(t *testing.T) {
	g := styles.ParseGradient("radial-gradient(circle, rgba(255,255,255,0.8), gray)")
	assert.NotNil(t, g)
	assert.True(t, g.Radial)
	assert.Len(t, g.Stops, 2)
	assert.Equal(t, "#FFFFFF", g.Stops[0].Color)
}

func TestParseGradient_NoStops(t *testing.T) {
	assert.Nil(t, styles.ParseGradient("linear-gradient(45deg)"))
	assert.Nil(t, styles.ParseGradient("plain old blue"))
}

func TestIsGradient(t *testing.T) {
	assert.True(t, styles.IsGradient("linear-gradient(to right, red, blue)"))
	assert.True(t, styles.IsGradient("RADIAL-GRADIENT(circle, red, blue)"))
	assert.False(t, styles.IsGradient("#336699"))
	assert.False(t, styles.IsGradient("url(texture.png)"))
}

func TestParseGradient_CompositeBackgroundScopesToArguments(t *testing.T) {
	// Colors from other layers of a composite background are not stops.
	g := styles.ParseGradient("#fff url(texture.png), linear-gradient(red, blue)")
	require.NotNil(t, g)
	require.Len(t, g.Stops, 2)
	assert.Equal(t, "#FF0000", g.Stops[0].Color)
	assert.Equal(t, "#0000FF", g.Stops[1].Color)
}

func TestParseGradient_NegativeAngleNormalizes(t *testing.T) {
	g := styles.ParseGradient("linear-gradient(-90deg, red, blue)")
	assert.NotNil(t, g)
	assert.InDelta(t, 270, g.AngleDegrees, 1e-3)
}
