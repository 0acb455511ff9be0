// File: internal/styles/color.go
// Description: CSS color parsing. Accepts rgb()/rgba(), hex notations and a
// small named-color table; every result is normalized to a fixed-width
// #RRGGBB triplet with alpha carried separately.

package styles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// namedColors is the fixed lookup table for keyword colors.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#FFFFFF",
	"red":     "#FF0000",
	"green":   "#008000",
	"blue":    "#0000FF",
	"yellow":  "#FFFF00",
	"orange":  "#FFA500",
	"purple":  "#800080",
	"pink":    "#FFC0CB",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#C0C0C0",
	"brown":   "#A52A2A",
	"cyan":    "#00FFFF",
	"magenta": "#FF00FF",
	"lime":    "#00FF00",
	"navy":    "#000080",
	"teal":    "#008080",
	"maroon":  "#800000",
	"olive":   "#808000",
	"gold":    "#FFD700",
}

var rgbPattern = regexp.MustCompile(`rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([\d.]+)\s*)?\)`)

// ParseColor resolves a CSS color value to a normalized #RRGGBB triplet and
// an alpha in (0,1]. ok is false for unrecognized or fully transparent
// values; computed styles express "no color" as rgba(0, 0, 0, 0), and that
// must never surface as opaque black.
func ParseColor(value string) (hex string, alpha float64, ok bool) {
	hex, alpha, ok = parseColorValue(value)
	if !ok || alpha == 0 {
		return "", 0, false
	}
	return hex, alpha, true
}

// IsTransparent reports whether a color value paints nothing at all. The
// value may be embedded in a longer declaration, like a border shorthand.
func IsTransparent(value string) bool {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" || v == "none" || strings.Contains(v, "transparent") {
		return true
	}
	_, alpha, ok := parseColorValue(v)
	return ok && alpha == 0
}

func parseColorValue(value string) (hex string, alpha float64, ok bool) {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" || v == "none" || v == "transparent" || v == "inherit" || v == "initial" {
		return "", 0, false
	}

	if m := rgbPattern.FindStringSubmatch(v); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		alpha = 1
		if m[4] != "" {
			if a, err := strconv.ParseFloat(m[4], 64); err == nil {
				alpha = clamp01(a)
			}
		}
		return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b)), alpha, true
	}

	if strings.HasPrefix(v, "#") {
		return parseHex(v)
	}

	if named, found := namedColors[v]; found {
		return named, 1, true
	}
	return "", 0, false
}

// parseHex normalizes #RGB, #RRGGBB and #RRGGBBAA notations.
func parseHex(v string) (string, float64, bool) {
	h := strings.TrimPrefix(v, "#")
	switch len(h) {
	case 3:
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
		fallthrough
	case 6:
		if !isHex(h) {
			return "", 0, false
		}
		return "#" + strings.ToUpper(h), 1, true
	case 8:
		if !isHex(h) {
			return "", 0, false
		}
		a, _ := strconv.ParseUint(h[6:8], 16, 8)
		return "#" + strings.ToUpper(h[:6]), float64(a) / 255, true
	}
	return "", 0, false
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func clampByte(n int) int {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
