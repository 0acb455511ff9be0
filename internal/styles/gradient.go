// File: internal/styles/gradient.go
// Description: Gradient detection and extraction. Color stops are found by a
// regex scan over color tokens and assigned evenly spaced positions along the
// stop list; the source's literal stop percentages are not preserved.

package styles

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
)

// namedAngles maps the eight CSS direction keywords to gradient angles.
var namedAngles = map[string]float64{
	"to top":          0,
	"to top right":    45,
	"to right":        90,
	"to bottom right": 135,
	"to bottom":       180,
	"to bottom left":  225,
	"to left":         270,
	"to top left":     315,
}

var (
	angleDegPattern  = regexp.MustCompile(`(-?[\d.]+)deg`)
	colorTokenScan   = regexp.MustCompile(`rgba?\([^)]*\)|#[0-9a-fA-F]{3,8}|\b[a-z]+\b`)
	gradientFuncScan = regexp.MustCompile(`(linear|radial)-gradient\(`)
)

// IsGradient reports whether a background value contains a gradient function.
func IsGradient(background string) bool {
	return gradientFuncScan.MatchString(strings.ToLower(background))
}

// ParseGradient extracts a gradient descriptor from a background value, or
// nil when none is present or no color stops can be found. Only the gradient
// function's own argument list is scanned, so colors from other layers of a
// composite background cannot leak in as stops.
func ParseGradient(background string) *schemas.Gradient {
	v := strings.ToLower(strings.TrimSpace(background))
	loc := gradientFuncScan.FindStringSubmatchIndex(v)
	if loc == nil {
		return nil
	}
	args := gradientArgs(v, loc[1])

	g := &schemas.Gradient{Radial: v[loc[2]:loc[3]] == "radial"}
	if !g.Radial {
		g.AngleDegrees = extractAngle(args)
	}

	for _, token := range colorTokenScan.FindAllString(args, -1) {
		if hex, _, ok := ParseColor(token); ok {
			g.Stops = append(g.Stops, schemas.GradientStop{Color: hex})
		}
	}
	if len(g.Stops) == 0 {
		return nil
	}

	// Stops are spread evenly; a single stop sits at 0.
	if n := len(g.Stops); n > 1 {
		step := 100.0 / float64(n-1)
		for i := range g.Stops {
			g.Stops[i].Position = step * float64(i)
		}
	}
	return g
}

// gradientArgs returns the argument list of the gradient function whose
// opening paren ends at pos, up to the balanced closing paren.
func gradientArgs(v string, pos int) string {
	depth := 1
	for i := pos; i < len(v); i++ {
		switch v[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return v[pos:i]
			}
		}
	}
	return v[pos:]
}

// extractAngle resolves an explicit degree value or a named direction,
// defaulting to 0.
func extractAngle(v string) float64 {
	if m := angleDegPattern.FindStringSubmatch(v); m != nil {
		if deg, err := strconv.ParseFloat(m[1], 64); err == nil {
			// Normalize into [0,360).
			deg = deg - 360*float64(int(deg/360))
			if deg < 0 {
				deg += 360
			}
			return deg
		}
	}
	// Longer names first so "to top right" is not shadowed by "to top".
	for _, name := range []string{
		"to top right", "to bottom right", "to bottom left", "to top left",
		"to top", "to right", "to bottom", "to left",
	} {
		if strings.Contains(v, name) {
			return namedAngles[name]
		}
	}
	return 0
}
