// File: internal/layout/units.go
// Description: CSS dimension parsing and the tag default size table used when
// an element declares no size at all.

package layout

import (
	"strconv"
	"strings"
)

const (
	// PxPerInch is the CSS reference pixel density.
	PxPerInch = 96.0
	// ReferenceWidthPx is the assumed containing-block width used to resolve
	// percentage units. The simulator has no true containing-block size; this
	// is a documented approximation, not real layout.
	ReferenceWidthPx = 1000.0
)

// PxToInch converts CSS pixels to inches.
func PxToInch(px float64) float64 { return px / PxPerInch }

// tagDefaultSizes maps tags to plausible default boxes in CSS pixels, used
// when neither an explicit nor a computed size is available. Unstyled
// elements still need a box.
var tagDefaultSizes = map[string][2]float64{
	"h1":     {600, 60},
	"h2":     {550, 50},
	"h3":     {500, 45},
	"h4":     {450, 40},
	"h5":     {420, 35},
	"h6":     {400, 30},
	"p":      {500, 30},
	"div":    {400, 200},
	"span":   {200, 25},
	"a":      {150, 25},
	"label":  {150, 25},
	"button": {120, 40},
	"img":    {300, 200},
	"table":  {600, 300},
	"ul":     {400, 120},
	"ol":     {400, 120},
	"li":     {400, 25},
	"hr":     {400, 2},
}

// fallbackDefaultSize is used for tags absent from the table, in CSS pixels.
var fallbackDefaultSize = [2]float64{400, 100}

// defaultSizeInches returns the default box for a tag, in inches.
func defaultSizeInches(tag string) (w, h float64) {
	size, ok := tagDefaultSizes[tag]
	if !ok {
		size = fallbackDefaultSize
	}
	return PxToInch(size[0]), PxToInch(size[1])
}

// parseDimension resolves a CSS length value to inches. Percentages resolve
// against referencePx (the assumed containing-block extent in pixels). The
// second return is false when the value cannot be interpreted as a length.
func parseDimension(value string, referencePx float64) (float64, bool) {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" || v == "auto" || v == "none" || v == "inherit" || v == "initial" {
		return 0, false
	}

	switch {
	case strings.HasSuffix(v, "px"):
		if n, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64); err == nil {
			return PxToInch(n), true
		}
	case strings.HasSuffix(v, "%"):
		if n, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64); err == nil {
			return PxToInch(n / 100 * referencePx), true
		}
	case strings.HasSuffix(v, "in"):
		if n, err := strconv.ParseFloat(strings.TrimSuffix(v, "in"), 64); err == nil {
			return n, true
		}
	case strings.HasSuffix(v, "pt"):
		if n, err := strconv.ParseFloat(strings.TrimSuffix(v, "pt"), 64); err == nil {
			return n / 72, true
		}
	case strings.HasSuffix(v, "cm"):
		if n, err := strconv.ParseFloat(strings.TrimSuffix(v, "cm"), 64); err == nil {
			return n / 2.54, true
		}
	case strings.HasSuffix(v, "mm"):
		if n, err := strconv.ParseFloat(strings.TrimSuffix(v, "mm"), 64); err == nil {
			return n / 25.4, true
		}
	case strings.HasSuffix(v, "rem"):
		if n, err := strconv.ParseFloat(strings.TrimSuffix(v, "rem"), 64); err == nil {
			return PxToInch(n * 16), true
		}
	case strings.HasSuffix(v, "em"):
		if n, err := strconv.ParseFloat(strings.TrimSuffix(v, "em"), 64); err == nil {
			return PxToInch(n * 16), true
		}
	default:
		// A bare number is treated as pixels.
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return PxToInch(n), true
		}
	}
	return 0, false
}

// parseEdge parses a single margin/padding side, defaulting to 0.
func parseEdge(value string) float64 {
	if n, ok := parseDimension(value, ReferenceWidthPx); ok {
		return n
	}
	return 0
}

// edgeValues resolves the four sides of a shorthand plus per-side overrides,
// e.g. prefix "margin" reads margin, margin-top, margin-right, and so on.
// Shorthand parsing follows the CSS 1/2/3/4 value convention.
func edgeValues(styles map[string]string, prefix string) (top, right, bottom, left float64) {
	if shorthand, ok := styles[prefix]; ok {
		parts := strings.Fields(shorthand)
		switch len(parts) {
		case 1:
			top = parseEdge(parts[0])
			right, bottom, left = top, top, top
		case 2:
			top = parseEdge(parts[0])
			right = parseEdge(parts[1])
			bottom, left = top, right
		case 3:
			top = parseEdge(parts[0])
			right = parseEdge(parts[1])
			bottom = parseEdge(parts[2])
			left = right
		case 4:
			top = parseEdge(parts[0])
			right = parseEdge(parts[1])
			bottom = parseEdge(parts[2])
			left = parseEdge(parts[3])
		}
	}
	if v, ok := styles[prefix+"-top"]; ok {
		top = parseEdge(v)
	}
	if v, ok := styles[prefix+"-right"]; ok {
		right = parseEdge(v)
	}
	if v, ok := styles[prefix+"-bottom"]; ok {
		bottom = parseEdge(v)
	}
	if v, ok := styles[prefix+"-left"]; ok {
		left = parseEdge(v)
	}
	return top, right, bottom, left
}
