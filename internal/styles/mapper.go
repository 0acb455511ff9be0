// File: internal/styles/mapper.go
// Description: Translates a resolved CSS style map into a drawing primitive's
// native attribute set. Pure functions, no I/O.

package styles

import (
	"strconv"
	"strings"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
)

// pxToPt is the fixed CSS px to point ratio (72/96).
const pxToPt = 0.75

// minBorderWidthPt floors mapped border widths.
const minBorderWidthPt = 1.0

// Apply maps every primitive's source style map into its drawing style,
// walking the whole tree. Table cell styles are left raw; the emitter reads
// them through the same Map function per cell.
func Apply(root *schemas.DrawingPrimitive) {
	root.Walk(func(p *schemas.DrawingPrimitive) {
		p.Styles = Map(p.Source, p.Position)
	})
}

// Map converts one style map against the element's resolved box. The box is
// needed to compute per-side border segment geometry.
func Map(styles schemas.StyleMap, box schemas.Box) schemas.DrawingStyle {
	out := schemas.DrawingStyle{}
	if styles == nil {
		return out
	}

	mapFill(styles, &out)
	mapBorders(styles, box, &out)
	out.Font = mapFont(styles)

	if v := styles.Get("opacity"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			out.Opacity = clamp01(f)
		}
	}
	return out
}

// mapFill resolves background into a solid color or gradient. Alpha below 1
// is carried as fill opacity, never baked into the color value.
func mapFill(styles schemas.StyleMap, out *schemas.DrawingStyle) {
	background := styles.Get("background")
	if background == "" {
		background = styles.Get("background-image")
	}
	if IsGradient(background) {
		if g := ParseGradient(background); g != nil {
			out.Fill = schemas.Fill{Gradient: g}
			return
		}
	}

	candidate := styles.Get("background-color")
	if candidate == "" {
		candidate = background
	}
	if hex, alpha, ok := ParseColor(candidate); ok {
		out.Fill = schemas.Fill{Color: hex}
		if alpha < 1 {
			out.FillOpacity = alpha
		}
	}
}

// borderSpec is one parsed border side declaration.
type borderSpec struct {
	widthPt float64
	style   string
	color   string
	set     bool
}

func (b borderSpec) visible() bool {
	return b.set && b.style != "" && b.style != "none" && b.style != "hidden" && b.color != ""
}

// mapBorders applies the uniformity rule: four equal visible sides collapse
// into a single outline; anything mixed becomes independent per-side line
// segments computed from the element's box edges.
func mapBorders(styles schemas.StyleMap, box schemas.Box, out *schemas.DrawingStyle) {
	base := parseBorderShorthand(styles.Get("border"))

	sides := map[schemas.BorderEdge]borderSpec{}
	for edge, prop := range map[schemas.BorderEdge]string{
		schemas.EdgeTop:    "border-top",
		schemas.EdgeRight:  "border-right",
		schemas.EdgeBottom: "border-bottom",
		schemas.EdgeLeft:   "border-left",
	} {
		spec := base
		if v := styles.Get(prop); v != "" {
			spec = parseBorderShorthand(v)
		}
		sides[edge] = spec
	}

	visible := 0
	for _, spec := range sides {
		if spec.visible() {
			visible++
		}
	}
	if visible == 0 {
		return
	}

	if visible == 4 && uniform(sides) {
		spec := sides[schemas.EdgeTop]
		out.Outline = &schemas.Line{
			Color:   spec.color,
			WidthPt: spec.widthPt,
			Dash:    dashStyle(spec.style),
		}
		return
	}

	for _, edge := range []schemas.BorderEdge{schemas.EdgeTop, schemas.EdgeRight, schemas.EdgeBottom, schemas.EdgeLeft} {
		spec := sides[edge]
		if !spec.visible() {
			continue
		}
		out.Borders = append(out.Borders, schemas.BorderSide{
			Edge:     edge,
			Color:    spec.color,
			WidthPt:  spec.widthPt,
			Dash:     dashStyle(spec.style),
			Geometry: edgeGeometry(edge, box),
		})
	}
}

// edgeGeometry returns the zero-thickness segment box for one border side of
// the element, so the emitter can draw it as a line primitive.
func edgeGeometry(edge schemas.BorderEdge, box schemas.Box) schemas.Box {
	switch edge {
	case schemas.EdgeTop:
		return schemas.Box{X: box.X, Y: box.Y, W: box.W, H: 0}
	case schemas.EdgeRight:
		return schemas.Box{X: box.Right(), Y: box.Y, W: 0, H: box.H}
	case schemas.EdgeBottom:
		return schemas.Box{X: box.X, Y: box.Bottom(), W: box.W, H: 0}
	default: // left
		return schemas.Box{X: box.X, Y: box.Y, W: 0, H: box.H}
	}
}

func uniform(sides map[schemas.BorderEdge]borderSpec) bool {
	ref := sides[schemas.EdgeTop]
	for _, spec := range sides {
		if spec.widthPt != ref.widthPt || spec.style != ref.style || spec.color != ref.color {
			return false
		}
	}
	return true
}

// parseBorderShorthand reads "width style color" in any order.
func parseBorderShorthand(value string) borderSpec {
	spec := borderSpec{}
	v := strings.TrimSpace(value)
	if v == "" || strings.EqualFold(v, "none") {
		return spec
	}
	spec.set = true

	for _, field := range splitBorderFields(v) {
		lower := strings.ToLower(field)
		switch lower {
		case "solid", "dashed", "dotted", "double", "none", "hidden":
			spec.style = lower
			continue
		}
		if px, ok := parsePxValue(lower); ok {
			spec.widthPt = px * pxToPt
			if spec.widthPt < minBorderWidthPt {
				spec.widthPt = minBorderWidthPt
			}
			continue
		}
		if hex, _, ok := ParseColor(field); ok {
			spec.color = hex
		}
	}

	if spec.style == "" && (spec.widthPt > 0 || spec.color != "") {
		spec.style = "solid"
	}
	if spec.widthPt == 0 && spec.visible() {
		spec.widthPt = minBorderWidthPt
	}
	return spec
}

// splitBorderFields splits on spaces but keeps rgb()/rgba() tokens intact.
func splitBorderFields(v string) []string {
	var fields []string
	depth := 0
	start := 0
	for i, r := range v {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ' ':
			if depth == 0 {
				if i > start {
					fields = append(fields, v[start:i])
				}
				start = i + 1
			}
		}
	}
	if start < len(v) {
		fields = append(fields, v[start:])
	}
	return fields
}

// parsePxValue reads a pixel length like "4px"; bare numbers count as px.
func parsePxValue(v string) (float64, bool) {
	v = strings.TrimSuffix(v, "px")
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// dashStyle maps CSS border styles onto the emitter's dash attribute.
func dashStyle(style string) string {
	switch style {
	case "dashed":
		return "dash"
	case "dotted":
		return "dot"
	}
	return ""
}

// mapFont extracts the typographic attributes. Font size converts px to
// points at the fixed 0.75 ratio.
func mapFont(styles schemas.StyleMap) schemas.Font {
	f := schemas.Font{Align: mapAlign(styles.Get("text-align"))}

	if family := styles.Get("font-family"); family != "" {
		first := strings.Split(family, ",")[0]
		f.Face = strings.Trim(strings.TrimSpace(first), `'"`)
	}
	if size := strings.TrimSpace(strings.ToLower(styles.Get("font-size"))); size != "" {
		if px, ok := parsePxValue(size); ok {
			f.SizePt = px * pxToPt
		} else if strings.HasSuffix(size, "pt") {
			if pt, err := strconv.ParseFloat(strings.TrimSuffix(size, "pt"), 64); err == nil {
				f.SizePt = pt
			}
		} else if strings.HasSuffix(size, "em") {
			if em, err := strconv.ParseFloat(strings.TrimSuffix(size, "em"), 64); err == nil {
				f.SizePt = em * 16 * pxToPt
			}
		}
	}
	if weight := strings.TrimSpace(styles.Get("font-weight")); weight != "" {
		if weight == "bold" || weight == "bolder" {
			f.Bold = true
		} else if n, err := strconv.Atoi(weight); err == nil && n >= 600 {
			f.Bold = true
		}
	}
	if style := strings.TrimSpace(styles.Get("font-style")); style == "italic" || style == "oblique" {
		f.Italic = true
	}
	if hex, _, ok := ParseColor(styles.Get("color")); ok {
		f.Color = hex
	}
	return f
}

// mapAlign maps text-align to exactly one of the four supported values;
// unrecognized input defaults to left.
func mapAlign(value string) schemas.TextAlign {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "center":
		return schemas.AlignCenter
	case "right", "end":
		return schemas.AlignRight
	case "justify":
		return schemas.AlignJustify
	}
	return schemas.AlignLeft
}
