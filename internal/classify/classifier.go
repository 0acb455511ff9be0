// File: internal/classify/classifier.go
// Description: Maps each parsed element to exactly one drawing primitive
// type. The decision order is explicit and total (a default branch always
// exists), so classification is a pure function of (tag, box, style map) and
// can be unit-tested branch by branch.

package classify

import (
	"fmt"
	"strings"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
	"github.com/xkilldash9x/deckforge-cli/internal/styles"
)

// textTags classify directly as text boxes.
var textTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "span": true, "a": true, "label": true,
	"li": true, "blockquote": true, "pre": true, "code": true,
	"b": true, "i": true, "em": true, "strong": true, "small": true,
}

// Classifier turns a parsed element tree into a drawing primitive tree.
type Classifier struct {
	tol schemas.Tolerances
	log *schemas.RunLog
}

// New creates a classifier with the given tolerances, recording diagnostics
// into log.
func New(tol schemas.Tolerances, log *schemas.RunLog) *Classifier {
	return &Classifier{tol: tol, log: log}
}

// Tree classifies the whole element tree, preserving document order.
func (c *Classifier) Tree(root *schemas.ParsedElement) *schemas.DrawingPrimitive {
	if root == nil {
		return nil
	}
	return c.classify(root)
}

func (c *Classifier) classify(el *schemas.ParsedElement) *schemas.DrawingPrimitive {
	prim := &schemas.DrawingPrimitive{
		ID:        el.ID,
		Position:  el.Position,
		Source:    el.Styles,
		SourceTag: el.TagName,
	}

	switch {
	case c.isTable(el):
		prim.Type = schemas.PrimitiveTable
		prim.Table = extractTable(el)
		// Table content is fully captured by TableData; the children are
		// dropped from the general tree walk.
		return prim

	case textTags[el.TagName]:
		prim.Type = schemas.PrimitiveText
		prim.Text = el.TextContent

	case el.TagName == "hr":
		prim.Type = schemas.PrimitiveLine

	case c.isEllipse(el):
		prim.Type = schemas.PrimitiveEllipse

	case hasRoundedCorners(el.Styles):
		prim.Type = schemas.PrimitiveRoundRect

	case c.isTriangle(el):
		prim.Type = schemas.PrimitiveTriangle

	default:
		prim.Type = schemas.PrimitiveRect
	}

	if prim.Type != schemas.PrimitiveText && el.TextContent != "" {
		// The shape itself cannot carry the text; flag it and add a
		// companion overlay so the content survives.
		c.log.Element("text may be lost", schemas.ElementDiagnostic{
			ID:     el.ID,
			Tag:    el.TagName,
			Before: el.Position,
			After:  el.Position,
			Status: schemas.StatusWarning,
			Notes:  fmt.Sprintf("non-text primitive %q carries direct text", prim.Type),
		})
		prim.Children = append(prim.Children, &schemas.DrawingPrimitive{
			ID:        el.ID + "-text",
			Type:      schemas.PrimitiveText,
			Position:  el.Position,
			Text:      el.TextContent,
			Source:    el.Styles,
			SourceTag: el.TagName,
		})
	}

	for _, child := range el.Children {
		prim.Children = append(prim.Children, c.classify(child))
	}
	return prim
}

// isEllipse requires a half border radius and a near-square box.
func (c *Classifier) isEllipse(el *schemas.ParsedElement) bool {
	radius := strings.TrimSpace(el.Styles.Get("border-radius"))
	if radius != "50%" {
		return false
	}
	diff := el.Position.W - el.Position.H
	if diff < 0 {
		diff = -diff
	}
	return diff <= c.tol.EllipseSquareness
}

// hasRoundedCorners reports a positive border radius.
func hasRoundedCorners(m schemas.StyleMap) bool {
	radius := strings.TrimSpace(m.Get("border-radius"))
	if radius == "" || radius == "0" || radius == "0px" || radius == "0%" {
		return false
	}
	return true
}

// isTriangle detects the CSS triangle hack: a near-zero box, no background
// fill and exactly one solid, non-transparent border side. The implied
// pointing direction is recorded for diagnostics only; the primitive model
// does not encode it.
func (c *Classifier) isTriangle(el *schemas.ParsedElement) bool {
	if el.Position.W >= c.tol.TriangleMaxSize || el.Position.H >= c.tol.TriangleMaxSize {
		return false
	}
	// Computed styles report an unset background as rgba(0, 0, 0, 0), so the
	// check has to be alpha-aware rather than a keyword match.
	if bg := el.Styles.Get("background"); !styles.IsTransparent(bg) {
		return false
	}
	if bg := el.Styles.Get("background-color"); !styles.IsTransparent(bg) {
		return false
	}

	side, n := solidBorderSides(el.Styles)
	if n != 1 {
		return false
	}

	// The solid side determines where the triangle points: a solid bottom
	// border renders an upward-pointing triangle, and so on.
	direction := map[string]string{
		"top": "down", "bottom": "up", "left": "right", "right": "left",
	}[side]
	c.log.Element("triangle hack detected", schemas.ElementDiagnostic{
		ID:     el.ID,
		Tag:    el.TagName,
		Before: el.Position,
		After:  el.Position,
		Status: schemas.StatusOK,
		Notes:  fmt.Sprintf("points %s (solid %s border)", direction, side),
	})
	return true
}

// solidBorderSides counts the sides with a solid, visibly colored border and
// returns the last such side name. A zero-alpha border color counts as
// transparent, matching how computed styles spell it.
func solidBorderSides(m schemas.StyleMap) (string, int) {
	side, n := "", 0
	for _, s := range []string{"top", "right", "bottom", "left"} {
		v := m.Get("border-" + s)
		if v == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(v), "solid") || styles.IsTransparent(v) {
			continue
		}
		side = s
		n++
	}
	return side, n
}
