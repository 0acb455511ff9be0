// File: internal/postprocess/filter.go
// Description: Decorative-wrapper filtering. Elements that are page chrome or
// implausibly oversized are marked skip and their children spliced into the
// parent in document order. The tree is flattened, content is never deleted.

package postprocess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
)

// ErrEmptyTree indicates filtering removed every element, which is a fatal
// input condition rather than a legitimately blank slide.
var ErrEmptyTree = errors.New("postprocess: decorative filtering emptied the tree")

// wrapperTags are whole-document wrappers, always removed.
var wrapperTags = map[string]bool{"html": true, "body": true}

// FilterDecorative evaluates every node children-first and marks decorative
// wrappers as skip, hoisting their children. The root itself may become skip;
// it then survives only as an invisible container. Returns ErrEmptyTree when
// no drawable primitive remains.
func FilterDecorative(root *schemas.DrawingPrimitive, opts schemas.ConversionOptions, tol schemas.Tolerances, log *schemas.RunLog) error {
	if root == nil {
		return ErrEmptyTree
	}
	opts = opts.Normalize()

	filter(root, opts, tol, log)
	if wrapperTags[root.SourceTag] || isOversized(root, opts, tol) != "" {
		root.Type = schemas.PrimitiveSkip
	}

	drawable := 0
	root.Walk(func(p *schemas.DrawingPrimitive) {
		if p.Type != schemas.PrimitiveSkip {
			drawable++
		}
	})
	if drawable == 0 {
		return ErrEmptyTree
	}
	return nil
}

// filter recurses children-first, then splices out children marked skip.
func filter(p *schemas.DrawingPrimitive, opts schemas.ConversionOptions, tol schemas.Tolerances, log *schemas.RunLog) {
	for _, child := range p.Children {
		filter(child, opts, tol, log)
	}

	spliced := make([]*schemas.DrawingPrimitive, 0, len(p.Children))
	for _, child := range p.Children {
		reason := removalReason(child, opts, tol)
		if reason == "" {
			spliced = append(spliced, child)
			continue
		}
		log.Element("decorative wrapper removed", schemas.ElementDiagnostic{
			ID:     child.ID,
			Tag:    child.SourceTag,
			Before: child.Position,
			After:  child.Position,
			Status: schemas.StatusOK,
			Notes:  reason,
		})
		// Hoist the removed wrapper's children into our position,
		// preserving document order.
		spliced = append(spliced, child.Children...)
	}
	p.Children = spliced
}

// removalReason returns a non-empty description when the node qualifies as a
// decorative wrapper.
func removalReason(p *schemas.DrawingPrimitive, opts schemas.ConversionOptions, tol schemas.Tolerances) string {
	if p.Type == schemas.PrimitiveTable || p.Type == schemas.PrimitiveText {
		// Content primitives are never filtered, only containers.
		return ""
	}
	if wrapperTags[p.SourceTag] {
		return "whole-document wrapper tag"
	}
	if reason := isOversized(p, opts, tol); reason != "" {
		return reason
	}
	if isDecorativeBackdrop(p, opts, tol) {
		return "extreme-radius light backdrop"
	}
	return ""
}

// isOversized applies the two size policies: significantly larger than the
// slide in the exceeding dimension, and far beyond the slide unconditionally.
func isOversized(p *schemas.DrawingPrimitive, opts schemas.ConversionOptions, tol schemas.Tolerances) string {
	wRatio := p.Position.W / opts.SlideWidth
	hRatio := p.Position.H / opts.SlideHeight

	if wRatio >= tol.ExtremeOversizeRatio || hRatio >= tol.ExtremeOversizeRatio {
		return fmt.Sprintf("exceeds slide by %.1fx", max(wRatio, hRatio))
	}
	if wRatio > tol.OversizeRatio || hRatio > tol.OversizeRatio {
		return fmt.Sprintf("significantly oversized (%.1fx slide)", max(wRatio, hRatio))
	}
	return ""
}

// isDecorativeBackdrop detects an extreme border radius combined with a near
// slide-covering, light-gray fill.
func isDecorativeBackdrop(p *schemas.DrawingPrimitive, opts schemas.ConversionOptions, tol schemas.Tolerances) bool {
	radius := parseRadiusPx(p.Source.Get("border-radius"))
	if radius <= tol.DecorativeRadiusPx {
		return false
	}
	if p.Position.W < 0.9*opts.SlideWidth || p.Position.H < 0.9*opts.SlideHeight {
		return false
	}
	return isLightGray(p.Styles.Fill.Color)
}

// parseRadiusPx reads a border radius in CSS pixels; percentages and
// unparseable values yield 0.
func parseRadiusPx(v string) float64 {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" || strings.HasSuffix(v, "%") {
		return 0
	}
	v = strings.TrimSuffix(v, "px")
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return 0
}

// isLightGray accepts near-white, low-saturation fills.
func isLightGray(hex string) bool {
	if len(hex) != 7 || hex[0] != '#' {
		return false
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	lo := min(r, min(g, b))
	hi := max(r, max(g, b))
	return lo >= 0xC0 && hi-lo <= 0x18
}
