// File: internal/postprocess/scale.go
// Description: Proportional auto-scale-to-fit. When the content envelope
// exceeds the slide in either axis, every primitive's position and font size
// shrink uniformly about the envelope origin. A 50% floor is a deliberate
// good-enough limit; beyond it the overflow is reported but left unresolved.

package postprocess

import (
	"fmt"
	"math"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
)

const (
	// minScale is the uniform scale floor.
	minScale = 0.5
	// minFontPt floors scaled font sizes.
	minFontPt = 6.0
)

// CalculateScale returns the uniform scale for a content envelope of the
// given size, always in [minScale, 1]. Content that already fits yields
// exactly 1.
func CalculateScale(contentW, contentH, slideW, slideH float64) float64 {
	if contentW <= 0 || contentH <= 0 {
		return 1
	}
	scale := math.Min(1, math.Min(slideW/contentW, slideH/contentH))
	return math.Max(minScale, scale)
}

// Envelope computes the union bounding box of all drawable primitive
// geometry. Table-internal content is excluded because a table's own box
// already represents its full extent.
func Envelope(root *schemas.DrawingPrimitive) (schemas.Box, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false

	root.Walk(func(p *schemas.DrawingPrimitive) {
		if p.Type == schemas.PrimitiveSkip {
			return
		}
		found = true
		minX = math.Min(minX, p.Position.X)
		minY = math.Min(minY, p.Position.Y)
		maxX = math.Max(maxX, p.Position.Right())
		maxY = math.Max(maxY, p.Position.Bottom())
	})

	if !found {
		return schemas.Box{}, false
	}
	return schemas.Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}

// ScaleToFit shrinks the primitive tree uniformly when its envelope exceeds
// the slide. Positions scale relative to the envelope's own origin, not the
// slide origin. Per-element before/after geometry is recorded in the log; an
// element still out of bounds after scaling is recorded at error status.
func ScaleToFit(root *schemas.DrawingPrimitive, opts schemas.ConversionOptions, log *schemas.RunLog) {
	opts = opts.Normalize()

	env, ok := Envelope(root)
	if !ok {
		return
	}
	if env.W <= opts.SlideWidth && env.H <= opts.SlideHeight {
		return
	}

	scale := CalculateScale(env.W, env.H, opts.SlideWidth, opts.SlideHeight)
	if scale >= 1 {
		return
	}
	log.Warning(fmt.Sprintf("content %.2fx%.2fin exceeds slide, scaling by %.3f", env.W, env.H, scale))

	root.Walk(func(p *schemas.DrawingPrimitive) {
		if p.Type == schemas.PrimitiveSkip {
			return
		}
		before := p.Position
		p.Position = scaleBox(p.Position, env, scale)

		if p.Styles.Font.SizePt > 0 {
			p.Styles.Font.SizePt = math.Max(minFontPt, p.Styles.Font.SizePt*scale)
		}
		if p.Styles.Outline != nil && p.Styles.Outline.WidthPt > 0 {
			p.Styles.Outline.WidthPt = math.Max(1, p.Styles.Outline.WidthPt*scale)
		}
		for i := range p.Styles.Borders {
			p.Styles.Borders[i].Geometry = scaleBox(p.Styles.Borders[i].Geometry, env, scale)
		}

		status := schemas.StatusOK
		notes := ""
		if len(violatedEdges(p.Position, opts)) > 0 {
			status = schemas.StatusError
			notes = "still out of bounds at scale floor"
		}
		log.Element("element scaled", schemas.ElementDiagnostic{
			ID:     p.ID,
			Tag:    p.SourceTag,
			Before: before,
			After:  p.Position,
			Status: status,
			Notes:  notes,
		})
	})
}

// scaleBox scales a box about the envelope origin.
func scaleBox(b, env schemas.Box, scale float64) schemas.Box {
	return schemas.Box{
		X: env.X + (b.X-env.X)*scale,
		Y: env.Y + (b.Y-env.Y)*scale,
		W: b.W * scale,
		H: b.H * scale,
	}
}
