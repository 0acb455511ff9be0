// File: internal/postprocess/bounds.go
// Description: Bounds auditing. Walks the parsed tree before filtering and
// records which slide edges each out-of-bounds element violates. Purely
// diagnostic; geometry is never mutated here.

package postprocess

import (
	"fmt"
	"strings"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
)

// AuditBounds records a warning-status element entry for every element whose
// box extends outside the configured slide.
func AuditBounds(root *schemas.ParsedElement, opts schemas.ConversionOptions, log *schemas.RunLog) {
	opts = opts.Normalize()
	violations := 0

	root.Walk(func(el *schemas.ParsedElement) {
		edges := violatedEdges(el.Position, opts)
		if len(edges) == 0 {
			return
		}
		violations++
		log.Element("element outside slide bounds", schemas.ElementDiagnostic{
			ID:     el.ID,
			Tag:    el.TagName,
			Before: el.Position,
			After:  el.Position,
			Status: schemas.StatusWarning,
			Notes:  fmt.Sprintf("violates %s edge(s)", strings.Join(edges, ", ")),
		})
	})

	if violations > 0 {
		log.Warning(fmt.Sprintf("%d element(s) outside %gx%g slide before scaling", violations, opts.SlideWidth, opts.SlideHeight))
	}
}

// violatedEdges names the slide edges the box crosses.
func violatedEdges(box schemas.Box, opts schemas.ConversionOptions) []string {
	var edges []string
	if box.X < 0 {
		edges = append(edges, "left")
	}
	if box.Y < 0 {
		edges = append(edges, "top")
	}
	if box.Right() > opts.SlideWidth {
		edges = append(edges, "right")
	}
	if box.Bottom() > opts.SlideHeight {
		edges = append(edges, "bottom")
	}
	return edges
}
