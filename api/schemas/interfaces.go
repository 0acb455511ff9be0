// File: api/schemas/interfaces.go
// Description: Contracts between the pipeline and its external collaborators.
// Defining them here keeps the pipeline decoupled from the chromedp-backed
// geometry source and the PPTX writer, which is crucial for testability.

package schemas

import "context"

// GeometrySource provides precise per-element bounding boxes and computed
// styles, typically backed by a real rendering engine. When available it
// supersedes the fallback layout simulator entirely.
type GeometrySource interface {
	// Resolve renders the markup and returns the element tree with absolute
	// boxes in inches. A failure is not retried; the caller falls back to
	// simulated layout for the whole run.
	Resolve(ctx context.Context, markup string, opts ConversionOptions) (*ParsedElement, error)
}

// DocumentEmitter serializes a finished primitive tree into the binary
// presentation format.
type DocumentEmitter interface {
	Emit(root *DrawingPrimitive, opts ConversionOptions, log *RunLog) ([]byte, error)
}
