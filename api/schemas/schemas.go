// File: api/schemas/schemas.go
// Description: Core data transfer objects shared across the conversion pipeline.
// The parsed element tree is the intermediate representation between the HTML
// front end / geometry resolution and shape classification; everything here is
// plain data with no behavior beyond small accessors.

package schemas

// Box is an absolute rectangle in slide coordinates, measured in inches.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the x coordinate of the box's right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y coordinate of the box's bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// StyleMap is a flat mapping of resolved CSS property name to string value.
// It is captured once per element and treated as immutable afterwards.
type StyleMap map[string]string

// Get returns the value for a property, or "" when absent.
func (m StyleMap) Get(prop string) string {
	if m == nil {
		return ""
	}
	return m[prop]
}

// Has reports whether the property is present with a non-empty value.
func (m StyleMap) Has(prop string) bool {
	return m.Get(prop) != ""
}

// ParsedElement is one node of the resolved DOM tree: tag, own text, resolved
// styles and an absolute bounding box. It is produced either by the fallback
// layout engine or adapted from the accurate geometry source. A parent
// exclusively owns its Children slice; there are no back references.
type ParsedElement struct {
	ID          string           `json:"id"`
	TagName     string           `json:"tag_name"`
	TextContent string           `json:"text_content,omitempty"` // direct text only, not descendant text
	Styles      StyleMap         `json:"styles,omitempty"`
	Position    Box              `json:"position"`
	Children    []*ParsedElement `json:"children,omitempty"`
}

// Walk visits the element and all descendants in document order.
func (e *ParsedElement) Walk(fn func(*ParsedElement)) {
	if e == nil {
		return
	}
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// ConversionOptions is the configuration record accepted with each conversion
// request. PreserveImages, OptimizeShapes and MergeTextBoxes are recognized
// but currently have no effect.
type ConversionOptions struct {
	SlideWidth             float64 `json:"slide_width"`
	SlideHeight            float64 `json:"slide_height"`
	PreferAccurateGeometry bool    `json:"prefer_accurate_geometry"`
	PreserveImages         bool    `json:"preserve_images"`
	OptimizeShapes         bool    `json:"optimize_shapes"`
	MergeTextBoxes         bool    `json:"merge_text_boxes"`
}

// Default slide dimensions (16:9) in inches.
const (
	DefaultSlideWidth  = 13.333
	DefaultSlideHeight = 7.5
)

// DefaultConversionOptions returns the options applied when the caller leaves
// fields unset.
func DefaultConversionOptions() ConversionOptions {
	return ConversionOptions{
		SlideWidth:             DefaultSlideWidth,
		SlideHeight:            DefaultSlideHeight,
		PreferAccurateGeometry: true,
	}
}

// Normalize fills zero-valued dimensions with the defaults.
func (o ConversionOptions) Normalize() ConversionOptions {
	if o.SlideWidth <= 0 {
		o.SlideWidth = DefaultSlideWidth
	}
	if o.SlideHeight <= 0 {
		o.SlideHeight = DefaultSlideHeight
	}
	return o
}

// Tolerances groups the empirically tuned constants used by classification and
// decorative filtering. They are configurable rather than hard invariants; the
// defaults reflect observed behavior and should not be assumed to generalize.
type Tolerances struct {
	// TriangleMaxSize is the box size (inches) below which a borderless,
	// fill-less element is considered a candidate for the CSS triangle hack.
	TriangleMaxSize float64 `json:"triangle_max_size"`
	// EllipseSquareness is the maximum |width-height| (inches) for a
	// half-radius element to classify as an ellipse rather than a rounded rect.
	EllipseSquareness float64 `json:"ellipse_squareness"`
	// DecorativeRadiusPx is the border radius (CSS px) beyond which a near
	// slide covering light fill is treated as a decorative backdrop.
	DecorativeRadiusPx float64 `json:"decorative_radius_px"`
	// OversizeRatio marks an element as decorative when one dimension
	// exceeds the slide by this factor.
	OversizeRatio float64 `json:"oversize_ratio"`
	// ExtremeOversizeRatio removes an element unconditionally when either
	// dimension exceeds the slide by this factor.
	ExtremeOversizeRatio float64 `json:"extreme_oversize_ratio"`
}

// DefaultTolerances returns the tuned defaults.
func DefaultTolerances() Tolerances {
	return Tolerances{
		TriangleMaxSize:      0.05,
		EllipseSquareness:    0.1,
		DecorativeRadiusPx:   500,
		OversizeRatio:        1.5,
		ExtremeOversizeRatio: 2.0,
	}
}
