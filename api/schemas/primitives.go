// File: api/schemas/primitives.go
// Description: The classified output model. Every DOM element becomes exactly
// one DrawingPrimitive; the Type discriminator decides which optional payloads
// (Text, Table) are meaningful. A flat struct with a tag keeps serialization
// simple and avoids a subclass hierarchy.

package schemas

// PrimitiveType discriminates the drawing primitive variants.
type PrimitiveType string

const (
	PrimitiveRect      PrimitiveType = "rect"
	PrimitiveRoundRect PrimitiveType = "roundRect"
	PrimitiveEllipse   PrimitiveType = "ellipse"
	PrimitiveTriangle  PrimitiveType = "triangle"
	PrimitiveLine      PrimitiveType = "line"
	PrimitiveText      PrimitiveType = "text"
	PrimitiveTable     PrimitiveType = "table"
	// PrimitiveSkip marks a node whose own box is elided while its children
	// are hoisted into the parent. Used for filtered decorative wrappers.
	PrimitiveSkip PrimitiveType = "skip"
)

// DrawingPrimitive is one native shape/text/table element of the output
// presentation. Invariant: a node with Type == PrimitiveTable owns no
// independent Children; its content is fully captured by Table.
type DrawingPrimitive struct {
	ID       string              `json:"id"`
	Type     PrimitiveType       `json:"type"`
	Position Box                 `json:"position"`
	Styles   DrawingStyle        `json:"styles"`
	Text     string              `json:"text,omitempty"`
	Table    *TableData          `json:"table,omitempty"`
	Children []*DrawingPrimitive `json:"children,omitempty"`

	// Source carries the element's raw style map between classification and
	// style mapping; SourceTag keeps the originating tag for the decorative
	// filter. Neither is part of the serialized primitive.
	Source    StyleMap `json:"-"`
	SourceTag string   `json:"-"`
}

// Walk visits the primitive and all descendants in document order.
func (p *DrawingPrimitive) Walk(fn func(*DrawingPrimitive)) {
	if p == nil {
		return
	}
	fn(p)
	for _, c := range p.Children {
		c.Walk(fn)
	}
}

// TableData captures the row/column content of a table primitive.
// Invariant: every row is padded to exactly NumCols cells.
type TableData struct {
	Rows    []TableRow `json:"rows"`
	NumCols int        `json:"num_cols"`
}

// TableRow is one row of table cells.
type TableRow struct {
	Cells []TableCell `json:"cells"`
}

// TableCell is a single table cell with its own resolved styles.
type TableCell struct {
	Text     string   `json:"text"`
	IsHeader bool     `json:"is_header"`
	Styles   StyleMap `json:"styles,omitempty"`
}

// -- Drawing style model --

// GradientStop is one color stop of a gradient fill. Position is a percentage
// along the gradient axis in [0,100].
type GradientStop struct {
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

// Gradient describes a linear or radial gradient fill. Radial gradients carry
// AngleDegrees == 0 and Radial == true.
type Gradient struct {
	Stops        []GradientStop `json:"stops"`
	AngleDegrees float64        `json:"angle_degrees"`
	Radial       bool           `json:"radial,omitempty"`
}

// Fill is either a solid color or a gradient; exactly one is set.
type Fill struct {
	Color    string    `json:"color,omitempty"` // normalized #RRGGBB
	Gradient *Gradient `json:"gradient,omitempty"`
}

// IsZero reports whether no fill was resolved.
func (f Fill) IsZero() bool { return f.Color == "" && f.Gradient == nil }

// Line describes the outline stroke used when all four border sides agree.
type Line struct {
	Color   string  `json:"color"`
	WidthPt float64 `json:"width_pt"`
	Dash    string  `json:"dash,omitempty"` // "", "dash" or "dot"
}

// BorderEdge names one side of an element box.
type BorderEdge string

const (
	EdgeTop    BorderEdge = "top"
	EdgeRight  BorderEdge = "right"
	EdgeBottom BorderEdge = "bottom"
	EdgeLeft   BorderEdge = "left"
)

// BorderSide is one independently drawn border segment of a non-uniform
// border. Geometry is the segment's own box, computed from the element edges,
// so the emitter can draw it as a separate line primitive.
type BorderSide struct {
	Edge     BorderEdge `json:"edge"`
	Color    string     `json:"color"`
	WidthPt  float64    `json:"width_pt"`
	Dash     string     `json:"dash,omitempty"`
	Geometry Box        `json:"geometry"`
}

// TextAlign is the mapped paragraph alignment.
type TextAlign string

const (
	AlignLeft    TextAlign = "left"
	AlignCenter  TextAlign = "center"
	AlignRight   TextAlign = "right"
	AlignJustify TextAlign = "justify"
)

// Font carries the mapped typographic attributes. SizePt is points.
type Font struct {
	Face   string    `json:"face,omitempty"`
	SizePt float64   `json:"size_pt,omitempty"`
	Bold   bool      `json:"bold,omitempty"`
	Italic bool      `json:"italic,omitempty"`
	Color  string    `json:"color,omitempty"`
	Align  TextAlign `json:"align,omitempty"`
}

// DrawingStyle is the native attribute set of a drawing primitive, produced by
// the style mapper from a StyleMap.
type DrawingStyle struct {
	Fill        Fill         `json:"fill,omitempty"`
	FillOpacity float64      `json:"fill_opacity,omitempty"` // 0 means opaque (unset)
	Outline     *Line        `json:"outline,omitempty"`      // uniform border
	Borders     []BorderSide `json:"borders,omitempty"`      // non-uniform border
	Font        Font         `json:"font,omitempty"`
	Opacity     float64      `json:"opacity,omitempty"` // element-level opacity, 0 = unset
}
