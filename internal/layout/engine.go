// File: internal/layout/engine.go
// Description: The fallback layout simulator. Given only each element's own
// declared styles and an ancestor-context stack, it assigns every element an
// absolute box in slide coordinates (inches). It approximates block/inline
// flow and static/relative/absolute/fixed positioning; it is used only when
// the accurate geometry source is unavailable and makes no attempt at
// pixel-perfect agreement with a real browser.

package layout

import (
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
)

// Context is one entry of the positioning-context stack: the coordinate
// origin of a container being flowed, plus its flow cursor.
type Context struct {
	OriginX              float64
	OriginY              float64
	CumulativeX          float64
	CumulativeY          float64
	IsPositioningContext bool
}

// contextStack is the explicit ancestor-context stack. Invariant: it always
// holds at least the root/document context; Pop never removes the floor
// entry.
type contextStack struct {
	items []Context
}

func newContextStack(root Context) *contextStack {
	return &contextStack{items: []Context{root}}
}

func (s *contextStack) Push(c Context) { s.items = append(s.items, c) }

// Pop removes the top context. The floor entry is never removed.
func (s *contextStack) Pop() {
	if len(s.items) > 1 {
		s.items = s.items[:len(s.items)-1]
	}
}

// Top returns a pointer to the current context so flow cursors can advance.
func (s *contextStack) Top() *Context { return &s.items[len(s.items)-1] }

// Root returns the document context (the floor entry).
func (s *contextStack) Root() Context { return s.items[0] }

// NearestPositioned walks from the top of the stack down and returns the
// closest positioning context, falling back to the root.
func (s *contextStack) NearestPositioned() Context {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].IsPositioningContext {
			return s.items[i]
		}
	}
	return s.items[0]
}

func (s *contextStack) Depth() int { return len(s.items) }

// inlineTags are laid out along the inline axis in static flow.
var inlineTags = map[string]bool{
	"span": true, "a": true, "b": true, "i": true, "em": true,
	"strong": true, "small": true, "code": true, "label": true,
	"img": true, "button": true, "input": true, "select": true,
}

// Engine simulates box flow for one conversion run. It holds no mutable
// per-run state itself; the context stack lives on the call path.
type Engine struct {
	slideW float64
	slideH float64
	logger *zap.Logger
}

// NewEngine creates a layout engine for the given slide dimensions.
func NewEngine(opts schemas.ConversionOptions, logger *zap.Logger) *Engine {
	opts = opts.Normalize()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		slideW: opts.SlideWidth,
		slideH: opts.SlideHeight,
		logger: logger.Named("layout"),
	}
}

// Solve assigns an absolute Position to the root and every descendant,
// preserving source document order throughout.
func (e *Engine) Solve(root *schemas.ParsedElement) {
	if root == nil {
		return
	}

	// The root (body) covers the slide unless it declares its own size.
	w, h := e.resolveSize(root)
	if !root.Styles.Has("width") {
		w = e.slideW
	}
	if !root.Styles.Has("height") {
		h = e.slideH
	}
	root.Position = schemas.Box{X: 0, Y: 0, W: w, H: h}

	stack := newContextStack(Context{IsPositioningContext: true})
	e.layoutChildren(root, stack)
}

// layoutChildren flows the container's children inside the current context.
func (e *Engine) layoutChildren(parent *schemas.ParsedElement, stack *contextStack) {
	pt, _, _, pl := edgeValues(parent.Styles, "padding")

	ctx := Context{
		OriginX:              parent.Position.X + pl,
		OriginY:              parent.Position.Y + pt,
		IsPositioningContext: isPositioned(parent.Styles),
	}
	stack.Push(ctx)
	defer stack.Pop()

	for _, child := range parent.Children {
		e.layoutElement(child, stack)
		if len(child.Children) > 0 {
			e.layoutChildren(child, stack)
		}
	}
}

// layoutElement resolves one element's box against the current context.
func (e *Engine) layoutElement(el *schemas.ParsedElement, stack *contextStack) {
	w, h := e.resolveSize(el)
	mt, mr, mb, ml := edgeValues(el.Styles, "margin")

	position := strings.ToLower(strings.TrimSpace(el.Styles.Get("position")))
	switch position {
	case "absolute":
		el.Position = e.placeAnchored(el, stack.NearestPositioned(), w, h)
	case "fixed":
		el.Position = e.placeAnchored(el, stack.Root(), w, h)
	default:
		// static, relative and sticky all start from flow position.
		ctx := stack.Top()
		x := ctx.OriginX + ctx.CumulativeX + ml
		y := ctx.OriginY + ctx.CumulativeY + mt

		if isInline(el) {
			ctx.CumulativeX += ml + w + mr
		} else {
			// One flow axis is active at a time: a block element resets
			// the inline cursor.
			ctx.CumulativeY += mt + h + mb
			ctx.CumulativeX = 0
		}

		if position == "relative" || position == "sticky" {
			x, y = applyRelativeOffsets(el.Styles, x, y)
		}
		el.Position = schemas.Box{X: x, Y: y, W: w, H: h}
	}
}

// placeAnchored positions an absolute or fixed element against an anchor
// context. When only right/bottom offsets are given, the opposite edge is
// computed from the slide dimensions as an assumed container size; the true
// containing-block size is unrecoverable without the real geometry source.
func (e *Engine) placeAnchored(el *schemas.ParsedElement, anchor Context, w, h float64) schemas.Box {
	x := anchor.OriginX
	y := anchor.OriginY

	if v, ok := parseDimension(el.Styles.Get("left"), ReferenceWidthPx); ok {
		x += v
	} else if v, ok := parseDimension(el.Styles.Get("right"), ReferenceWidthPx); ok {
		x += e.slideW - v - w
	}

	if v, ok := parseDimension(el.Styles.Get("top"), ReferenceWidthPx); ok {
		y += v
	} else if v, ok := parseDimension(el.Styles.Get("bottom"), ReferenceWidthPx); ok {
		y += e.slideH - v - h
	}

	return schemas.Box{X: x, Y: y, W: w, H: h}
}

// applyRelativeOffsets shifts a flow position by top/left (additive) or
// bottom/right (subtractive) offsets.
func applyRelativeOffsets(styles schemas.StyleMap, x, y float64) (float64, float64) {
	if v, ok := parseDimension(styles.Get("left"), ReferenceWidthPx); ok {
		x += v
	} else if v, ok := parseDimension(styles.Get("right"), ReferenceWidthPx); ok {
		x -= v
	}
	if v, ok := parseDimension(styles.Get("top"), ReferenceWidthPx); ok {
		y += v
	} else if v, ok := parseDimension(styles.Get("bottom"), ReferenceWidthPx); ok {
		y -= v
	}
	return x, y
}

// resolveSize resolves width/height in priority order: declared size, then
// the tag default table. Declared and computed sizes collapse into one lookup
// because the style map is already CSS-resolved.
func (e *Engine) resolveSize(el *schemas.ParsedElement) (w, h float64) {
	defW, defH := defaultSizeInches(el.TagName)

	w = defW
	if v, ok := parseDimension(el.Styles.Get("width"), ReferenceWidthPx); ok {
		w = v
	}
	h = defH
	if v, ok := parseDimension(el.Styles.Get("height"), ReferenceWidthPx); ok {
		h = v
	}
	return w, h
}

// isInline reports whether the element participates in inline flow.
func isInline(el *schemas.ParsedElement) bool {
	display := strings.ToLower(strings.TrimSpace(el.Styles.Get("display")))
	switch display {
	case "inline", "inline-block", "inline-flex":
		return true
	case "block", "flex", "grid", "table", "list-item":
		return false
	}
	return inlineTags[el.TagName]
}

// isPositioned reports whether an element establishes a positioning context
// for absolutely positioned descendants.
func isPositioned(styles schemas.StyleMap) bool {
	switch strings.ToLower(strings.TrimSpace(styles.Get("position"))) {
	case "relative", "absolute", "fixed", "sticky":
		return true
	}
	return false
}
