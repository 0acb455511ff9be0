// File: internal/pptx/slide.go
// Description: DrawingML generation for the primitive tree. Shapes, lines and
// tables are written with a string builder; skip nodes contribute nothing
// themselves but their children are still emitted.

package pptx

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
)

// presetGeometries maps primitive types onto DrawingML preset names.
var presetGeometries = map[schemas.PrimitiveType]string{
	schemas.PrimitiveRect:      "rect",
	schemas.PrimitiveRoundRect: "roundRect",
	schemas.PrimitiveEllipse:   "ellipse",
	schemas.PrimitiveTriangle:  "triangle",
}

// slideBuilder accumulates shape XML for one slide.
type slideBuilder struct {
	shapes  strings.Builder
	shapeID int
	log     *schemas.RunLog
}

func newSlideBuilder(log *schemas.RunLog) *slideBuilder {
	// Shape id 1 is reserved for the slide's group shape.
	return &slideBuilder{shapeID: 1, log: log}
}

func (b *slideBuilder) nextID() int {
	b.shapeID++
	return b.shapeID
}

// addTree emits the primitive and its descendants in document order.
func (b *slideBuilder) addTree(p *schemas.DrawingPrimitive) error {
	if p == nil {
		return nil
	}
	if err := b.addPrimitive(p); err != nil {
		return err
	}
	for _, child := range p.Children {
		if err := b.addTree(child); err != nil {
			return err
		}
	}
	return nil
}

func (b *slideBuilder) addPrimitive(p *schemas.DrawingPrimitive) error {
	switch p.Type {
	case schemas.PrimitiveSkip:
		return nil
	case schemas.PrimitiveLine:
		b.writeLine(p.Position, lineFromStyle(p.Styles), p.ID)
	case schemas.PrimitiveText:
		b.writeTextBox(p)
	case schemas.PrimitiveTable:
		if err := b.writeTable(p); err != nil {
			// Documented fallback: render the table as independent
			// positioned text cells rather than failing the run.
			b.log.Warning(fmt.Sprintf("table %s could not be serialized natively, rendering as text cells: %v", p.ID, err))
			b.writeTableAsTextCells(p)
		}
	default:
		b.writeShape(p)
	}

	// Non-uniform borders become independent line segments on top of the
	// shape they belong to.
	for _, side := range p.Styles.Borders {
		b.writeLine(side.Geometry, &schemas.Line{
			Color:   side.Color,
			WidthPt: side.WidthPt,
			Dash:    side.Dash,
		}, fmt.Sprintf("%s-border-%s", p.ID, side.Edge))
	}
	return nil
}

// writeShape emits a p:sp with preset geometry, fill and uniform outline.
func (b *slideBuilder) writeShape(p *schemas.DrawingPrimitive) {
	id := b.nextID()
	preset := presetGeometries[p.Type]
	if preset == "" {
		preset = "rect"
	}

	// An element without a resolved background is transparent, not
	// theme-filled.
	fill := fillXML(p.Styles)
	if fill == "" {
		fill = "          <a:noFill/>\n"
	}

	fmt.Fprintf(&b.shapes, `      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="%s">
            <a:avLst/>
          </a:prstGeom>
%s%s        </p:spPr>
      </p:sp>
`, id, escape(p.ID),
		inch(p.Position.X), inch(p.Position.Y),
		inch(p.Position.W), inch(p.Position.H),
		preset,
		fill, outlineXML(p.Styles.Outline))
}

// writeTextBox emits a non-filled text shape with mapped font attributes.
func (b *slideBuilder) writeTextBox(p *schemas.DrawingPrimitive) {
	id := b.nextID()

	fill := fillXML(p.Styles)
	if fill == "" {
		fill = "          <a:noFill/>\n"
	}

	fmt.Fprintf(&b.shapes, `      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
%s        </p:spPr>
        <p:txBody>
          <a:bodyPr wrap="square"/>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, id, escape(p.ID),
		inch(p.Position.X), inch(p.Position.Y),
		inch(p.Position.W), inch(p.Position.H),
		fill,
		paragraphXML(p.Text, p.Styles.Font))
}

// writeLine emits a p:cxnSp connector for hr primitives and border segments.
func (b *slideBuilder) writeLine(box schemas.Box, line *schemas.Line, name string) {
	id := b.nextID()

	color := "000000"
	widthPt := 1.0
	dash := ""
	if line != nil {
		if line.Color != "" {
			color = strings.TrimPrefix(line.Color, "#")
		}
		if line.WidthPt > 0 {
			widthPt = line.WidthPt
		}
		dash = line.Dash
	}

	dashXML := ""
	if dash != "" {
		dashXML = fmt.Sprintf("\n            <a:prstDash val=\"%s\"/>", dash)
	}

	fmt.Fprintf(&b.shapes, `      <p:cxnSp>
        <p:nvCxnSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvCxnSpPr/>
          <p:nvPr/>
        </p:nvCxnSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="line">
            <a:avLst/>
          </a:prstGeom>
          <a:ln w="%d">
            <a:solidFill>
              <a:srgbClr val="%s"/>
            </a:solidFill>%s
          </a:ln>
        </p:spPr>
      </p:cxnSp>
`, id, escape(name),
		inch(box.X), inch(box.Y), inch(box.W), inch(box.H),
		point(widthPt), color, dashXML)
}

// writeTable emits a graphicFrame with a native a:tbl.
func (b *slideBuilder) writeTable(p *schemas.DrawingPrimitive) error {
	t := p.Table
	if t == nil || t.NumCols <= 0 || len(t.Rows) == 0 {
		return fmt.Errorf("table %s has no grid data", p.ID)
	}
	for i, row := range t.Rows {
		if len(row.Cells) != t.NumCols {
			return fmt.Errorf("table %s row %d has %d cells, want %d", p.ID, i, len(row.Cells), t.NumCols)
		}
	}

	id := b.nextID()
	colWidth := inch(p.Position.W) / int64(t.NumCols)
	rowHeight := inch(p.Position.H) / int64(len(t.Rows))

	var grid strings.Builder
	for i := 0; i < t.NumCols; i++ {
		fmt.Fprintf(&grid, "                <a:gridCol w=\"%d\"/>\n", colWidth)
	}

	var rows strings.Builder
	for _, row := range t.Rows {
		fmt.Fprintf(&rows, "                <a:tr h=\"%d\">\n", rowHeight)
		for _, cell := range row.Cells {
			rows.WriteString(tableCellXML(cell))
		}
		rows.WriteString("                </a:tr>\n")
	}

	fmt.Fprintf(&b.shapes, `      <p:graphicFrame>
        <p:nvGraphicFramePr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvGraphicFramePr>
            <a:graphicFrameLocks noGrp="1"/>
          </p:cNvGraphicFramePr>
          <p:nvPr/>
        </p:nvGraphicFramePr>
        <p:xfrm>
          <a:off x="%d" y="%d"/>
          <a:ext cx="%d" cy="%d"/>
        </p:xfrm>
        <a:graphic>
          <a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">
            <a:tbl>
              <a:tblPr firstRow="1" bandRow="1"/>
              <a:tblGrid>
%s              </a:tblGrid>
%s            </a:tbl>
          </a:graphicData>
        </a:graphic>
      </p:graphicFrame>
`, id, escape(p.ID),
		inch(p.Position.X), inch(p.Position.Y),
		inch(p.Position.W), inch(p.Position.H),
		grid.String(), rows.String())
	return nil
}

func tableCellXML(cell schemas.TableCell) string {
	boldAttr := ""
	if cell.IsHeader {
		boldAttr = ` b="1"`
	}
	return fmt.Sprintf(`                  <a:tc>
                    <a:txBody>
                      <a:bodyPr/>
                      <a:lstStyle/>
                      <a:p>
                        <a:r>
                          <a:rPr lang="en-US"%s dirty="0"/>
                          <a:t>%s</a:t>
                        </a:r>
                      </a:p>
                    </a:txBody>
                    <a:tcPr/>
                  </a:tc>
`, boldAttr, escape(cell.Text))
}

// writeTableAsTextCells is the loss-minimizing fallback when native table
// serialization is not possible: each cell becomes its own positioned text
// box within the table's original footprint.
func (b *slideBuilder) writeTableAsTextCells(p *schemas.DrawingPrimitive) {
	t := p.Table
	if t == nil || t.NumCols == 0 || len(t.Rows) == 0 {
		return
	}
	cellW := p.Position.W / float64(t.NumCols)
	cellH := p.Position.H / float64(len(t.Rows))

	for r, row := range t.Rows {
		for c, cell := range row.Cells {
			if cell.Text == "" {
				continue
			}
			font := schemas.Font{Bold: cell.IsHeader, Align: schemas.AlignLeft}
			b.writeTextBox(&schemas.DrawingPrimitive{
				ID:   fmt.Sprintf("%s-cell-%d-%d", p.ID, r, c),
				Type: schemas.PrimitiveText,
				Position: schemas.Box{
					X: p.Position.X + float64(c)*cellW,
					Y: p.Position.Y + float64(r)*cellH,
					W: cellW,
					H: cellH,
				},
				Text:   cell.Text,
				Styles: schemas.DrawingStyle{Font: font},
			})
		}
	}
}

// lineFromStyle derives the stroke for a line primitive. Rules like
// "hr { background-color: ... }" color the rule itself, so the fill color
// stands in when no explicit outline was mapped.
func lineFromStyle(style schemas.DrawingStyle) *schemas.Line {
	if style.Outline != nil {
		return style.Outline
	}
	if style.Fill.Color != "" {
		return &schemas.Line{Color: style.Fill.Color, WidthPt: 1.0}
	}
	return nil
}

// fillXML renders a solid or gradient fill, with fill opacity as alpha.
func fillXML(style schemas.DrawingStyle) string {
	fill := style.Fill
	if fill.IsZero() {
		return ""
	}

	if g := fill.Gradient; g != nil && len(g.Stops) > 0 {
		var stops strings.Builder
		for _, stop := range g.Stops {
			fmt.Fprintf(&stops, `              <a:gs pos="%d"><a:srgbClr val="%s"/></a:gs>
`, int(stop.Position*1000), strings.TrimPrefix(stop.Color, "#"))
		}
		shade := fmt.Sprintf(`<a:lin ang="%d" scaled="1"/>`, angle60k(g.AngleDegrees))
		if g.Radial {
			shade = `<a:path path="circle"><a:fillToRect l="50000" t="50000" r="50000" b="50000"/></a:path>`
		}
		return fmt.Sprintf(`          <a:gradFill>
            <a:gsLst>
%s            </a:gsLst>
            %s
          </a:gradFill>
`, stops.String(), shade)
	}

	alphaXML := ""
	opacity := style.FillOpacity
	if opacity == 0 && style.Opacity > 0 {
		opacity = style.Opacity
	}
	if opacity > 0 && opacity < 1 {
		alphaXML = fmt.Sprintf(`<a:alpha val="%d"/>`, int(opacity*100000))
	}
	return fmt.Sprintf("          <a:solidFill><a:srgbClr val=\"%s\">%s</a:srgbClr></a:solidFill>\n",
		strings.TrimPrefix(fill.Color, "#"), alphaXML)
}

// outlineXML renders the uniform border stroke.
func outlineXML(line *schemas.Line) string {
	if line == nil {
		return ""
	}
	dashXML := ""
	if line.Dash != "" {
		dashXML = fmt.Sprintf(`<a:prstDash val="%s"/>`, line.Dash)
	}
	return fmt.Sprintf("          <a:ln w=\"%d\"><a:solidFill><a:srgbClr val=\"%s\"/></a:solidFill>%s</a:ln>\n",
		point(line.WidthPt), strings.TrimPrefix(line.Color, "#"), dashXML)
}

// paragraphXML renders one paragraph with the mapped font attributes.
func paragraphXML(text string, font schemas.Font) string {
	alignAttr := ""
	switch font.Align {
	case schemas.AlignCenter:
		alignAttr = ` algn="ctr"`
	case schemas.AlignRight:
		alignAttr = ` algn="r"`
	case schemas.AlignJustify:
		alignAttr = ` algn="just"`
	}

	var attrs strings.Builder
	if font.SizePt > 0 {
		fmt.Fprintf(&attrs, ` sz="%d"`, int(font.SizePt*100))
	}
	if font.Bold {
		attrs.WriteString(` b="1"`)
	}
	if font.Italic {
		attrs.WriteString(` i="1"`)
	}

	colorXML := ""
	if font.Color != "" {
		colorXML = fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, strings.TrimPrefix(font.Color, "#"))
	}
	faceXML := ""
	if font.Face != "" {
		faceXML = fmt.Sprintf(`<a:latin typeface="%s"/>`, escape(font.Face))
	}

	return fmt.Sprintf(`          <a:p>
            <a:pPr%s/>
            <a:r>
              <a:rPr lang="en-US"%s dirty="0">%s%s</a:rPr>
              <a:t>%s</a:t>
            </a:r>
          </a:p>
`, alignAttr, attrs.String(), colorXML, faceXML, escape(text))
}

// escape escapes special XML characters using the standard library.
func escape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
