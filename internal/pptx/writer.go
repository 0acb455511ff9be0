// File: internal/pptx/writer.go
// Description: Assembles the PPTX container from a classified, styled and
// post-processed primitive tree. One run produces one single-slide deck.

package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
	"github.com/xkilldash9x/deckforge-cli/internal/observability"
)

// Writer serializes a primitive tree into an OOXML presentation package.
// It implements schemas.DocumentEmitter.
type Writer struct {
	logger *zap.Logger
}

// NewWriter constructs a document writer.
func NewWriter() *Writer {
	return &Writer{logger: observability.GetLogger().Named("pptx")}
}

// Emit builds the full .pptx zip archive for the given tree. The tree must
// already be positioned in inches; no layout decisions are made here. Any
// part-level failure is fatal for the run, only table serialization degrades
// to the text-cell fallback inside the slide builder.
func (w *Writer) Emit(root *schemas.DrawingPrimitive, opts schemas.ConversionOptions, log *schemas.RunLog) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("emit: nil primitive tree")
	}

	builder := newSlideBuilder(log)
	if err := builder.addTree(root); err != nil {
		return nil, fmt.Errorf("emit: building slide shapes: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	steps := []struct {
		name string
		fn   func(*zip.Writer) error
	}{
		{"content types", writeContentTypes},
		{"package rels", w.writePackageRels},
		{"presentation", func(zw *zip.Writer) error {
			return writePresentation(zw, opts.SlideWidth, opts.SlideHeight)
		}},
		{"presentation rels", w.writePresentationRels},
		{"slide master", w.writeSlideMaster},
		{"slide layout", w.writeSlideLayout},
		{"theme", func(zw *zip.Writer) error {
			return writeRaw(zw, "ppt/theme/theme1.xml", themeXML)
		}},
		{"slide", func(zw *zip.Writer) error {
			return w.writeSlide(zw, builder)
		}},
	}
	for _, step := range steps {
		if err := step.fn(zw); err != nil {
			return nil, fmt.Errorf("emit: writing %s: %w", step.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("emit: closing archive: %w", err)
	}

	w.logger.Debug("presentation assembled",
		zap.Int("bytes", buf.Len()),
		zap.Int("shapes", builder.shapeID-1))
	return buf.Bytes(), nil
}

func (w *Writer) writePackageRels(zw *zip.Writer) error {
	return writeRels(zw, "_rels/.rels", []relationship{
		{id: "rId1", rtype: relTypeOfficeDoc, target: "ppt/presentation.xml"},
	})
}

func (w *Writer) writePresentationRels(zw *zip.Writer) error {
	return writeRels(zw, "ppt/_rels/presentation.xml.rels", []relationship{
		{id: "rId1", rtype: relTypeSlideMaster, target: "slideMasters/slideMaster1.xml"},
		{id: "rId2", rtype: relTypeSlide, target: "slides/slide1.xml"},
	})
}

func (w *Writer) writeSlideMaster(zw *zip.Writer) error {
	if err := writeRaw(zw, "ppt/slideMasters/slideMaster1.xml", slideMasterXML); err != nil {
		return err
	}
	return writeRels(zw, "ppt/slideMasters/_rels/slideMaster1.xml.rels", []relationship{
		{id: "rId1", rtype: relTypeSlideLayout, target: "../slideLayouts/slideLayout1.xml"},
		{id: "rId2", rtype: relTypeTheme, target: "../theme/theme1.xml"},
	})
}

func (w *Writer) writeSlideLayout(zw *zip.Writer) error {
	if err := writeRaw(zw, "ppt/slideLayouts/slideLayout1.xml", slideLayoutXML); err != nil {
		return err
	}
	return writeRels(zw, "ppt/slideLayouts/_rels/slideLayout1.xml.rels", []relationship{
		{id: "rId1", rtype: relTypeSlideMaster, target: "../slideMasters/slideMaster1.xml"},
	})
}

func (w *Writer) writeSlide(zw *zip.Writer, builder *slideBuilder) error {
	slide := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:overrideClrMapping bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>
  </p:clrMapOvr>
</p:sld>
`, nsDrawingML, nsOfficeDocRels, nsPresentationML, builder.shapes.String())

	if err := writeRaw(zw, "ppt/slides/slide1.xml", slide); err != nil {
		return err
	}
	return writeRels(zw, "ppt/slides/_rels/slide1.xml.rels", []relationship{
		{id: "rId1", rtype: relTypeSlideLayout, target: "../slideLayouts/slideLayout1.xml"},
	})
}
