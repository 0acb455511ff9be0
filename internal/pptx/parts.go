// File: internal/pptx/parts.go
// Description: The static OPC container parts of a single-slide deck:
// content types, relationships, presentation, master, layout and theme.
// These are built with etree; only the slide itself carries generated shapes.

package pptx

import (
	"archive/zip"
	"fmt"

	"github.com/beevik/etree"
)

// XML namespace constants.
const (
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRelationships  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsOfficeDocRels  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctRels         = "application/vnd.openxmlformats-package.relationships+xml"

	relTypeOfficeDoc   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeTheme       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
)

// writeDoc serializes an etree document into the zip archive.
func writeDoc(zw *zip.Writer, name string, doc *etree.Document) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("pptx: creating part %s: %w", name, err)
	}
	doc.Indent(2)
	if _, err := doc.WriteTo(f); err != nil {
		return fmt.Errorf("pptx: writing part %s: %w", name, err)
	}
	return nil
}

// writeRaw writes a prebuilt XML string part.
func writeRaw(zw *zip.Writer, name, content string) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("pptx: creating part %s: %w", name, err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		return fmt.Errorf("pptx: writing part %s: %w", name, err)
	}
	return nil
}

func newDoc() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

func writeContentTypes(zw *zip.Writer) error {
	doc := newDoc()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsContentTypes)

	for ext, ct := range map[string]string{"rels": ctRels, "xml": "application/xml"} {
		def := types.CreateElement("Default")
		def.CreateAttr("Extension", ext)
		def.CreateAttr("ContentType", ct)
	}
	for part, ct := range map[string]string{
		"/ppt/presentation.xml":              ctPresentation,
		"/ppt/slides/slide1.xml":             ctSlide,
		"/ppt/slideMasters/slideMaster1.xml": ctSlideMaster,
		"/ppt/slideLayouts/slideLayout1.xml": ctSlideLayout,
		"/ppt/theme/theme1.xml":              ctTheme,
	} {
		ov := types.CreateElement("Override")
		ov.CreateAttr("PartName", part)
		ov.CreateAttr("ContentType", ct)
	}
	return writeDoc(zw, "[Content_Types].xml", doc)
}

// relationship is one entry of a .rels part.
type relationship struct {
	id     string
	rtype  string
	target string
}

func writeRels(zw *zip.Writer, name string, rels []relationship) error {
	doc := newDoc()
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsRelationships)
	for _, r := range rels {
		rel := root.CreateElement("Relationship")
		rel.CreateAttr("Id", r.id)
		rel.CreateAttr("Type", r.rtype)
		rel.CreateAttr("Target", r.target)
	}
	return writeDoc(zw, name, doc)
}

// writePresentation emits ppt/presentation.xml with the slide size in EMU.
func writePresentation(zw *zip.Writer, slideW, slideH float64) error {
	doc := newDoc()
	pres := doc.CreateElement("p:presentation")
	pres.CreateAttr("xmlns:a", nsDrawingML)
	pres.CreateAttr("xmlns:r", nsOfficeDocRels)
	pres.CreateAttr("xmlns:p", nsPresentationML)

	masters := pres.CreateElement("p:sldMasterIdLst")
	master := masters.CreateElement("p:sldMasterId")
	master.CreateAttr("id", "2147483648")
	master.CreateAttr("r:id", "rId1")

	slides := pres.CreateElement("p:sldIdLst")
	slide := slides.CreateElement("p:sldId")
	slide.CreateAttr("id", "256")
	slide.CreateAttr("r:id", "rId2")

	size := pres.CreateElement("p:sldSz")
	size.CreateAttr("cx", fmt.Sprintf("%d", inch(slideW)))
	size.CreateAttr("cy", fmt.Sprintf("%d", inch(slideH)))

	notes := pres.CreateElement("p:notesSz")
	notes.CreateAttr("cx", fmt.Sprintf("%d", inch(slideH)))
	notes.CreateAttr("cy", fmt.Sprintf("%d", inch(slideW)))

	return writeDoc(zw, "ppt/presentation.xml", doc)
}

// slideMasterXML is a minimal but valid master with the standard color map.
const slideMasterXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr/>
    </p:spTree>
  </p:cSld>
  <p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>
  <p:sldLayoutIdLst>
    <p:sldLayoutId id="2147483649" r:id="rId1"/>
  </p:sldLayoutIdLst>
</p:sldMaster>`

const slideLayoutXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="blank">
  <p:cSld name="Blank">
    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr/>
    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sldLayout>`

// themeXML carries the minimal Office theme required by readers.
const themeXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office Theme">
  <a:themeElements>
    <a:clrScheme name="Office">
      <a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>
      <a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>
      <a:dk2><a:srgbClr val="44546A"/></a:dk2>
      <a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>
      <a:accent1><a:srgbClr val="4472C4"/></a:accent1>
      <a:accent2><a:srgbClr val="ED7D31"/></a:accent2>
      <a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>
      <a:accent4><a:srgbClr val="FFC000"/></a:accent4>
      <a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>
      <a:accent6><a:srgbClr val="70AD47"/></a:accent6>
      <a:hlink><a:srgbClr val="0563C1"/></a:hlink>
      <a:folHlink><a:srgbClr val="954F72"/></a:folHlink>
    </a:clrScheme>
    <a:fontScheme name="Office">
      <a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>
      <a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>
    </a:fontScheme>
    <a:fmtScheme name="Office">
      <a:fillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
      </a:fillStyleLst>
      <a:lnStyleLst>
        <a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
        <a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
        <a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
      </a:lnStyleLst>
      <a:effectStyleLst>
        <a:effectStyle><a:effectLst/></a:effectStyle>
        <a:effectStyle><a:effectLst/></a:effectStyle>
        <a:effectStyle><a:effectLst/></a:effectStyle>
      </a:effectStyleLst>
      <a:bgFillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
      </a:bgFillStyleLst>
    </a:fmtScheme>
  </a:themeElements>
</a:theme>`
