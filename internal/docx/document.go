// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/pdiddy/escriba/internal/assemble"
	"github.com/pdiddy/escriba/pkg/types"
)

// documentXML builds word/document.xml from the block sequence. Every
// ordering and indentation decision was made by assemble; this layer only
// translates blocks to WordprocessingML.
func documentXML(blocks []assemble.Block, format types.FormatConfig) (string, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", wNS)
	body := root.CreateElement("w:body")

	for _, blk := range blocks {
		switch blk.Kind {
		case assemble.BlockHeading:
			heading(body, blk)
		case assemble.BlockParagraph:
			paragraph(body, blk, format)
		case assemble.BlockReference:
			reference(body, blk)
		case assemble.BlockLabeled:
			labeled(body, blk)
		case assemble.BlockPageBreak:
			pageBreak(body)
		default:
			return "", fmt.Errorf("unknown block kind %q", blk.Kind)
		}
	}

	sectionProperties(body, format)
	return serialize(doc)
}

// heading emits a styled heading paragraph. Styles carry the fonts and
// outline levels; see stylesXML.
func heading(body *etree.Element, blk assemble.Block) {
	p := body.CreateElement("w:p")
	pPr := p.CreateElement("w:pPr")
	style := pPr.CreateElement("w:pStyle")
	if blk.Level <= 1 {
		style.CreateAttr("w:val", "Heading1")
	} else {
		style.CreateAttr("w:val", "Heading2")
	}
	run(p, blk.Text)
}

// paragraph emits a body paragraph with its indentation decision.
func paragraph(body *etree.Element, blk assemble.Block, format types.FormatConfig) {
	p := body.CreateElement("w:p")
	pPr := p.CreateElement("w:pPr")

	if blk.Centered {
		pPr.CreateElement("w:jc").CreateAttr("w:val", "center")
	} else if format.Justified {
		pPr.CreateElement("w:jc").CreateAttr("w:val", "both")
	}

	switch blk.Indent {
	case assemble.IndentFirstLine:
		ind := pPr.CreateElement("w:ind")
		ind.CreateAttr("w:firstLine", fmt.Sprint(firstLineTwips))
	case assemble.IndentBlockQuote:
		ind := pPr.CreateElement("w:ind")
		ind.CreateAttr("w:left", fmt.Sprint(quoteTwips))
		ind.CreateAttr("w:right", fmt.Sprint(quoteTwips))
	case assemble.IndentListItem:
		ind := pPr.CreateElement("w:ind")
		ind.CreateAttr("w:left", fmt.Sprint(quoteTwips))
	}

	if blk.Centered {
		boldRun(p, blk.Text)
		return
	}
	run(p, blk.Text)
}

// reference emits a bibliography entry with the APA hanging indent.
func reference(body *etree.Element, blk assemble.Block) {
	p := body.CreateElement("w:p")
	pPr := p.CreateElement("w:pPr")
	ind := pPr.CreateElement("w:ind")
	ind.CreateAttr("w:left", fmt.Sprint(quoteTwips))
	ind.CreateAttr("w:hanging", fmt.Sprint(quoteTwips))
	run(p, blk.Text)
}

// labeled emits a front-matter "Etiqueta: valor" line with a bold label.
func labeled(body *etree.Element, blk assemble.Block) {
	p := body.CreateElement("w:p")
	if blk.Centered {
		p.CreateElement("w:pPr").CreateElement("w:jc").CreateAttr("w:val", "center")
	}
	boldRun(p, blk.Label+": ")
	run(p, blk.Text)
}

// pageBreak emits an empty paragraph holding a page-break run.
func pageBreak(body *etree.Element) {
	p := body.CreateElement("w:p")
	r := p.CreateElement("w:r")
	r.CreateElement("w:br").CreateAttr("w:type", "page")
}

// run appends a text run, preserving leading and trailing spaces.
func run(p *etree.Element, text string) {
	r := p.CreateElement("w:r")
	t := r.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(text)
}

// boldRun appends a bold text run.
func boldRun(p *etree.Element, text string) {
	r := p.CreateElement("w:r")
	r.CreateElement("w:rPr").CreateElement("w:b")
	t := r.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(text)
}

// sectionProperties closes the body with the page geometry: A4 paper and
// the configured margin on all four sides.
func sectionProperties(body *etree.Element, format types.FormatConfig) {
	margin := int(format.Margin * twipsPerCm)
	if margin <= 0 {
		margin = defaultMarginTwips
	}

	sectPr := body.CreateElement("w:sectPr")
	pgSz := sectPr.CreateElement("w:pgSz")
	pgSz.CreateAttr("w:w", "11906")
	pgSz.CreateAttr("w:h", "16838")

	pgMar := sectPr.CreateElement("w:pgMar")
	for _, side := range []string{"w:top", "w:right", "w:bottom", "w:left"} {
		pgMar.CreateAttr(side, fmt.Sprint(margin))
	}
}
