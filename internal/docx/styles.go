// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/pdiddy/escriba/pkg/types"
)

// stylesXML builds word/styles.xml: the document defaults (body font, size,
// line spacing) plus the two heading styles with outline levels so Word can
// generate a table of contents.
func stylesXML(format types.FormatConfig) (string, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", wNS)

	docDefaults(root, format)
	headingStyle(root, "Heading1", format.TitleFont, format.TitleSize, 0, true)
	headingStyle(root, "Heading2", format.TitleFont, format.TitleSize-2, 1, false)

	return serialize(doc)
}

// docDefaults sets the run and paragraph defaults every style inherits.
func docDefaults(root *etree.Element, format types.FormatConfig) {
	defaults := root.CreateElement("w:docDefaults")

	rPr := defaults.CreateElement("w:rPrDefault").CreateElement("w:rPr")
	fonts := rPr.CreateElement("w:rFonts")
	fonts.CreateAttr("w:ascii", format.TextFont)
	fonts.CreateAttr("w:hAnsi", format.TextFont)
	rPr.CreateElement("w:sz").CreateAttr("w:val", fmt.Sprint(format.TextSize*2))

	pPr := defaults.CreateElement("w:pPrDefault").CreateElement("w:pPr")
	spacing := pPr.CreateElement("w:spacing")
	spacing.CreateAttr("w:line", fmt.Sprint(int(format.LineSpacing*lineUnit)))
	spacing.CreateAttr("w:lineRule", "auto")
}

// headingStyle defines one heading style. Heading1 is centered (chapter
// and front-matter titles); Heading2 is flush left.
func headingStyle(root *etree.Element, id, font string, size, outline int, centered bool) {
	if size < 1 {
		size = 12
	}

	style := root.CreateElement("w:style")
	style.CreateAttr("w:type", "paragraph")
	style.CreateAttr("w:styleId", id)
	style.CreateElement("w:name").CreateAttr("w:val", id)

	pPr := style.CreateElement("w:pPr")
	if centered {
		pPr.CreateElement("w:jc").CreateAttr("w:val", "center")
	}
	pPr.CreateElement("w:outlineLvl").CreateAttr("w:val", fmt.Sprint(outline))
	spacing := pPr.CreateElement("w:spacing")
	spacing.CreateAttr("w:before", "240")
	spacing.CreateAttr("w:after", "240")

	rPr := style.CreateElement("w:rPr")
	fonts := rPr.CreateElement("w:rFonts")
	fonts.CreateAttr("w:ascii", font)
	fonts.CreateAttr("w:hAnsi", font)
	rPr.CreateElement("w:b")
	rPr.CreateElement("w:sz").CreateAttr("w:val", fmt.Sprint(size*2))
}
