// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"fmt"
	"io"
	"strings"
)

// RenderText writes a plain-text preview of the block sequence: headings
// set off by blank lines, block quotes and list items tab-indented, page
// breaks as a marker line. The preview is what the CLI render command and
// the tests look at; the docx renderer consumes the same blocks.
func RenderText(w io.Writer, blocks []Block) error {
	var b strings.Builder

	for _, blk := range blocks {
		switch blk.Kind {
		case BlockHeading:
			b.WriteString("\n")
			if blk.Level == 1 {
				b.WriteString(strings.ToUpper(blk.Text))
			} else {
				b.WriteString(blk.Text)
			}
			b.WriteString("\n\n")
		case BlockParagraph:
			switch blk.Indent {
			case IndentBlockQuote:
				b.WriteString("\t" + blk.Text + "\n\n")
			case IndentListItem:
				b.WriteString("  " + blk.Text + "\n\n")
			default:
				b.WriteString(blk.Text + "\n\n")
			}
		case BlockLabeled:
			fmt.Fprintf(&b, "%s: %s\n", blk.Label, blk.Text)
		case BlockReference:
			b.WriteString(blk.Text + "\n")
		case BlockPageBreak:
			b.WriteString("\n----------\n\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
