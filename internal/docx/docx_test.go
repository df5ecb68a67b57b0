// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/escriba/internal/assemble"
	"github.com/pdiddy/escriba/pkg/types"
)

func testBlocks() []assemble.Block {
	return []assemble.Block{
		{Kind: assemble.BlockHeading, Text: "CAPÍTULO I", Level: 1},
		{Kind: assemble.BlockHeading, Text: "INTRODUCCIÓN", Level: 2},
		{Kind: assemble.BlockParagraph, Text: "Texto normal.", Indent: assemble.IndentFirstLine},
		{Kind: assemble.BlockParagraph, Text: "(García, 2020, p. 12)", Indent: assemble.IndentBlockQuote},
		{Kind: assemble.BlockParagraph, Text: "1. Primer punto", Indent: assemble.IndentListItem},
		{Kind: assemble.BlockPageBreak},
		{Kind: assemble.BlockHeading, Text: "REFERENCIAS", Level: 1},
		{Kind: assemble.BlockReference, Text: "García, J. (2020). Obra. Editorial X."},
	}
}

// readPart extracts one file from the in-memory container.
func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(content)
	}
	t.Fatalf("part %s not found in container", name)
	return ""
}

func TestWriteContainerLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testBlocks(), types.DefaultFormatConfig()))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	for _, want := range []string{
		"[Content_Types].xml", "_rels/.rels",
		"word/_rels/document.xml.rels", "word/document.xml", "word/styles.xml",
	} {
		require.Contains(t, names, want)
	}
}

func TestDocumentXMLBlocks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testBlocks(), types.DefaultFormatConfig()))
	doc := readPart(t, buf.Bytes(), "word/document.xml")

	tests := []struct {
		name string
		frag string
	}{
		{"chapter heading uses Heading1", `w:val="Heading1"`},
		{"section heading uses Heading2", `w:val="Heading2"`},
		{"first-line indent", `w:firstLine="720"`},
		{"block quote right indent", `w:right="720"`},
		{"hanging indent for references", `w:hanging="720"`},
		{"page break", `w:type="page"`},
		{"text preserved", "(García, 2020, p. 12)"},
		{"justified body", `w:val="both"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(doc, tt.frag) {
				t.Errorf("document.xml missing %q", tt.frag)
			}
		})
	}
}

func TestDocumentXMLMargins(t *testing.T) {
	format := types.DefaultFormatConfig()
	format.Margin = 3.0

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testBlocks(), format))
	doc := readPart(t, buf.Bytes(), "word/document.xml")

	// 3.0 cm at 567 twips per cm.
	if !strings.Contains(doc, `w:top="1701"`) {
		t.Error("margin not converted to twips")
	}
}

func TestDocumentXMLDefaultMargin(t *testing.T) {
	format := types.DefaultFormatConfig()
	format.Margin = 0

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testBlocks(), format))
	doc := readPart(t, buf.Bytes(), "word/document.xml")

	// Unset margin falls back to one inch.
	if !strings.Contains(doc, `w:top="1440"`) {
		t.Error("default margin not applied")
	}
}

func TestStylesXMLFormat(t *testing.T) {
	format := types.DefaultFormatConfig()
	format.TextFont = "Arial"
	format.TextSize = 11
	format.LineSpacing = 1.5

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testBlocks(), format))
	styles := readPart(t, buf.Bytes(), "word/styles.xml")

	tests := []struct {
		name string
		frag string
	}{
		{"body font", `w:ascii="Arial"`},
		{"half-point size", `w:val="22"`},
		{"line spacing 1.5", `w:line="360"`},
		{"heading outline level", `w:val="0"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(styles, tt.frag) {
				t.Errorf("styles.xml missing %q", tt.frag)
			}
		})
	}
}

func TestUnjustifiedBody(t *testing.T) {
	format := types.DefaultFormatConfig()
	format.Justified = false

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testBlocks(), format))
	doc := readPart(t, buf.Bytes(), "word/document.xml")
	if strings.Contains(doc, `w:val="both"`) {
		t.Error("justification emitted with justificado off")
	}
}
