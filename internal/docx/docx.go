// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx renders an assembled block sequence as an Office Open XML
// word-processing document. The container is a plain zip with the fixed
// part layout; the XML parts are built with etree so the structure stays
// inspectable in tests.
// Implements: prd005-exportacion (R1-R3);
//
//	docs/ARCHITECTURE § Export.
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/pdiddy/escriba/internal/assemble"
	"github.com/pdiddy/escriba/pkg/types"
)

// wNS is the WordprocessingML main namespace.
const wNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Unit conversions. WordprocessingML measures indents and margins in
// twentieths of a point and font sizes in half-points.
const (
	twipsPerCm = 567

	// defaultMarginTwips is the fallback page margin, one inch (2.54 cm).
	defaultMarginTwips = 1440

	// firstLineTwips is the APA half-inch first-line indent.
	firstLineTwips = 720

	// quoteTwips is the symmetric indent of a block quote and the left
	// indent of list items and hanging bibliography entries.
	quoteTwips = 720

	// lineUnit scales the interlineado factor: single spacing is 240.
	lineUnit = 240
)

// contentTypesXML, relsXML, and docRelsXML are the fixed container parts.
const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>
`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>
`

const docRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>
`

// Write renders blocks as a complete .docx container on w.
func Write(w io.Writer, blocks []assemble.Block, format types.FormatConfig) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name  string
		build func() (string, error)
	}{
		{"[Content_Types].xml", func() (string, error) { return contentTypesXML, nil }},
		{"_rels/.rels", func() (string, error) { return relsXML, nil }},
		{"word/_rels/document.xml.rels", func() (string, error) { return docRelsXML, nil }},
		{"word/styles.xml", func() (string, error) { return stylesXML(format) }},
		{"word/document.xml", func() (string, error) { return documentXML(blocks, format) }},
	}

	for _, part := range parts {
		content, err := part.build()
		if err != nil {
			return fmt.Errorf("building %s: %w", part.name, err)
		}
		f, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("creating zip entry %s: %w", part.name, err)
		}
		if _, err := io.WriteString(f, content); err != nil {
			return fmt.Errorf("writing zip entry %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing docx container: %w", err)
	}
	return nil
}

// Save writes the document to path via a temp file in the same directory,
// so a failed export never leaves a truncated .docx behind.
func Save(path string, blocks []assemble.Block, format types.FormatConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".escriba-*.docx.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writeErr := Write(tmpFile, blocks, format)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// serialize renders an etree document with the XML declaration.
func serialize(doc *etree.Document) (string, error) {
	// No pretty-printing: inserted whitespace would end up inside w:t
	// runs.
	out, err := doc.WriteToString()
	if err != nil {
		return "", err
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" + out, nil
}
