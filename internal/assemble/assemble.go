// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble turns project state into an ordered sequence of
// renderable blocks: headings, paragraphs, page breaks, and the sorted
// bibliography. Renderers (docx, plain text) consume the block sequence
// without re-deciding any ordering or formatting rule.
// Implements: prd004-ensamblado (R1-R5);
//
//	docs/ARCHITECTURE § Assembly.
package assemble

import (
	"fmt"
	"strings"

	"github.com/pdiddy/escriba/internal/cite"
	"github.com/pdiddy/escriba/internal/refs"
	"github.com/pdiddy/escriba/pkg/types"
)

// BlockKind discriminates the renderable block variants.
type BlockKind string

const (
	// BlockHeading is a section or chapter heading; Level 1 for chapters
	// and front matter, 2 for content sections.
	BlockHeading BlockKind = "heading"

	// BlockParagraph is body text with an indentation decision.
	BlockParagraph BlockKind = "paragraph"

	// BlockPageBreak forces a new page.
	BlockPageBreak BlockKind = "page_break"

	// BlockReference is one bibliography entry, rendered with a hanging
	// indent.
	BlockReference BlockKind = "reference"

	// BlockLabeled is a front-matter "Etiqueta: valor" line.
	BlockLabeled BlockKind = "labeled"
)

// Block is one renderable unit of the assembled document.
type Block struct {
	Kind   BlockKind
	Text   string
	Level  int
	Indent IndentStyle

	// Label is set for BlockLabeled blocks.
	Label string

	// Centered marks front-matter lines rendered centered and bold.
	Centered bool
}

// Input is the snapshot of project state the assembly walks. The export
// worker captures it once at start; later edits do not affect an in-flight
// build.
type Input struct {
	Info       map[string]string
	Sections   map[string]types.Section
	Active     []string
	Content    map[string]string
	References []types.Reference
	Format     types.FormatConfig
}

// Options selects the optional front-matter parts.
type Options struct {
	CoverPage           bool
	Acknowledgments     bool
	Index               bool
	AcknowledgmentsText string
}

// coverFields lists the labeled info fields of the cover page, in order.
var coverFields = [][2]string{
	{"ciclo", "Ciclo"},
	{"curso", "Curso"},
	{"enfasis", "Énfasis"},
	{"area", "Área de Desarrollo"},
	{"categoria", "Categoría"},
	{"director", "Director"},
	{"responsable", "Responsable"},
}

// Build walks the active section list and returns the full block sequence:
// optional front matter, the dynamic content walk, and the bibliography.
func Build(in Input, opts Options) []Block {
	var blocks []Block

	if opts.CoverPage {
		blocks = append(blocks, coverBlocks(in)...)
	}
	if opts.Acknowledgments {
		text := opts.AcknowledgmentsText
		if text == "" {
			text = "(Agregar agradecimientos personalizados aquí)"
		}
		blocks = append(blocks, sectionBlocks("AGRADECIMIENTOS", text, false)...)
	}
	if opts.Index {
		blocks = append(blocks, indexBlocks()...)
	}

	blocks = append(blocks, contentBlocks(in)...)
	blocks = append(blocks, bibliographyBlocks(in.References)...)
	return blocks
}

// contentBlocks performs the dynamic walk over Active (R1): chapters always
// emit their heading, with a page break before every chapter after the
// first; content sections with empty text emit nothing at all.
func contentBlocks(in Input) []Block {
	var blocks []Block
	chapters := 0

	for _, id := range in.Active {
		s, ok := in.Sections[id]
		if !ok {
			continue
		}

		if s.Chapter {
			chapters++
			if chapters > 1 {
				blocks = append(blocks, Block{Kind: BlockPageBreak})
			}
			blocks = append(blocks, Block{
				Kind:  BlockHeading,
				Text:  CleanTitle(s.Title),
				Level: 1,
			})
			continue
		}

		content := strings.TrimSpace(in.Content[id])
		if content == "" {
			continue
		}

		title := strings.ToUpper(CleanTitle(s.Title))
		indent := SectionIndent(title, in.Format.Indent)
		blocks = append(blocks, sectionBlocks(title, content, indent)...)
	}
	return blocks
}

// sectionBlocks renders one content section: a level-2 heading followed by
// its normalized, citation-processed paragraphs (R2, R3).
func sectionBlocks(title, content string, indent bool) []Block {
	blocks := []Block{{Kind: BlockHeading, Text: title, Level: 2}}

	processed := cite.Process(NormalizeParagraphs(content))
	for _, para := range strings.Split(processed, "\n\n") {
		text := strings.TrimSpace(para)
		if text == "" {
			continue
		}
		// Classification sees the raw paragraph so manual indentation
		// (including larga citation blocks) is still visible.
		style := Classify(para, indent)
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: text, Indent: style})
	}
	return blocks
}

// bibliographyBlocks renders the REFERENCIAS heading and the sorted entries
// (R4). No references, no heading.
func bibliographyBlocks(list []types.Reference) []Block {
	if len(list) == 0 {
		return nil
	}
	blocks := []Block{
		{Kind: BlockPageBreak},
		{Kind: BlockHeading, Text: "REFERENCIAS", Level: 1},
	}
	for _, r := range refs.Sorted(list) {
		blocks = append(blocks, Block{Kind: BlockReference, Text: refs.Format(r)})
	}
	return blocks
}

// coverBlocks renders the cover page from the general-information fields
// (R5): institution and quoted title centered, labeled fields left-aligned,
// people lists joined "A, B y C", then a page break.
func coverBlocks(in Input) []Block {
	var blocks []Block

	if inst := strings.TrimSpace(in.Info["institucion"]); inst != "" {
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: strings.ToUpper(inst), Centered: true, Indent: IndentNone})
	}
	if title := strings.TrimSpace(in.Info["titulo"]); title != "" {
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: fmt.Sprintf("%q", title), Centered: true, Indent: IndentNone})
	}

	for _, f := range coverFields {
		value := strings.TrimSpace(in.Info[f[0]])
		if value == "" {
			continue
		}
		if f[0] == "responsable" {
			value = JoinPeople(value)
		}
		blocks = append(blocks, Block{Kind: BlockLabeled, Label: f[1], Text: value})
	}

	for _, f := range [][2]string{{"estudiantes", "Estudiantes"}, {"tutores", "Tutores"}} {
		if value := strings.TrimSpace(in.Info[f[0]]); value != "" {
			blocks = append(blocks, Block{Kind: BlockLabeled, Label: f[1], Text: JoinPeople(value)})
		}
	}

	if year := strings.TrimSpace(in.Info["año"]); year != "" {
		blocks = append(blocks, Block{Kind: BlockLabeled, Label: "Año", Text: year, Centered: true})
	}

	blocks = append(blocks, Block{Kind: BlockPageBreak})
	return blocks
}

// indexBlocks renders the index instructions page.
func indexBlocks() []Block {
	blocks := []Block{{Kind: BlockHeading, Text: "ÍNDICE", Level: 1}}
	instructions := []string{
		"INSTRUCCIONES PARA GENERAR ÍNDICE AUTOMÁTICO:",
		"1. En Word, ir a la pestaña \"Referencias\"",
		"2. Hacer clic en \"Tabla de contenido\"",
		"3. Seleccionar el estilo deseado",
		"4. El índice se generará automáticamente",
		"NOTA: Todos los títulos están configurados con niveles de esquema para facilitar la generación automática.",
	}
	for _, line := range instructions {
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: line, Indent: IndentNone})
	}
	blocks = append(blocks,
		Block{Kind: BlockHeading, Text: "TABLA DE ILUSTRACIONES", Level: 2},
		Block{Kind: BlockParagraph, Text: "(Agregar manualmente si hay figuras, tablas o gráficos)", Indent: IndentNone},
		Block{Kind: BlockPageBreak},
	)
	return blocks
}

// JoinPeople joins a comma-separated people list in prose form: one name
// stays alone, two join with "y", more use commas with "y" before the last.
func JoinPeople(raw string) string {
	var people []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			people = append(people, p)
		}
	}
	switch len(people) {
	case 0:
		return ""
	case 1:
		return people[0]
	case 2:
		return people[0] + " y " + people[1]
	default:
		return strings.Join(people[:len(people)-1], ", ") + " y " + people[len(people)-1]
	}
}
