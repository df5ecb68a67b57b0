// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"strings"
	"testing"

	"github.com/pdiddy/escriba/pkg/types"
)

func TestNormalizeParagraphs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "double breaks preserved",
			content: "Primer párrafo.\n\nSegundo párrafo.",
			want:    "Primer párrafo.\n\nSegundo párrafo.",
		},
		{
			name:    "triple breaks collapse to two",
			content: "Uno.\n\n\n\nDos.",
			want:    "Uno.\n\nDos.",
		},
		{
			name:    "single newlines become paragraphs",
			content: "Línea uno.\nLínea dos.\n\nwait",
			want:    "Línea uno.\nLínea dos.\n\nwait",
		},
		{
			name:    "single newline mode drops empty lines",
			content: "Línea uno.\nLínea dos.",
			want:    "Línea uno.\n\nLínea dos.",
		},
		{
			name:    "whitespace trimmed",
			content: "  Uno.  \n  Dos.  ",
			want:    "Uno.\n\nDos.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeParagraphs(tt.content); got != tt.want {
				t.Errorf("NormalizeParagraphs(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	long := strings.Repeat("palabra ", 45)
	tests := []struct {
		name      string
		paragraph string
		indent    bool
		want      IndentStyle
	}{
		{"long paragraph is block quote even with indent on", long, true, IndentBlockQuote},
		{"tab prefix is block quote", "\tCita en bloque.", true, IndentBlockQuote},
		{"five spaces is block quote", "     Cita en bloque.", true, IndentBlockQuote},
		{"bullet is list item", "• Primer punto", true, IndentListItem},
		{"dash is list item", "- Primer punto", true, IndentListItem},
		{"numbered is list item", "1. Primer punto", true, IndentListItem},
		{"ten is list item", "10. Décimo punto", true, IndentListItem},
		{"plain prose with indent", "Texto normal corto.", true, IndentFirstLine},
		{"plain prose without indent", "Texto normal corto.", false, IndentNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.paragraph, tt.indent); got != tt.want {
				t.Errorf("Classify(%q, %v) = %q, want %q", tt.paragraph, tt.indent, got, tt.want)
			}
		})
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct{ in, want string }{
		{"📖 Marco Teórico", "Marco Teórico"},
		{"📚 CAPÍTULO II - ESTADO DEL ARTE", "CAPÍTULO II - ESTADO DEL ARTE"},
		{"✅ Conclusiones", "Conclusiones"},
		{"Sin emoji", "Sin emoji"},
	}
	for _, tt := range tests {
		if got := CleanTitle(tt.in); got != tt.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSectionIndent(t *testing.T) {
	if SectionIndent("RESUMEN", true) {
		t.Error("RESUMEN must never indent")
	}
	if SectionIndent("Marco Teórico", false) {
		t.Error("sangría off must disable indent")
	}
	if !SectionIndent("Marco Teórico", true) {
		t.Error("ordinary section with sangría on must indent")
	}
}

func testInput() Input {
	return Input{
		Info: map[string]string{},
		Sections: map[string]types.Section{
			"capitulo1":     {Title: "📖 CAPÍTULO I", Chapter: true, Base: true},
			"introduccion":  {Title: "🔍 Introducción", Required: true, Base: true},
			"capitulo2":     {Title: "📚 CAPÍTULO II", Chapter: true, Base: true},
			"marco_teorico": {Title: "📖 Marco Teórico", Required: true, Base: true},
			"resumen":       {Title: "📄 Resumen", Base: true},
			"vacia":         {Title: "Sección vacía", Base: true},
		},
		Active:  []string{"resumen", "capitulo1", "introduccion", "capitulo2", "marco_teorico", "vacia"},
		Content: map[string]string{},
		Format:  types.DefaultFormatConfig(),
	}
}

func TestBuildWalk(t *testing.T) {
	in := testInput()
	in.Content["introduccion"] = "Texto de introducción."
	in.Content["marco_teorico"] = "Según estudios [CITA:parafraseo:García:2020] el fenómeno crece."

	blocks := Build(in, Options{})

	var kinds []BlockKind
	var texts []string
	for _, b := range blocks {
		kinds = append(kinds, b.Kind)
		texts = append(texts, b.Text)
	}

	// resumen has no content: nothing emitted. Chapters always emit their
	// heading; a page break precedes every chapter after the first.
	want := []struct {
		kind BlockKind
		text string
	}{
		{BlockHeading, "CAPÍTULO I"},
		{BlockHeading, "INTRODUCCIÓN"},
		{BlockParagraph, "Texto de introducción."},
		{BlockPageBreak, ""},
		{BlockHeading, "CAPÍTULO II"},
		{BlockHeading, "MARCO TEÓRICO"},
		{BlockParagraph, "Según estudios (García, 2020) el fenómeno crece."},
	}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d: %v %v", len(blocks), len(want), kinds, texts)
	}
	for i, w := range want {
		if blocks[i].Kind != w.kind || blocks[i].Text != w.text {
			t.Errorf("block %d = {%s %q}, want {%s %q}", i, blocks[i].Kind, blocks[i].Text, w.kind, w.text)
		}
	}
}

func TestBuildEmptySectionSkipsHeading(t *testing.T) {
	in := testInput()
	blocks := Build(in, Options{})
	for _, b := range blocks {
		if b.Kind == BlockHeading && (b.Text == "SECCIÓN VACÍA" || b.Text == "INTRODUCCIÓN") {
			t.Errorf("empty content section emitted a heading: %q", b.Text)
		}
	}
}

func TestBuildResumenNeverIndents(t *testing.T) {
	in := testInput()
	in.Content["resumen"] = "Texto corto del resumen."
	blocks := Build(in, Options{})
	for _, b := range blocks {
		if b.Kind == BlockParagraph && b.Text == "Texto corto del resumen." {
			if b.Indent != IndentNone {
				t.Errorf("resumen paragraph indent = %q, want none", b.Indent)
			}
			return
		}
	}
	t.Fatal("resumen paragraph not found")
}

func TestBuildLongParagraphNoIndent(t *testing.T) {
	in := testInput()
	in.Content["introduccion"] = strings.TrimSpace(strings.Repeat("palabra ", 45))
	blocks := Build(in, Options{})
	for _, b := range blocks {
		if b.Kind == BlockParagraph {
			if b.Indent != IndentBlockQuote {
				t.Errorf("45-word paragraph indent = %q, want block quote", b.Indent)
			}
			return
		}
	}
	t.Fatal("paragraph not found")
}

func TestBuildLargaCitationBecomesBlockQuote(t *testing.T) {
	in := testInput()
	in.Content["marco_teorico"] = "Como señala la teoría. [CITA:larga:Martínez:2021:78] El análisis sigue."
	blocks := Build(in, Options{})

	var found bool
	for _, b := range blocks {
		if b.Kind == BlockParagraph && b.Text == "(Martínez, 2021, p. 78)" {
			found = true
			if b.Indent != IndentBlockQuote {
				t.Errorf("larga block indent = %q, want block quote", b.Indent)
			}
		}
	}
	if !found {
		t.Error("larga citation did not produce its own block")
	}
}

func TestBuildBibliographySorted(t *testing.T) {
	in := testInput()
	in.Content["introduccion"] = "Texto."
	in.References = []types.Reference{
		{Type: types.RefLibro, Author: "Zúñiga, A.", Year: "2020", Title: "Z", Source: "E"},
		{Type: types.RefLibro, Author: "Álvarez, B.", Year: "2021", Title: "A", Source: "E"},
		{Type: types.RefLibro, Author: "García, C.", Year: "2019", Title: "G", Source: "E"},
	}
	blocks := Build(in, Options{})

	var entries []string
	var sawHeading bool
	for _, b := range blocks {
		if b.Kind == BlockHeading && b.Text == "REFERENCIAS" {
			sawHeading = true
		}
		if b.Kind == BlockReference {
			entries = append(entries, b.Text)
		}
	}
	if !sawHeading {
		t.Fatal("REFERENCIAS heading missing")
	}
	if len(entries) != 3 {
		t.Fatalf("got %d reference blocks, want 3", len(entries))
	}
	for i, prefix := range []string{"Álvarez", "García", "Zúñiga"} {
		if !strings.HasPrefix(entries[i], prefix) {
			t.Errorf("bibliography position %d = %q, want prefix %q", i, entries[i], prefix)
		}
	}
}

func TestBuildNoReferencesNoBibliography(t *testing.T) {
	in := testInput()
	in.Content["introduccion"] = "Texto."
	for _, b := range Build(in, Options{}) {
		if b.Kind == BlockHeading && b.Text == "REFERENCIAS" {
			t.Fatal("empty reference list still produced a bibliography")
		}
	}
}

func TestBuildCoverPage(t *testing.T) {
	in := testInput()
	in.Info = map[string]string{
		"institucion": "Universidad Nacional",
		"titulo":      "Mi Proyecto",
		"estudiantes": "Ana Pérez, Luis Gómez, Eva Ruiz",
		"director":    "Dra. Soto",
	}
	blocks := Build(in, Options{CoverPage: true})

	if blocks[0].Text != "UNIVERSIDAD NACIONAL" || !blocks[0].Centered {
		t.Errorf("first cover block = %+v", blocks[0])
	}
	if blocks[1].Text != `"Mi Proyecto"` {
		t.Errorf("title block = %q", blocks[1].Text)
	}

	var students string
	for _, b := range blocks {
		if b.Kind == BlockLabeled && b.Label == "Estudiantes" {
			students = b.Text
		}
	}
	if students != "Ana Pérez, Luis Gómez y Eva Ruiz" {
		t.Errorf("students list = %q", students)
	}
}

func TestJoinPeople(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Ana", "Ana"},
		{"Ana, Luis", "Ana y Luis"},
		{"Ana, Luis, Eva", "Ana, Luis y Eva"},
		{" Ana , , Luis ", "Ana y Luis"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := JoinPeople(tt.in); got != tt.want {
			t.Errorf("JoinPeople(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderText(t *testing.T) {
	in := testInput()
	in.Content["introduccion"] = "Texto de introducción [CITA:parafraseo:García:2020] final."
	var b strings.Builder
	if err := RenderText(&b, Build(in, Options{})); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, frag := range []string{"CAPÍTULO I", "INTRODUCCIÓN", "(García, 2020)"} {
		if !strings.Contains(out, frag) {
			t.Errorf("preview missing %q:\n%s", frag, out)
		}
	}
	if strings.Contains(out, "CITA:") {
		t.Errorf("preview contains raw tag:\n%s", out)
	}
}
