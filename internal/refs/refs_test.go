// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refs

import (
	"strings"
	"testing"

	"github.com/pdiddy/escriba/pkg/types"
)

func ref(author, year, title string) types.Reference {
	return types.Reference{Type: types.RefLibro, Author: author, Year: year, Title: title}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		ref     types.Reference
		wantErr string
	}{
		{name: "complete", ref: ref("García, J.", "2023", "Python Avanzado")},
		{name: "missing author", ref: ref("", "2023", "T"), wantErr: "autor"},
		{name: "missing year", ref: ref("A", "", "T"), wantErr: "año"},
		{name: "missing title", ref: ref("A", "2023", ""), wantErr: "titulo"},
		{name: "non numeric year", ref: ref("A", "hace poco", "T"), wantErr: "año inválido"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.ref)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatal(err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewAssignsIDAndTimestamp(t *testing.T) {
	existing := []types.Reference{ref("A", "2020", "Uno")}
	got, err := New(ref("B", "2021", "Dos"), existing)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 2 {
		t.Errorf("ID = %d, want 2", got.ID)
	}
	if got.Added == "" {
		t.Error("Added timestamp not set")
	}
}

func TestSortedByAuthorSurname(t *testing.T) {
	list := []types.Reference{
		ref("Zúñiga, A.", "2020", "Z"),
		ref("Álvarez, B.", "2021", "A"),
		ref("García, C.", "2019", "G"),
	}
	got := Sorted(list)
	want := []string{"Álvarez, B.", "García, C.", "Zúñiga, A."}
	for i, w := range want {
		if got[i].Author != w {
			t.Errorf("position %d = %s, want %s", i, got[i].Author, w)
		}
	}
	// The input list is untouched.
	if list[0].Author != "Zúñiga, A." {
		t.Error("Sorted reordered its input")
	}
}

func TestSortKeyFoldsDiacritics(t *testing.T) {
	tests := []struct {
		author string
		want   string
	}{
		{"Álvarez, B.", "alvarez"},
		{"Zúñiga, A.", "zuniga"},
		{"  García, C. ", "garcia"},
		{"Núñez", "nunez"},
		{"Smith, J.", "smith"},
	}
	for _, tt := range tests {
		if got := SortKey(types.Reference{Author: tt.author}); got != tt.want {
			t.Errorf("SortKey(%q) = %q, want %q", tt.author, got, tt.want)
		}
	}
}

func TestSortedStableOnTies(t *testing.T) {
	list := []types.Reference{
		{Author: "García, J.", Year: "2020", Title: "Primero"},
		{Author: "garcía, M.", Year: "2018", Title: "Segundo"},
	}
	got := Sorted(list)
	if got[0].Title != "Primero" || got[1].Title != "Segundo" {
		t.Errorf("tie not broken by insertion order: %v, %v", got[0].Title, got[1].Title)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		ref  types.Reference
		want string
	}{
		{
			name: "libro",
			ref:  types.Reference{Type: types.RefLibro, Author: "García, J.", Year: "2023", Title: "Python Avanzado", Source: "Editorial Tech"},
			want: "García, J. (2023). Python Avanzado. Editorial Tech.",
		},
		{
			name: "articulo",
			ref:  types.Reference{Type: types.RefArticulo, Author: "López, M.", Year: "2020", Title: "Un estudio", Source: "Revista X"},
			want: "López, M. (2020). Un estudio. Revista X.",
		},
		{
			name: "web",
			ref:  types.Reference{Type: types.RefWeb, Author: "OMS", Year: "2023", Title: "Informe anual", Source: "https://who.int"},
			want: "OMS (2023). Informe anual. Recuperado de https://who.int",
		},
		{
			name: "tesis",
			ref:  types.Reference{Type: types.RefTesis, Author: "Pérez, R.", Year: "2021", Title: "Análisis", Source: "Universidad Nacional"},
			want: "Pérez, R. (2021). Análisis [Tesis]. Universidad Nacional.",
		},
		{
			name: "libro sin fuente",
			ref:  types.Reference{Type: types.RefLibro, Author: "García, J.", Year: "2023", Title: "Obra"},
			want: "García, J. (2023). Obra. Editorial desconocida.",
		},
		{
			name: "articulo sin fuente",
			ref:  types.Reference{Type: types.RefArticulo, Author: "García, J.", Year: "2023", Title: "Obra"},
			want: "García, J. (2023). Obra. Revista desconocida.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.ref); got != tt.want {
				t.Errorf("Format = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExportAPAOrdering(t *testing.T) {
	list := []types.Reference{
		ref("Zúñiga, A.", "2020", "Z"),
		ref("Álvarez, B.", "2021", "A"),
		ref("García, C.", "2019", "G"),
	}
	out := ExportAPA(list)
	za := strings.Index(out, "Zúñiga")
	al := strings.Index(out, "Álvarez")
	ga := strings.Index(out, "García")
	if !(al < ga && ga < za) {
		t.Errorf("bibliography order wrong:\n%s", out)
	}
}

func TestSearch(t *testing.T) {
	list := []types.Reference{
		{Author: "García, J.", Year: "2020", Title: "Redes neuronales", Source: "Editorial Tech"},
		{Author: "López, M.", Year: "2019", Title: "Historia", Source: "Alianza"},
	}
	if got := Search(list, "redes"); len(got) != 1 || got[0].Author != "García, J." {
		t.Errorf("Search(redes) = %v", got)
	}
	if got := Search(list, "alianza"); len(got) != 1 {
		t.Errorf("Search(alianza) = %v", got)
	}
	if got := Search(list, "nada"); len(got) != 0 {
		t.Errorf("Search(nada) = %v", got)
	}
}

func TestStatistics(t *testing.T) {
	list := []types.Reference{
		{Type: types.RefLibro, Author: "A", Year: "2019", Title: "x"},
		{Type: types.RefLibro, Author: "B", Year: "2021", Title: "y"},
		{Type: types.RefWeb, Author: "C", Year: "2021", Title: "z"},
	}
	s := Statistics(list)
	if s.Total != 3 || s.ByType["Libro"] != 2 || s.ByType["Web"] != 1 {
		t.Errorf("stats = %+v", s)
	}
	if s.YearRange != "2019-2021" {
		t.Errorf("YearRange = %q", s.YearRange)
	}
}

func TestImportBibTeX(t *testing.T) {
	content := `
@book{garcia2023,
  author = {García, J.},
  title = {Python Avanzado},
  year = {2023},
  publisher = {Editorial Tech},
}

@article{lopez2020,
  author = {López, M.},
  title = {Un estudio},
  year = {2020},
  journal = {Revista X},
}

@misc{broken,
  note = {sin autor ni título},
}
`
	got, skipped := ImportBibTeX(content, nil)
	if len(got) != 2 || skipped != 1 {
		t.Fatalf("imported %d, skipped %d, want 2/1", len(got), skipped)
	}
	if got[0].Type != types.RefLibro || got[0].Source != "Editorial Tech" {
		t.Errorf("first import = %+v", got[0])
	}
	if got[1].Type != types.RefArticulo || got[1].Author != "López, M." {
		t.Errorf("second import = %+v", got[1])
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("ids = %d, %d", got[0].ID, got[1].ID)
	}
}

func TestWriteBibTeXRoundTrip(t *testing.T) {
	list := []types.Reference{
		{Type: types.RefLibro, Author: "García, J.", Year: "2023", Title: "Python Avanzado", Source: "Editorial Tech"},
	}
	var b strings.Builder
	if err := WriteBibTeX(&b, list); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "@book{García2023,") && !strings.Contains(out, "@book{Garca2023,") {
		t.Errorf("unexpected key:\n%s", out)
	}
	back, skipped := ImportBibTeX(out, nil)
	if skipped != 0 || len(back) != 1 {
		t.Fatalf("round trip imported %d, skipped %d", len(back), skipped)
	}
	if back[0].Author != "García, J." || back[0].Year != "2023" {
		t.Errorf("round trip = %+v", back[0])
	}
}

func TestWriteCSL(t *testing.T) {
	list := []types.Reference{
		{Type: types.RefArticulo, Author: "García, J.", Year: "2020", Title: "Un estudio", Source: "Revista X"},
		{Type: types.RefWeb, Author: "OMS", Year: "2023", Title: "Informe", Source: "https://who.int"},
	}
	var b strings.Builder
	if err := WriteCSL(&b, list); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, frag := range []string{"article-journal", "webpage", "family: García", "literal: OMS", "URL: https://who.int"} {
		if !strings.Contains(out, frag) {
			t.Errorf("CSL output missing %q:\n%s", frag, out)
		}
	}
}
