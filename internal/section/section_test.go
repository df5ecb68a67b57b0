// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package section

import (
	"strings"
	"testing"

	"github.com/pdiddy/escriba/pkg/types"
)

func TestNewHasBaseSet(t *testing.T) {
	r := New()
	if len(r.Available) != 20 {
		t.Errorf("base catalog has %d sections, want 20", len(r.Available))
	}
	if len(r.Active) != 20 {
		t.Errorf("active list has %d entries, want 20", len(r.Active))
	}
	if r.Active[0] != "resumen" || r.Active[len(r.Active)-1] != "conclusiones" {
		t.Errorf("unexpected base order: %v", r.Active)
	}
	mt, ok := r.Get("marco_teorico")
	if !ok || !mt.Required || mt.Chapter {
		t.Errorf("marco_teorico descriptor wrong: %+v", mt)
	}
	c1, _ := r.Get("capitulo1")
	if !c1.Chapter {
		t.Errorf("capitulo1 should be a chapter: %+v", c1)
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		section types.Section
		wantErr string
	}{
		{
			name:    "valid custom section",
			id:      "anexos",
			section: types.Section{Title: "Anexos", Instruction: "Material complementario"},
		},
		{
			name:    "duplicate id",
			id:      "resumen",
			section: types.Section{Title: "Otro", Instruction: "x"},
			wantErr: "ya existe",
		},
		{
			name:    "bad id format",
			id:      "Anexos-1",
			section: types.Section{Title: "Anexos", Instruction: "x"},
			wantErr: "id inválido",
		},
		{
			name:    "missing title",
			id:      "anexos",
			section: types.Section{Instruction: "x"},
			wantErr: "'titulo' es requerido",
		},
		{
			name:    "missing instruction",
			id:      "anexos",
			section: types.Section{Title: "Anexos"},
			wantErr: "'instruccion' es requerido",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			err := r.Add(tt.id, tt.section)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Add error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			got, ok := r.Get(tt.id)
			if !ok || !got.Custom || got.Base {
				t.Errorf("added section = %+v", got)
			}
			if r.Active[len(r.Active)-1] != tt.id {
				t.Errorf("new section not appended to active list: %v", r.Active)
			}
		})
	}
}

func TestRemoveProtections(t *testing.T) {
	r := New()

	if err := r.Remove("introduccion"); err == nil {
		t.Error("removing a required section should fail")
	}
	// desarrollo is neither required nor critical.
	if err := r.Remove("desarrollo"); err != nil {
		t.Errorf("Remove(desarrollo) = %v", err)
	}
	if _, ok := r.Get("desarrollo"); ok {
		t.Error("desarrollo still in catalog after removal")
	}
	// The critical set protects sections even when the required flag is
	// somehow cleared (e.g. a hand-edited project file).
	s, _ := r.Get("marco_teorico")
	s.Required = false
	r.Available["marco_teorico"] = s
	if err := r.Remove("marco_teorico"); err == nil || !strings.Contains(err.Error(), "crítica") {
		t.Errorf("removing a critical section should fail, got %v", err)
	}
}

func TestEditBaseSection(t *testing.T) {
	r := New()

	if err := r.Edit("resumen", types.Section{Instruction: "Nueva guía"}); err != nil {
		t.Fatal(err)
	}
	s, _ := r.Get("resumen")
	if s.Instruction != "Nueva guía" {
		t.Errorf("Instruction = %q", s.Instruction)
	}

	if err := r.Edit("resumen", types.Section{Title: "Otro título"}); err == nil {
		t.Error("editing the title of a base section should fail")
	}
}

func TestMove(t *testing.T) {
	r := New()

	idx, err := r.Move("introduccion", "arriba")
	if err != nil || idx != 0 {
		t.Fatalf("Move(introduccion, arriba) = %d, %v", idx, err)
	}
	if r.Active[0] != "introduccion" || r.Active[1] != "resumen" {
		t.Errorf("order after move: %v", r.Active[:2])
	}

	if _, err := r.Move("introduccion", "arriba"); err == nil {
		t.Error("moving the first section up should fail")
	}
	if _, err := r.Move("conclusiones", "abajo"); err == nil {
		t.Error("moving the last section down should fail")
	}
}

func TestReorder(t *testing.T) {
	r := New()
	order := r.ActiveIDs()
	order[0], order[1] = order[1], order[0]
	if err := r.Reorder(order); err != nil {
		t.Fatal(err)
	}
	if r.Active[0] != "introduccion" {
		t.Errorf("reorder not applied: %v", r.Active[:2])
	}

	if err := r.Reorder(order[:len(order)-1]); err == nil {
		t.Error("reorder missing a section should fail")
	}
}

func TestActivateDeactivate(t *testing.T) {
	r := New()

	if err := r.Deactivate("resumen"); err != nil {
		t.Fatal(err)
	}
	if got := len(r.Active); got != 19 {
		t.Errorf("active count = %d, want 19", got)
	}
	if err := r.Deactivate("objetivos"); err == nil {
		t.Error("deactivating a required section should fail")
	}

	if err := r.Activate("resumen"); err != nil {
		t.Fatal(err)
	}
	if r.Active[len(r.Active)-1] != "resumen" {
		t.Errorf("reactivated section should append to the end: %v", r.Active)
	}
}

func TestValidateStructure(t *testing.T) {
	r := New()
	report := r.Validate()
	if !report.Valid() || len(report.Warnings) != 0 {
		t.Errorf("base structure should validate clean: %+v", report)
	}

	// Required sections deactivated via direct mutation (as a loaded
	// project file can produce) must surface as errors.
	r.Active = remove(r.Active, "objetivos")
	report = r.Validate()
	if report.Valid() {
		t.Error("missing required section not reported")
	}

	// Out-of-order main sections warn.
	r2 := New()
	ids := r2.ActiveIDs()
	ci := index(ids, "conclusiones")
	ii := index(ids, "introduccion")
	ids[ci], ids[ii] = ids[ii], ids[ci]
	if err := r2.Reorder(ids); err != nil {
		t.Fatal(err)
	}
	if report := r2.Validate(); len(report.Warnings) == 0 {
		t.Error("illogical order should warn")
	}
}

func TestByKindAndStats(t *testing.T) {
	r := New()
	if got := len(r.ByKind("capitulos")); got != 6 {
		t.Errorf("capitulos = %d, want 6", got)
	}
	if got := len(r.ByKind("requeridas")); got != 8 {
		t.Errorf("requeridas = %d, want 8", got)
	}

	stats := r.Statistics()
	if stats.Available != 20 || stats.Active != 20 || stats.Inactive != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCloneIsDeep(t *testing.T) {
	r := New()
	c := r.Clone()
	c.Active[0] = "otro"
	c.Available["resumen"] = types.Section{Title: "mutado"}
	if r.Active[0] != "resumen" {
		t.Error("clone shares active slice")
	}
	if s, _ := r.Get("resumen"); s.Title == "mutado" {
		t.Error("clone shares descriptor map")
	}
}
