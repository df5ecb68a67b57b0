// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package section

import (
	"fmt"
)

// logicalOrder is the advisory ordering of the main sections. Deviations
// warn, they never block (R4.2).
var logicalOrder = []string{
	"introduccion", "planteamiento", "objetivos",
	"marco_teorico", "metodologia", "conclusiones",
}

// StructureReport holds the outcome of a structure validation pass.
type StructureReport struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether the structure has no blocking errors.
func (r StructureReport) Valid() bool { return len(r.Errors) == 0 }

// Validate checks structural coherence: every required section must be
// active, and the main sections should follow the conventional order
// (R4.1, R4.2).
func (r *Registry) Validate() StructureReport {
	var report StructureReport

	for id, s := range r.Available {
		if s.Required && index(r.Active, id) < 0 {
			report.Errors = append(report.Errors,
				fmt.Sprintf("sección requerida desactivada: %s", s.Title))
		}
	}

	var positions []int
	for _, id := range logicalOrder {
		if idx := index(r.Active, id); idx >= 0 {
			positions = append(positions, idx)
		}
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] < positions[i-1] {
			report.Warnings = append(report.Warnings,
				"el orden de las secciones principales podría no ser el más lógico")
			break
		}
	}

	return report
}

// Stats summarizes the section catalog.
type Stats struct {
	Available int            `json:"total_disponibles" yaml:"total_disponibles"`
	Active    int            `json:"total_activas" yaml:"total_activas"`
	Inactive  int            `json:"inactivas" yaml:"inactivas"`
	ByKind    map[string]int `json:"por_tipo" yaml:"por_tipo"`
}

// Statistics counts sections per kind and activity.
func (r *Registry) Statistics() Stats {
	s := Stats{
		Available: len(r.Available),
		Active:    len(r.Active),
		ByKind:    make(map[string]int),
	}
	s.Inactive = s.Available - s.Active
	for _, kind := range []string{"capitulos", "contenido", "requeridas", "personalizadas"} {
		s.ByKind[kind] = len(r.ByKind(kind))
	}
	return s
}
