// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package section manages the catalog of document sections and the ordered
// list of active sections that drives document assembly.
// Implements: prd002-secciones (R1-R4);
//
//	docs/ARCHITECTURE § Sections.
package section

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/pdiddy/escriba/pkg/types"
)

// idRe constrains section ids to snake_case keys.
var idRe = regexp.MustCompile(`^[a-z0-9_]+$`)

// critical lists base sections that may never be removed even though some
// of them are not flagged Required.
var critical = map[string]bool{
	"introduccion":  true,
	"objetivos":     true,
	"marco_teorico": true,
	"metodologia":   true,
	"conclusiones":  true,
}

// Registry holds every known section descriptor plus the ordered active
// list. Active is the single source of truth for output order (R1.2).
type Registry struct {
	Available map[string]types.Section
	Active    []string
}

// Base returns the built-in section set in document order. Titles keep
// their emoji prefixes; assembly strips them before rendering.
func Base() ([]string, map[string]types.Section) {
	order := []string{
		"resumen", "introduccion", "capitulo1", "planteamiento", "preguntas",
		"delimitaciones", "justificacion", "objetivos", "capitulo2",
		"marco_teorico", "capitulo3", "metodologia", "capitulo4", "desarrollo",
		"capitulo5", "resultados", "analisis_datos", "capitulo6", "discusion",
		"conclusiones",
	}
	sections := map[string]types.Section{
		"resumen":        {Title: "📄 Resumen", Instruction: "Resumen ejecutivo del proyecto (150-300 palabras)", Base: true},
		"introduccion":   {Title: "🔍 Introducción", Instruction: "Presenta el tema, contexto e importancia", Required: true, Base: true},
		"capitulo1":      {Title: "📖 CAPÍTULO I", Instruction: "Título de capítulo", Chapter: true, Base: true},
		"planteamiento":  {Title: "❓ Planteamiento del Problema", Instruction: "Define el problema a investigar", Required: true, Base: true},
		"preguntas":      {Title: "❔ Preguntas de Investigación", Instruction: "Pregunta general y específicas", Required: true, Base: true},
		"delimitaciones": {Title: "📏 Delimitaciones", Instruction: "Límites del estudio (temporal, espacial, conceptual)", Base: true},
		"justificacion":  {Title: "💡 Justificación", Instruction: "Explica por qué es importante investigar", Required: true, Base: true},
		"objetivos":      {Title: "🎯 Objetivos", Instruction: "General y específicos (verbos en infinitivo)", Required: true, Base: true},
		"capitulo2":      {Title: "📚 CAPÍTULO II - ESTADO DEL ARTE", Instruction: "Título de capítulo", Chapter: true, Base: true},
		"marco_teorico":  {Title: "📖 Marco Teórico", Instruction: "Base teórica y antecedentes (USA CITAS)", Required: true, Base: true},
		"capitulo3":      {Title: "🔬 CAPÍTULO III", Instruction: "Título de capítulo", Chapter: true, Base: true},
		"metodologia":    {Title: "⚙️ Marco Metodológico", Instruction: "Tipo de estudio y técnicas de recolección", Required: true, Base: true},
		"capitulo4":      {Title: "🛠️ CAPÍTULO IV - DESARROLLO", Instruction: "Título de capítulo", Chapter: true, Base: true},
		"desarrollo":     {Title: "⚙️ Desarrollo", Instruction: "Proceso de investigación paso a paso", Base: true},
		"capitulo5":      {Title: "📊 CAPÍTULO V - ANÁLISIS DE DATOS", Instruction: "Título de capítulo", Chapter: true, Base: true},
		"resultados":     {Title: "📊 Resultados", Instruction: "Datos obtenidos (gráficos, tablas)", Base: true},
		"analisis_datos": {Title: "📈 Análisis de Datos", Instruction: "Interpretación de resultados", Base: true},
		"capitulo6":      {Title: "💬 CAPÍTULO VI", Instruction: "Título de capítulo", Chapter: true, Base: true},
		"discusion":      {Title: "💬 Discusión", Instruction: "Confronta resultados con teoría", Base: true},
		"conclusiones":   {Title: "✅ Conclusiones", Instruction: "Hallazgos principales y respuestas a objetivos", Required: true, Base: true},
	}
	return order, sections
}

// New returns a registry initialized with the base section set, all active.
func New() *Registry {
	order, sections := Base()
	return &Registry{Available: sections, Active: order}
}

// Get returns the descriptor for id.
func (r *Registry) Get(id string) (types.Section, bool) {
	s, ok := r.Available[id]
	return s, ok
}

// Add registers a custom section and appends it to the active list (R2.1).
func (r *Registry) Add(id string, s types.Section) error {
	if _, exists := r.Available[id]; exists {
		return fmt.Errorf("ya existe una sección con id %q", id)
	}
	if !idRe.MatchString(id) {
		return fmt.Errorf("id inválido %q: solo letras minúsculas, números y guiones bajos", id)
	}
	if s.Title == "" {
		return fmt.Errorf("el campo 'titulo' es requerido")
	}
	if s.Instruction == "" {
		return fmt.Errorf("el campo 'instruccion' es requerido")
	}

	s.Base = false
	s.Custom = true
	s.Order = len(r.Available)
	r.Available[id] = s
	r.Active = append(r.Active, id)
	return nil
}

// Remove deletes a section. Required sections and the critical base set are
// protected (R2.2).
func (r *Registry) Remove(id string) error {
	s, ok := r.Available[id]
	if !ok {
		return fmt.Errorf("la sección %q no existe", id)
	}
	if s.Required {
		return fmt.Errorf("no se puede eliminar la sección requerida: %s", s.Title)
	}
	if critical[id] {
		return fmt.Errorf("no se puede eliminar la sección crítica: %s", s.Title)
	}

	delete(r.Available, id)
	r.Active = remove(r.Active, id)
	return nil
}

// Edit updates a section descriptor. Base sections only accept a new
// Instruction (R2.3); empty fields in upd leave the current value alone.
func (r *Registry) Edit(id string, upd types.Section) error {
	s, ok := r.Available[id]
	if !ok {
		return fmt.Errorf("la sección %q no existe", id)
	}

	if s.Base {
		if upd.Title != "" && upd.Title != s.Title {
			return fmt.Errorf("solo la instrucción es editable en secciones base")
		}
		if upd.Instruction != "" {
			s.Instruction = upd.Instruction
		}
		r.Available[id] = s
		return nil
	}

	if upd.Title != "" {
		s.Title = upd.Title
	}
	if upd.Instruction != "" {
		s.Instruction = upd.Instruction
	}
	s.Required = upd.Required
	s.Chapter = upd.Chapter
	r.Available[id] = s
	return nil
}

// Reorder replaces the active list with a new order. The new order must be
// a permutation of the current active set (R3.1).
func (r *Registry) Reorder(order []string) error {
	for _, id := range order {
		if _, ok := r.Available[id]; !ok {
			return fmt.Errorf("la sección %q no existe", id)
		}
	}
	if !samePermutation(order, r.Active) {
		return fmt.Errorf("el nuevo orden debe incluir exactamente las secciones activas")
	}
	r.Active = append([]string(nil), order...)
	return nil
}

// Move swaps a section with its neighbor. Direction is "arriba" or "abajo"
// (R3.2). It returns the section's new index.
func (r *Registry) Move(id, direction string) (int, error) {
	idx := index(r.Active, id)
	if idx < 0 {
		return 0, fmt.Errorf("la sección %q no está activa", id)
	}

	switch {
	case direction == "arriba" && idx > 0:
		r.Active[idx], r.Active[idx-1] = r.Active[idx-1], r.Active[idx]
		return idx - 1, nil
	case direction == "abajo" && idx < len(r.Active)-1:
		r.Active[idx], r.Active[idx+1] = r.Active[idx+1], r.Active[idx]
		return idx + 1, nil
	default:
		return 0, fmt.Errorf("no se puede mover la sección hacia %s", direction)
	}
}

// Activate appends a deactivated section to the end of the active list.
func (r *Registry) Activate(id string) error {
	if _, ok := r.Available[id]; !ok {
		return fmt.Errorf("la sección %q no existe", id)
	}
	if index(r.Active, id) < 0 {
		r.Active = append(r.Active, id)
	}
	return nil
}

// Deactivate drops a section from the active list. Required sections cannot
// be deactivated (R3.3).
func (r *Registry) Deactivate(id string) error {
	s, ok := r.Available[id]
	if !ok {
		return fmt.Errorf("la sección %q no existe", id)
	}
	if s.Required {
		return fmt.Errorf("no se puede desactivar la sección requerida: %s", s.Title)
	}
	r.Active = remove(r.Active, id)
	return nil
}

// ByKind filters the catalog: capitulos, contenido, requeridas,
// personalizadas, or base. Any other kind returns the full catalog.
func (r *Registry) ByKind(kind string) map[string]types.Section {
	out := make(map[string]types.Section)
	for id, s := range r.Available {
		keep := true
		switch kind {
		case "capitulos":
			keep = s.Chapter
		case "contenido":
			keep = !s.Chapter
		case "requeridas":
			keep = s.Required
		case "personalizadas":
			keep = s.Custom
		case "base":
			keep = s.Base
		}
		if keep {
			out[id] = s
		}
	}
	return out
}

// ActiveIDs returns a copy of the active list.
func (r *Registry) ActiveIDs() []string {
	return append([]string(nil), r.Active...)
}

// Clone deep-copies the registry for undo snapshots.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		Available: make(map[string]types.Section, len(r.Available)),
		Active:    append([]string(nil), r.Active...),
	}
	for id, s := range r.Available {
		c.Available[id] = s
	}
	return c
}

func index(list []string, id string) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}

func remove(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func samePermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
