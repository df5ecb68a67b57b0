// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package project

import (
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/escriba/pkg/types"
)

// Template is a reusable project structure: which sections are active and
// in what order, plus optional format overrides. Templates live in YAML
// files so a department can share one structure across projects.
type Template struct {
	Name        string   `yaml:"nombre"`
	Description string   `yaml:"descripcion,omitempty"`
	Sections    []string `yaml:"secciones"`

	// Format overrides the project's format options when present.
	Format *types.FormatConfig `yaml:"formato,omitempty"`
}

// builtinTemplates are the structures shipped with the tool.
var builtinTemplates = map[string]Template{
	"completo": {
		Name:        "completo",
		Description: "Estructura completa de proyecto académico (todas las secciones base)",
		Sections: []string{
			"resumen", "introduccion", "capitulo1", "planteamiento", "preguntas",
			"delimitaciones", "justificacion", "objetivos", "capitulo2",
			"marco_teorico", "capitulo3", "metodologia", "capitulo4", "desarrollo",
			"capitulo5", "resultados", "analisis_datos", "capitulo6", "discusion",
			"conclusiones",
		},
	},
	"basico": {
		Name:        "basico",
		Description: "Estructura mínima para trabajos cortos",
		Sections: []string{
			"introduccion", "objetivos", "marco_teorico", "metodologia",
			"conclusiones",
		},
	},
	"investigacion": {
		Name:        "investigacion",
		Description: "Estructura para informes de investigación con análisis de datos",
		Sections: []string{
			"resumen", "introduccion", "planteamiento", "preguntas", "objetivos",
			"marco_teorico", "metodologia", "resultados", "analisis_datos",
			"discusion", "conclusiones",
		},
	},
}

// BuiltinTemplates returns the shipped template names, sorted.
func BuiltinTemplates() []string {
	names := make([]string, 0, len(builtinTemplates))
	for name := range builtinTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupTemplate resolves name against the builtin set.
func LookupTemplate(name string) (Template, bool) {
	t, ok := builtinTemplates[name]
	return t, ok
}

// ReadTemplate loads a template from a YAML file.
func ReadTemplate(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("reading template: %w", err)
	}
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Template{}, fmt.Errorf("parsing template %s: %w", path, err)
	}
	if len(t.Sections) == 0 {
		return Template{}, fmt.Errorf("la plantilla %s no declara secciones", path)
	}
	return t, nil
}

// WriteTemplate saves the project's current structure as a template file,
// so it can be reused for the next project.
func WriteTemplate(path, name, description string, s *State) error {
	t := Template{
		Name:        name,
		Description: description,
		Sections:    append([]string(nil), s.Sections.Active...),
		Format:      &s.Format,
	}
	data, err := yaml.Marshal(&t)
	if err != nil {
		return fmt.Errorf("marshaling template: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyTemplate replaces the active-section list with the template's,
// under a single undo entry. Section ids the registry does not know are
// rejected before anything changes; existing section content is kept even
// for sections the template deactivates.
func (s *State) ApplyTemplate(t Template) error {
	for _, id := range t.Sections {
		if _, ok := s.Sections.Get(id); !ok {
			return fmt.Errorf("la plantilla usa una sección desconocida: %s", id)
		}
	}
	s.capture()
	s.Sections.Active = append([]string(nil), t.Sections...)
	if t.Format != nil {
		s.Format = *t.Format
	}
	s.touch()
	return nil
}
