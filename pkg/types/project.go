// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ProjectFileVersion is the current on-disk format version. Files written
// by older versions load with a warning, never an error.
const ProjectFileVersion = "2.0"

// FormatConfig holds the document formatting options. Keys match the
// formato_config block of the project file. Per prd006-estado-proyecto R3.
type FormatConfig struct {
	// TextFont and TextSize style body paragraphs.
	TextFont string `json:"fuente_texto" yaml:"fuente_texto"`
	TextSize int    `json:"tamaño_texto" yaml:"tamaño_texto"`

	// TitleFont and TitleSize style headings.
	TitleFont string `json:"fuente_titulo" yaml:"fuente_titulo"`
	TitleSize int    `json:"tamaño_titulo" yaml:"tamaño_titulo"`

	// LineSpacing is 1.0, 1.5, or 2.0.
	LineSpacing float64 `json:"interlineado" yaml:"interlineado"`

	// Margin is the page margin in centimeters, applied to all four sides.
	Margin float64 `json:"margen" yaml:"margen"`

	// Justified enables full justification of body text.
	Justified bool `json:"justificado" yaml:"justificado"`

	// Indent enables the APA first-line indent on body paragraphs.
	// Individual paragraphs may still suppress it (block quotes, lists).
	Indent bool `json:"sangria" yaml:"sangria"`
}

// DefaultFormatConfig returns the APA defaults the original templates use.
func DefaultFormatConfig() FormatConfig {
	return FormatConfig{
		TextFont:    "Times New Roman",
		TextSize:    12,
		TitleFont:   "Times New Roman",
		TitleSize:   14,
		LineSpacing: 2.0,
		Margin:      2.54,
		Justified:   true,
		Indent:      true,
	}
}

// ProjectFile is the on-disk representation of a project. Top-level keys
// are fixed by the format: saving then loading must reproduce the same
// active-section order, the same content per id, and the same reference
// list verbatim. Per prd006-estado-proyecto R3.
type ProjectFile struct {
	Version  string `json:"version"`
	Created  string `json:"fecha_creacion"`
	Modified string `json:"fecha_modificacion"`

	// Info maps general-information field names (titulo, institucion,
	// estudiantes, tutores, ...) to their values.
	Info map[string]string `json:"informacion_general"`

	// Content maps section ids to raw section text, citation tags included.
	Content map[string]string `json:"contenido_secciones"`

	// References is the bibliography in insertion order. Rendering sorts a
	// copy; the stored list is never reordered.
	References []Reference `json:"referencias"`

	// Active is the ordered list of section ids that will appear in the
	// generated document. It is the single source of truth for output order.
	Active []string `json:"secciones_activas"`

	// Sections maps every known section id to its descriptor.
	Sections map[string]Section `json:"secciones_disponibles"`

	// Format holds the document formatting options.
	Format FormatConfig `json:"formato_config"`
}

// LibraryConfig configures the personal reference library store.
// Per prd007-biblioteca R1.
type LibraryConfig struct {
	// Dir is the base directory holding the library database.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults limits search result count. Zero uses the store default.
	MaxResults int `json:"max_results" yaml:"max_results"`
}
