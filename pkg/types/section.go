// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Section describes one addressable unit of the document. JSON tags follow
// the project file format: descriptors round-trip verbatim under
// secciones_disponibles. Per prd002-secciones R1.
type Section struct {
	// Title is the display title. It may carry a leading emoji, which is
	// stripped before rendering.
	Title string `json:"titulo" yaml:"titulo"`

	// Instruction is guidance shown to the author. Never part of output.
	Instruction string `json:"instruccion" yaml:"instruccion"`

	// Required marks sections that must hold at least 50 characters of
	// content before the document may be generated without override.
	Required bool `json:"requerida" yaml:"requerida"`

	// Chapter marks pure headings used to group subsequent sections.
	// Chapter sections never carry body content.
	Chapter bool `json:"capitulo" yaml:"capitulo"`

	// Base marks built-in sections. Only their Instruction may be edited,
	// and they are never removed.
	Base bool `json:"base" yaml:"base"`

	// Custom marks user-created sections.
	Custom bool `json:"personalizada,omitempty" yaml:"personalizada,omitempty"`

	// Order records the insertion position of custom sections.
	Order int `json:"orden,omitempty" yaml:"orden,omitempty"`
}
