// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ReferenceType classifies a bibliography entry. The values appear verbatim
// in project files and in the reference library, so they keep the Spanish
// labels of the project wire format. Per prd003-referencias R1.1.
type ReferenceType string

const (
	RefLibro       ReferenceType = "Libro"
	RefArticulo    ReferenceType = "Artículo"
	RefWeb         ReferenceType = "Web"
	RefTesis       ReferenceType = "Tesis"
	RefConferencia ReferenceType = "Conferencia"
	RefInforme     ReferenceType = "Informe"
)

// Reference is one bibliography entry. JSON tags follow the project file
// format of prd006-estado-proyecto R3: Spanish keys, verbatim round-trip.
type Reference struct {
	// ID is a sequence number assigned on insertion.
	ID int `json:"id" yaml:"id"`

	// Type classifies the entry; unknown values fall back to the Libro
	// formatting template.
	Type ReferenceType `json:"tipo" yaml:"tipo"`

	// Author is the author field in APA form ("Apellido, N."). The text
	// before the first comma is the sort key for bibliography ordering.
	Author string `json:"autor" yaml:"autor"`

	// Year is the publication year as typed, normally a 4-digit string.
	Year string `json:"año" yaml:"año"`

	// Title is the work's title.
	Title string `json:"titulo" yaml:"titulo"`

	// Source is the publisher, journal, URL, or institution depending on
	// Type. May be empty; formatting substitutes a per-type placeholder.
	Source string `json:"fuente" yaml:"fuente"`

	// Added is the RFC 3339 timestamp of insertion.
	Added string `json:"fecha_agregada,omitempty" yaml:"fecha_agregada,omitempty"`

	// Modified is set when the entry is edited after insertion.
	Modified string `json:"fecha_modificada,omitempty" yaml:"fecha_modificada,omitempty"`
}
