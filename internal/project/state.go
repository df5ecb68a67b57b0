// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package project owns the in-memory project state and its on-disk JSON
// form. Every mutation goes through a State method so the undo stack and
// the modification timestamp stay consistent.
// Implements: prd006-estado-proyecto (R1-R4);
//
//	docs/ARCHITECTURE § Project State.
package project

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/escriba/internal/refs"
	"github.com/pdiddy/escriba/internal/section"
	"github.com/pdiddy/escriba/pkg/types"
)

// maxHistory caps the undo stack. The oldest snapshot is dropped when a
// new mutation would exceed it.
const maxHistory = 50

// State is the complete mutable project: general information, per-section
// content, the bibliography, the section registry, and format options.
// There is exactly one State per running command; nothing in the package
// is a singleton.
type State struct {
	Info       map[string]string
	Content    map[string]string
	References []types.Reference
	Sections   *section.Registry
	Format     types.FormatConfig

	Created  string
	Modified string

	undo []snapshot
	redo []snapshot

	// savedSum is the content hash at the last Save or Load. Dirty
	// compares against it.
	savedSum [sha256.Size]byte
}

// snapshot is one undo/redo entry: a deep copy of everything a mutation
// can touch.
type snapshot struct {
	Info       map[string]string
	Content    map[string]string
	References []types.Reference
	Sections   *section.Registry
	Format     types.FormatConfig
}

// New returns an empty project with the base section set active and APA
// format defaults.
func New() *State {
	now := time.Now().Format(time.RFC3339)
	s := &State{
		Info:     map[string]string{},
		Content:  map[string]string{},
		Sections: section.New(),
		Format:   types.DefaultFormatConfig(),
		Created:  now,
		Modified: now,
	}
	s.savedSum = s.sum()
	return s
}

// capture pushes the current state onto the undo stack and clears redo.
// Call it before applying any mutation.
func (s *State) capture() {
	s.undo = append(s.undo, s.snapshot())
	if len(s.undo) > maxHistory {
		s.undo = s.undo[1:]
	}
	s.redo = nil
}

func (s *State) snapshot() snapshot {
	return snapshot{
		Info:       copyMap(s.Info),
		Content:    copyMap(s.Content),
		References: append([]types.Reference(nil), s.References...),
		Sections:   s.Sections.Clone(),
		Format:     s.Format,
	}
}

func (s *State) restore(snap snapshot) {
	s.Info = snap.Info
	s.Content = snap.Content
	s.References = snap.References
	s.Sections = snap.Sections
	s.Format = snap.Format
	s.touch()
}

func (s *State) touch() {
	s.Modified = time.Now().Format(time.RFC3339)
}

// Undo reverts the most recent mutation. It reports whether anything was
// undone.
func (s *State) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	last := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, s.snapshot())
	s.restore(last)
	return true
}

// Redo re-applies the most recently undone mutation. Any new mutation
// after an Undo discards the redo stack.
func (s *State) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	last := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, s.snapshot())
	s.restore(last)
	return true
}

// CanUndo reports whether the undo stack is non-empty.
func (s *State) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (s *State) CanRedo() bool { return len(s.redo) > 0 }

// SetInfo sets one general-information field.
func (s *State) SetInfo(field, value string) {
	s.capture()
	s.Info[field] = strings.TrimSpace(value)
	s.touch()
}

// SetContent replaces the text of one section. The section must exist and
// must not be a chapter heading.
func (s *State) SetContent(id, text string) error {
	sec, ok := s.Sections.Get(id)
	if !ok {
		return fmt.Errorf("sección desconocida: %s", id)
	}
	if sec.Chapter {
		return fmt.Errorf("la sección %s es un capítulo y no lleva contenido", id)
	}
	s.capture()
	s.Content[id] = text
	s.touch()
	return nil
}

// AddReference validates and appends a reference, assigning its id and
// timestamps.
func (s *State) AddReference(r types.Reference) (types.Reference, error) {
	assigned, err := refs.New(r, s.References)
	if err != nil {
		return types.Reference{}, err
	}
	s.capture()
	s.References = append(s.References, assigned)
	s.touch()
	return assigned, nil
}

// RemoveReference deletes the reference at index (0-based, insertion
// order).
func (s *State) RemoveReference(index int) error {
	if index < 0 || index >= len(s.References) {
		return fmt.Errorf("índice de referencia fuera de rango: %d", index)
	}
	s.capture()
	s.References = append(s.References[:index], s.References[index+1:]...)
	s.touch()
	return nil
}

// EditReference replaces the reference at index, keeping its id and
// creation date and stamping the modification date.
func (s *State) EditReference(index int, r types.Reference) error {
	if index < 0 || index >= len(s.References) {
		return fmt.Errorf("índice de referencia fuera de rango: %d", index)
	}
	if err := refs.Validate(r); err != nil {
		return err
	}
	s.capture()
	old := s.References[index]
	r.ID = old.ID
	r.Added = old.Added
	r.Modified = time.Now().Format(time.RFC3339)
	s.References[index] = r
	s.touch()
	return nil
}

// SetFormat replaces the format options.
func (s *State) SetFormat(f types.FormatConfig) {
	s.capture()
	s.Format = f
	s.touch()
}

// Mutate runs fn against the section registry under a single undo entry.
// fn returning an error rolls the registry back.
func (s *State) Mutate(fn func(*section.Registry) error) error {
	s.capture()
	if err := fn(s.Sections); err != nil {
		s.restore(s.undo[len(s.undo)-1])
		s.undo = s.undo[:len(s.undo)-1]
		return err
	}
	s.touch()
	return nil
}

// Dirty reports whether the state differs from the last saved or loaded
// form.
func (s *State) Dirty() bool {
	return s.sum() != s.savedSum
}

// sum hashes the serializable state. Timestamps are excluded so merely
// touching the clock never marks the project dirty.
func (s *State) sum() [sha256.Size]byte {
	file := s.toFile()
	file.Created = ""
	file.Modified = ""
	data, err := json.Marshal(file)
	if err != nil {
		// Marshaling maps of strings cannot fail; keep the zero sum.
		return [sha256.Size]byte{}
	}
	return sha256.Sum256(data)
}

// Summary aggregates the counters the CLI status command prints.
type Summary struct {
	Title       string
	ActiveCount int
	WithContent int
	Words       int
	References  int
	Modified    string
	Dirty       bool
}

// Summarize returns the status counters.
func (s *State) Summarize() Summary {
	sum := Summary{
		Title:       s.Info["titulo"],
		ActiveCount: len(s.Sections.Active),
		References:  len(s.References),
		Modified:    s.Modified,
		Dirty:       s.Dirty(),
	}
	for _, id := range s.Sections.Active {
		text := strings.TrimSpace(s.Content[id])
		if text == "" {
			continue
		}
		sum.WithContent++
		sum.Words += len(strings.Fields(text))
	}
	return sum
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
