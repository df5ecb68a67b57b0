// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package project

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/escriba/internal/section"
	"github.com/pdiddy/escriba/pkg/types"
)

// toFile builds the on-disk form from the live state. The reference list
// and the active-section order are written verbatim (R3.2).
func (s *State) toFile() types.ProjectFile {
	return types.ProjectFile{
		Version:    types.ProjectFileVersion,
		Created:    s.Created,
		Modified:   s.Modified,
		Info:       s.Info,
		Content:    s.Content,
		References: s.References,
		Active:     s.Sections.Active,
		Sections:   s.Sections.Available,
		Format:     s.Format,
	}
}

// fromFile builds a fresh state from the on-disk form. Missing maps are
// replaced with empty ones; a missing format block gets the defaults.
// Sections absent from the file (added by a newer base set) are merged in
// as inactive.
func fromFile(f types.ProjectFile) *State {
	s := &State{
		Info:       f.Info,
		Content:    f.Content,
		References: f.References,
		Sections:   &section.Registry{Available: f.Sections, Active: f.Active},
		Format:     f.Format,
		Created:    f.Created,
		Modified:   f.Modified,
	}
	if s.Info == nil {
		s.Info = map[string]string{}
	}
	if s.Content == nil {
		s.Content = map[string]string{}
	}
	if s.Sections.Available == nil {
		s.Sections = section.New()
	} else {
		_, base := section.Base()
		for id, sec := range base {
			if _, ok := s.Sections.Available[id]; !ok {
				s.Sections.Available[id] = sec
			}
		}
	}
	if s.Format == (types.FormatConfig{}) {
		s.Format = types.DefaultFormatConfig()
	}
	if s.Created == "" {
		s.Created = time.Now().Format(time.RFC3339)
	}
	s.savedSum = s.sum()
	return s
}

// Save writes the project to path atomically: the JSON is written to a
// temp file in the destination directory and renamed into place, so a
// crash mid-write never truncates an existing project.
func (s *State) Save(path string) error {
	if path == "" {
		return fmt.Errorf("ruta de proyecto vacía")
	}
	s.Modified = time.Now().Format(time.RFC3339)

	data, err := json.MarshalIndent(s.toFile(), "", "  ")
	if err != nil {
		return fmt.Errorf("serializing project: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".escriba-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing project: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	s.savedSum = s.sum()
	return nil
}

// Load reads a project file. warn receives non-fatal notices (an older
// format version); pass nil to discard them. On any error the caller's
// current state is unaffected because Load builds a new State.
func Load(path string, warn io.Writer) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project: %w", err)
	}

	var f types.ProjectFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing project %s: %w", path, err)
	}

	if f.Version != types.ProjectFileVersion && warn != nil {
		fmt.Fprintf(warn, "aviso: el proyecto usa el formato %q (actual %q); se guardará en el formato actual\n",
			f.Version, types.ProjectFileVersion)
	}

	return fromFile(f), nil
}
