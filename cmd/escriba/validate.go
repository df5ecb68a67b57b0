// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/escriba/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the project before generating a document",
	Long: `Validate runs every pre-generation check: required information fields,
required sections with enough content, citation tags in the theory section,
and citation/reference coherence. Problems block export unless --force is
given; warnings never block.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	state, _, err := loadProject(cmd)
	if err != nil {
		return err
	}

	in := validate.FromRegistry(state.Info, state.Sections, state.Content, state.References)
	rep := validate.Check(in)

	for _, p := range rep.Problems {
		fmt.Printf("problema: %s\n", p)
	}
	for _, w := range rep.Warnings {
		fmt.Printf("aviso:    %s\n", w)
	}

	st := validate.Statistics(in)
	fmt.Printf("\nSecciones con contenido: %d/%d (%.0f%%)\n", st.WithContent, st.Sections, st.Completion*100)
	fmt.Printf("Palabras: %d   Citas: %d   Referencias: %d\n", st.Words, st.Citations, st.References)

	if !rep.Ready() {
		return fmt.Errorf("el proyecto tiene %d problema(s); corrija o exporte con --force", len(rep.Problems))
	}
	fmt.Println("\nProyecto listo para generar.")
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
