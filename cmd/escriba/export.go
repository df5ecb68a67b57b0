// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/escriba/internal/export"
	"github.com/pdiddy/escriba/internal/validate"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Generate the Word document",
	Long: `Export validates the project, assembles the document, and writes a
.docx file. Validation problems block the export unless --force is given.
The document is written atomically; a failed export never leaves a partial
file.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	state, path, err := loadProject(cmd)
	if err != nil {
		return err
	}

	if output == "" {
		output = strings.TrimSuffix(path, ".json") + ".docx"
	}

	in := validate.FromRegistry(state.Info, state.Sections, state.Content, state.References)
	rep := validate.Check(in)
	for _, w := range rep.Warnings {
		fmt.Fprintf(os.Stderr, "aviso: %s\n", w)
	}
	if !rep.Ready() {
		for _, p := range rep.Problems {
			fmt.Fprintf(os.Stderr, "problema: %s\n", p)
		}
		if !force {
			return fmt.Errorf("el proyecto tiene %d problema(s); use --force para exportar de todos modos", len(rep.Problems))
		}
		fmt.Fprintln(os.Stderr, "Exportando con problemas (--force).")
	}

	req := export.Request{
		Path:    output,
		Input:   assembleInput(state),
		Options: assembleOptions(cmd),
		Progress: func(fraction float64) {
			fmt.Fprintf(os.Stderr, "\r%3.0f%%", fraction*100)
		},
	}

	res := <-export.Start(context.Background(), req)
	fmt.Fprintln(os.Stderr)
	if res.Err != nil {
		return res.Err
	}

	fmt.Printf("Documento generado: %s (%d bloques)\n", res.Path, res.Blocks)
	return nil
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output .docx path (default: project name with .docx)")
	exportCmd.Flags().Bool("force", false, "export even with validation problems")
	addFrontMatterFlags(exportCmd)

	rootCmd.AddCommand(exportCmd)
}
