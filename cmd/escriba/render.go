// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/escriba/internal/assemble"
	"github.com/pdiddy/escriba/internal/project"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print a plain-text preview of the assembled document",
	Long: `Render assembles the document and writes a plain-text preview to
stdout: processed citations, section headings, indentation marks, and the
sorted bibliography. Nothing is written to the project file.`,
	RunE: runRender,
}

// assembleInput builds the assembly snapshot from the live state.
func assembleInput(state *project.State) assemble.Input {
	return assemble.Input{
		Info:       state.Info,
		Sections:   state.Sections.Available,
		Active:     state.Sections.Active,
		Content:    state.Content,
		References: state.References,
		Format:     state.Format,
	}
}

// assembleOptions reads the front-matter flags shared by render and
// export.
func assembleOptions(cmd *cobra.Command) assemble.Options {
	cover, _ := cmd.Flags().GetBool("cover")
	acknowledgments, _ := cmd.Flags().GetBool("acknowledgments")
	index, _ := cmd.Flags().GetBool("index")
	ackText, _ := cmd.Flags().GetString("acknowledgments-text")
	return assemble.Options{
		CoverPage:           cover,
		Acknowledgments:     acknowledgments,
		Index:               index,
		AcknowledgmentsText: ackText,
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	state, _, err := loadProject(cmd)
	if err != nil {
		return err
	}

	blocks := assemble.Build(assembleInput(state), assembleOptions(cmd))
	if len(blocks) == 0 {
		return fmt.Errorf("el documento no tiene contenido")
	}
	return assemble.RenderText(os.Stdout, blocks)
}

func addFrontMatterFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("cover", false, "include the cover page")
	cmd.Flags().Bool("acknowledgments", false, "include the acknowledgments page")
	cmd.Flags().String("acknowledgments-text", "", "acknowledgments body text")
	cmd.Flags().Bool("index", false, "include the index instructions page")
}

func init() {
	addFrontMatterFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}
