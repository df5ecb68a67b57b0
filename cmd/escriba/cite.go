// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/escriba/internal/cite"
	"github.com/pdiddy/escriba/internal/project"
	"github.com/pdiddy/escriba/pkg/types"
)

var citeCmd = &cobra.Command{
	Use:   "cite",
	Short: "Check and analyze [CITA:...] citation tags",
	Long: `Cite works with the citation tag mini-language embedded in section
text. Tags are replaced with APA renderings only at assembly time; these
commands inspect them in place: syntax checking, density analysis, the
per-document citation report, and coherence against the bibliography.`,
}

// projectText joins the content of the sections named by --section, or of
// every active section.
func projectText(cmd *cobra.Command, state *project.State) (string, error) {
	id, _ := cmd.Flags().GetString("section")
	if id != "" {
		if _, ok := state.Sections.Get(id); !ok {
			return "", fmt.Errorf("sección desconocida: %s", id)
		}
		return state.Content[id], nil
	}

	var parts []string
	for _, sid := range state.Sections.Active {
		if text := strings.TrimSpace(state.Content[sid]); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

// --- process subcommand ---

var citeProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Print section text with citation tags replaced by APA renderings",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _, err := loadProject(cmd)
		if err != nil {
			return err
		}
		text, err := projectText(cmd, state)
		if err != nil {
			return err
		}
		fmt.Println(cite.Process(text))
		return nil
	},
}

// --- check subcommand ---

var citeCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report malformed tags and near-miss citation patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _, err := loadProject(cmd)
		if err != nil {
			return err
		}
		text, err := projectText(cmd, state)
		if err != nil {
			return err
		}

		suggestions := cite.Suggest(text)
		if len(suggestions) == 0 {
			fmt.Println("Sin problemas de citas.")
			return nil
		}
		for _, s := range suggestions {
			fmt.Println(s)
		}
		return fmt.Errorf("%d problema(s) de citas", len(suggestions))
	},
}

// --- density subcommand ---

var citeDensityCmd = &cobra.Command{
	Use:   "density <sección>",
	Short: "Analyze citation density of one section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _, err := loadProject(cmd)
		if err != nil {
			return err
		}
		id := args[0]
		if _, ok := state.Sections.Get(id); !ok {
			return fmt.Errorf("sección desconocida: %s", id)
		}

		// Density is measured over rendered text: tags count as the
		// parenthetical citations they become.
		rep := cite.AnalyzeDensity(cite.Process(state.Content[id]), id)
		fmt.Printf("Palabras:   %d\n", rep.Words)
		fmt.Printf("Citas:      %d\n", rep.Citations)
		fmt.Printf("Densidad:   %.2f por 100 palabras (óptimo %.1f-%.1f)\n",
			rep.Density, rep.Range[0], rep.Range[1])
		fmt.Printf("Valoración: %s\n", rep.Assessment)
		return nil
	},
}

// --- report subcommand ---

var citeReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the per-kind citation report for the document",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _, err := loadProject(cmd)
		if err != nil {
			return err
		}
		text, err := projectText(cmd, state)
		if err != nil {
			return err
		}
		return cite.WriteReport(os.Stdout, text)
	},
}

// --- coherence subcommand ---

var citeCoherenceCmd = &cobra.Command{
	Use:   "coherence",
	Short: "Compare cited works against the bibliography",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _, err := loadProject(cmd)
		if err != nil {
			return err
		}
		text, err := projectText(cmd, state)
		if err != nil {
			return err
		}

		rep := cite.CheckCoherence(cite.Citations(text), state.References)
		if rep.Complete {
			fmt.Println("Citas y referencias coherentes.")
			return nil
		}
		for _, c := range rep.Unreferenced {
			fmt.Printf("cita sin referencia:  %s (%s)\n", c.Author, c.Year)
		}
		for _, r := range rep.Uncited {
			fmt.Printf("referencia sin citar: %s (%s)\n", r.Author, r.Year)
		}
		return nil
	},
}

// --- template subcommand ---

var citeTemplateCmd = &cobra.Command{
	Use:   "template [tipo]",
	Short: "Show the insertion skeleton for a citation kind",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			for _, kind := range types.CitationKinds {
				fmt.Printf("%-14s %s\n", kind, cite.Template(kind))
			}
			return nil
		}
		kind := types.CitationKind(args[0])
		if !kind.Valid() {
			return fmt.Errorf("tipo de cita desconocido: %s", args[0])
		}
		fmt.Println(cite.Template(kind))
		return nil
	},
}

func init() {
	citeCmd.PersistentFlags().String("section", "", "restrict to one section id")

	citeCmd.AddCommand(citeProcessCmd)
	citeCmd.AddCommand(citeCheckCmd)
	citeCmd.AddCommand(citeDensityCmd)
	citeCmd.AddCommand(citeReportCmd)
	citeCmd.AddCommand(citeCoherenceCmd)
	citeCmd.AddCommand(citeTemplateCmd)

	rootCmd.AddCommand(citeCmd)
}
