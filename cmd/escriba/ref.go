// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/escriba/internal/project"
	"github.com/pdiddy/escriba/internal/refs"
	"github.com/pdiddy/escriba/pkg/types"
)

var refCmd = &cobra.Command{
	Use:   "ref",
	Short: "Manage bibliography references",
	Long: `Ref manages the project bibliography: adding, listing, and searching
references, and moving them through BibTeX, CSL, and APA text formats.
Stored references keep insertion order; every rendered listing is sorted
alphabetically per APA.`,
}

// --- add subcommand ---

var refAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a reference to the project",
	RunE:  runRefAdd,
}

func runRefAdd(cmd *cobra.Command, args []string) error {
	refType, _ := cmd.Flags().GetString("type")
	author, _ := cmd.Flags().GetString("author")
	year, _ := cmd.Flags().GetString("year")
	title, _ := cmd.Flags().GetString("title")
	source, _ := cmd.Flags().GetString("source")

	return withProject(cmd, func(state *project.State) error {
		ref, err := state.AddReference(types.Reference{
			Type:   types.ReferenceType(refType),
			Author: author,
			Year:   year,
			Title:  title,
			Source: source,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Referencia %d: %s\n", ref.ID, refs.Format(ref))
		return nil
	})
}

// --- list subcommand ---

var refListCmd = &cobra.Command{
	Use:   "list",
	Short: "List references in APA order",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _, err := loadProject(cmd)
		if err != nil {
			return err
		}
		sortBy, _ := cmd.Flags().GetString("sort")

		list := refs.SortedBy(state.References, sortBy)
		if len(list) == 0 {
			fmt.Println("El proyecto no tiene referencias.")
			return nil
		}
		for _, r := range list {
			fmt.Printf("%3d  [%s] %s\n", r.ID, r.Type, refs.Format(r))
		}
		return nil
	},
}

// --- rm subcommand ---

var refRmCmd = &cobra.Command{
	Use:   "rm <número>",
	Short: "Remove a reference by its position in insertion order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("número de referencia inválido: %s", args[0])
		}
		return withProject(cmd, func(state *project.State) error {
			return state.RemoveReference(index - 1)
		})
	},
}

// --- search subcommand ---

var refSearchCmd = &cobra.Command{
	Use:   "search <término>",
	Short: "Search references by author, title, source, or year",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _, err := loadProject(cmd)
		if err != nil {
			return err
		}
		matches := refs.Search(state.References, strings.Join(args, " "))
		for _, r := range matches {
			fmt.Printf("%3d  %s\n", r.ID, refs.Format(r))
		}
		fmt.Printf("\n%d coincidencia(s)\n", len(matches))
		return nil
	},
}

// --- import subcommand ---

var refImportCmd = &cobra.Command{
	Use:   "import <archivo.bib>",
	Short: "Import references from a BibTeX file",
	Long: `Import parses a BibTeX file and adds every entry the bibliography does
not already contain. Entries missing an author, year, or title are skipped
and counted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		return withProject(cmd, func(state *project.State) error {
			imported, skipped := refs.ImportBibTeX(string(data), state.References)
			for _, r := range imported {
				if _, err := state.AddReference(r); err != nil {
					return err
				}
			}
			fmt.Printf("Importadas: %d, omitidas: %d\n", len(imported), skipped)
			return nil
		})
	},
}

// --- export subcommand ---

var refExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the bibliography as APA text, BibTeX, or CSL YAML",
	RunE:  runRefExport,
}

func runRefExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	state, _, err := loadProject(cmd)
	if err != nil {
		return err
	}
	if len(state.References) == 0 {
		return fmt.Errorf("el proyecto no tiene referencias que exportar")
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "apa", "":
		if _, err := fmt.Fprintln(out, refs.ExportAPA(state.References)); err != nil {
			return err
		}
	case "bibtex":
		if err := refs.WriteBibTeX(out, state.References); err != nil {
			return err
		}
	case "csl":
		if err := refs.WriteCSL(out, state.References); err != nil {
			return err
		}
	default:
		return fmt.Errorf("formato desconocido %q: use apa, bibtex o csl", format)
	}

	if output != "" {
		fmt.Fprintf(os.Stderr, "Exportado a %s\n", output)
	}
	return nil
}

// --- stats subcommand ---

var refStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show bibliography statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _, err := loadProject(cmd)
		if err != nil {
			return err
		}
		st := refs.Statistics(state.References)
		fmt.Printf("Total: %d\n", st.Total)
		for t, n := range st.ByType {
			fmt.Printf("  %-14s %d\n", t, n)
		}
		if st.Total > 0 {
			fmt.Printf("Años: %s\n", st.YearRange)
		}
		return nil
	},
}

func init() {
	refAddCmd.Flags().String("type", "Libro", "reference type: Libro, Artículo, Web, Tesis, Conferencia, Informe")
	refAddCmd.Flags().String("author", "", "author in APA form: Apellido, N.")
	refAddCmd.Flags().String("year", "", "publication year")
	refAddCmd.Flags().String("title", "", "work title")
	refAddCmd.Flags().String("source", "", "publisher, journal, or URL")

	refListCmd.Flags().String("sort", "", "sort by: autor (default), año, titulo, tipo")

	refExportCmd.Flags().String("format", "apa", "export format: apa, bibtex, or csl")
	refExportCmd.Flags().String("output", "", "write to a file instead of stdout")

	refCmd.AddCommand(refAddCmd)
	refCmd.AddCommand(refListCmd)
	refCmd.AddCommand(refRmCmd)
	refCmd.AddCommand(refSearchCmd)
	refCmd.AddCommand(refImportCmd)
	refCmd.AddCommand(refExportCmd)
	refCmd.AddCommand(refStatsCmd)

	rootCmd.AddCommand(refCmd)
}
