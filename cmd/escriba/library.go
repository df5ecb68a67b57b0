// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/escriba/internal/library"
	"github.com/pdiddy/escriba/internal/project"
	"github.com/pdiddy/escriba/internal/refs"
	"github.com/pdiddy/escriba/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the personal reference library",
	Long: `Library manages a reference collection shared across projects, stored
in SQLite with full-text search. Save a project's bibliography once and
pull matching references into the next project without retyping them.`,
}

// libraryConfig resolves the library directory: flag, config file, then
// ~/.escriba/biblioteca.
func libraryConfig(cmd *cobra.Command) types.LibraryConfig {
	dir, _ := cmd.Flags().GetString("library-dir")
	if dir == "" {
		dir = viper.GetString("library.dir")
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(home, ".escriba", "biblioteca")
		} else {
			dir = "biblioteca"
		}
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return types.LibraryConfig{Dir: dir, MaxResults: maxResults}
}

// --- save subcommand ---

var librarySaveCmd = &cobra.Command{
	Use:     "save",
	Aliases: []string{"add"},
	Short:   "Store the project's references in the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, path, err := loadProject(cmd)
		if err != nil {
			return err
		}
		if len(state.References) == 0 {
			return fmt.Errorf("el proyecto no tiene referencias que guardar")
		}

		store, err := library.NewStore(libraryConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		_, err = store.ImportProject(context.Background(), state.References, filepath.Base(path), os.Stdout)
		return err
	},
}

// --- search subcommand ---

var librarySearchCmd = &cobra.Command{
	Use:   "search [término]",
	Short: "Search the library with full-text search and filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := library.NewStore(libraryConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Retrieve(context.Background(), libraryQuery(cmd, args))
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Sin resultados.")
			return nil
		}
		for i, e := range entries {
			fmt.Printf("%3d  [%s] %s", i+1, e.Reference.Type, refs.Format(e.Reference))
			if len(e.Tags) > 0 {
				fmt.Printf("  {%s}", strings.Join(e.Tags, ", "))
			}
			fmt.Println()
		}
		fmt.Printf("\n%d resultado(s)\n", len(entries))
		return nil
	},
}

// --- pull subcommand ---

var libraryPullCmd = &cobra.Command{
	Use:   "pull [término]",
	Short: "Copy matching library references into the project",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := library.NewStore(libraryConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Retrieve(context.Background(), libraryQuery(cmd, args))
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("sin resultados; nada que traer al proyecto")
		}

		return withProject(cmd, func(state *project.State) error {
			added := 0
			for _, e := range entries {
				if hasReference(state.References, e.Reference) {
					continue
				}
				if _, err := state.AddReference(e.Reference); err != nil {
					return err
				}
				added++
			}
			fmt.Printf("Agregadas %d de %d referencia(s)\n", added, len(entries))
			return nil
		})
	},
}

// hasReference reports whether the project already holds the same work.
func hasReference(list []types.Reference, r types.Reference) bool {
	for _, existing := range list {
		if strings.EqualFold(existing.Author, r.Author) &&
			existing.Year == r.Year &&
			strings.EqualFold(existing.Title, r.Title) {
			return true
		}
	}
	return false
}

// --- export subcommand ---

var libraryExportCmd = &cobra.Command{
	Use:   "export <archivo>",
	Short: "Export the library to YAML or JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := library.NewStore(libraryConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		opts := libraryQuery(cmd, nil)
		path := args[0]

		switch {
		case strings.HasSuffix(path, ".json"):
			err = store.ExportJSON(context.Background(), path, opts)
		default:
			err = store.ExportYAML(context.Background(), path, opts)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Biblioteca exportada a %s\n", path)
		return nil
	},
}

// --- shared helpers ---

func libraryQuery(cmd *cobra.Command, args []string) library.QueryOptions {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	refType, _ := cmd.Flags().GetString("type")
	year, _ := cmd.Flags().GetString("year")
	tag, _ := cmd.Flags().GetString("tag")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := library.QueryOptions{
		Query:      query,
		Type:       types.ReferenceType(refType),
		Year:       year,
		MaxResults: limit,
	}
	if tag != "" {
		opts.Tags = []string{tag}
	}
	return opts
}

func init() {
	libraryCmd.PersistentFlags().String("library-dir", "", "library directory (default: ~/.escriba/biblioteca)")
	libraryCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	for _, c := range []*cobra.Command{librarySearchCmd, libraryPullCmd, libraryExportCmd} {
		c.Flags().String("query", "", "full-text search over author, title, and source")
		c.Flags().String("type", "", "filter by reference type")
		c.Flags().String("year", "", "filter by publication year")
		c.Flags().String("tag", "", "filter by tag")
		c.Flags().Int("limit", 0, "maximum results (0 = use default)")
	}

	libraryCmd.AddCommand(librarySaveCmd)
	libraryCmd.AddCommand(librarySearchCmd)
	libraryCmd.AddCommand(libraryPullCmd)
	libraryCmd.AddCommand(libraryExportCmd)

	rootCmd.AddCommand(libraryCmd)
}
