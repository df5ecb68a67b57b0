// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/escriba/internal/assemble"
	"github.com/pdiddy/escriba/internal/project"
	"github.com/pdiddy/escriba/internal/section"
	"github.com/pdiddy/escriba/pkg/types"
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Manage document sections and their order",
	Long: `Section manages the catalog of sections and the ordered active list
that drives document assembly: adding custom sections, removing, editing,
reordering, and toggling activation.`,
}

// --- list subcommand ---

var sectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sections in document order",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _, err := loadProject(cmd)
		if err != nil {
			return err
		}
		all, _ := cmd.Flags().GetBool("all")

		ids := state.Sections.Active
		if all {
			ids = allSectionIDs(state.Sections)
		}
		for i, id := range ids {
			s, ok := state.Sections.Get(id)
			if !ok {
				continue
			}
			fmt.Printf("%2d  %-16s %s%s\n", i+1, id, s.Title, sectionMarks(state, id, s))
		}
		return nil
	},
}

// allSectionIDs returns active ids in order followed by inactive ones.
func allSectionIDs(reg *section.Registry) []string {
	ids := append([]string(nil), reg.Active...)
	active := map[string]bool{}
	for _, id := range reg.Active {
		active[id] = true
	}
	for _, id := range sortedSectionIDs(reg.Available) {
		if !active[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

func sortedSectionIDs(m map[string]types.Section) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sectionMarks(state *project.State, id string, s types.Section) string {
	var marks []string
	if s.Required {
		marks = append(marks, "requerida")
	}
	if s.Chapter {
		marks = append(marks, "capítulo")
	}
	if s.Custom {
		marks = append(marks, "personalizada")
	}
	if strings.TrimSpace(state.Content[id]) != "" {
		marks = append(marks, fmt.Sprintf("%d palabras", len(strings.Fields(state.Content[id]))))
	}
	if len(marks) == 0 {
		return ""
	}
	return "  [" + strings.Join(marks, ", ") + "]"
}

// --- add subcommand ---

var sectionAddCmd = &cobra.Command{
	Use:   "add <id> <título>",
	Short: "Add a custom section after the active list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		instruction, _ := cmd.Flags().GetString("instruction")
		return withProject(cmd, func(state *project.State) error {
			return state.Mutate(func(r *section.Registry) error {
				return r.Add(args[0], types.Section{Title: args[1], Instruction: instruction})
			})
		})
	},
}

// --- rm subcommand ---

var sectionRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a custom section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProject(cmd, func(state *project.State) error {
			return state.Mutate(func(r *section.Registry) error {
				return r.Remove(args[0])
			})
		})
	},
}

// --- edit subcommand ---

var sectionEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a section's title or instruction",
	Long: `Edit changes a section descriptor. Base sections only accept a new
instruction; custom sections also accept a new title.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		instruction, _ := cmd.Flags().GetString("instruction")
		return withProject(cmd, func(state *project.State) error {
			return state.Mutate(func(r *section.Registry) error {
				return r.Edit(args[0], types.Section{Title: title, Instruction: instruction})
			})
		})
	},
}

// --- move subcommand ---

var sectionMoveCmd = &cobra.Command{
	Use:   "move <id> <arriba|abajo>",
	Short: "Move a section one position in the active list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProject(cmd, func(state *project.State) error {
			return state.Mutate(func(r *section.Registry) error {
				pos, err := r.Move(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Printf("%s ahora en la posición %d\n", args[0], pos+1)
				return nil
			})
		})
	},
}

// --- activate / deactivate subcommands ---

var sectionOnCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Add a known section to the active list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProject(cmd, func(state *project.State) error {
			return state.Mutate(func(r *section.Registry) error {
				return r.Activate(args[0])
			})
		})
	},
}

var sectionOffCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Remove a section from the active list, keeping its content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProject(cmd, func(state *project.State) error {
			return state.Mutate(func(r *section.Registry) error {
				return r.Deactivate(args[0])
			})
		})
	},
}

// --- validate subcommand ---

var sectionValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the section structure for ordering problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _, err := loadProject(cmd)
		if err != nil {
			return err
		}
		report := state.Sections.Validate()
		for _, e := range report.Errors {
			fmt.Printf("error: %s\n", e)
		}
		for _, w := range report.Warnings {
			fmt.Printf("aviso: %s\n", w)
		}
		if report.Valid() && len(report.Warnings) == 0 {
			fmt.Println("Estructura correcta.")
		}
		if !report.Valid() {
			return fmt.Errorf("la estructura tiene %d error(es)", len(report.Errors))
		}
		return nil
	},
}

// --- content under section ---

var sectionContentCmd = &cobra.Command{
	Use:   "content <id> [texto]",
	Short: "Show or set a section's content",
	Long: `Content with one argument prints the section text. With a second
argument it replaces the text; use --file to read the text from a file, or
"-" as the file to read stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSectionContent,
}

func runSectionContent(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	return withProject(cmd, func(state *project.State) error {
		id := args[0]

		if len(args) == 1 && file == "" {
			s, ok := state.Sections.Get(id)
			if !ok {
				return fmt.Errorf("sección desconocida: %s", id)
			}
			fmt.Printf("%s\n\n%s\n", assemble.CleanTitle(s.Title), state.Content[id])
			return nil
		}

		var text string
		switch {
		case file == "-":
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			text = string(data)
		case file != "":
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}
			text = string(data)
		default:
			text = args[1]
		}

		return state.SetContent(id, text)
	})
}

func init() {
	sectionListCmd.Flags().Bool("all", false, "include inactive sections")
	sectionAddCmd.Flags().String("instruction", "", "guidance shown for the section")
	sectionEditCmd.Flags().String("title", "", "new title (custom sections only)")
	sectionEditCmd.Flags().String("instruction", "", "new instruction")
	sectionContentCmd.Flags().String("file", "", "read content from a file ('-' for stdin)")

	sectionCmd.AddCommand(sectionListCmd)
	sectionCmd.AddCommand(sectionAddCmd)
	sectionCmd.AddCommand(sectionRmCmd)
	sectionCmd.AddCommand(sectionEditCmd)
	sectionCmd.AddCommand(sectionMoveCmd)
	sectionCmd.AddCommand(sectionOnCmd)
	sectionCmd.AddCommand(sectionOffCmd)
	sectionCmd.AddCommand(sectionValidateCmd)
	sectionCmd.AddCommand(sectionContentCmd)

	rootCmd.AddCommand(sectionCmd)
}
