// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/escriba/internal/project"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Create and inspect project files",
	Long: `Project manages the project JSON file itself: creating a new one,
showing its status, setting general-information fields, and applying
structure templates.`,
}

// --- init subcommand ---

var projectInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new project file with the base section structure",
	RunE:  runProjectInit,
}

func runProjectInit(cmd *cobra.Command, args []string) error {
	path := projectPath(cmd)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s ya existe; elimínelo o use --project con otra ruta", path)
	}

	state := project.New()

	if name, _ := cmd.Flags().GetString("template"); name != "" {
		tpl, ok := project.LookupTemplate(name)
		if !ok {
			return fmt.Errorf("plantilla desconocida %q; disponibles: %s",
				name, strings.Join(project.BuiltinTemplates(), ", "))
		}
		if err := state.ApplyTemplate(tpl); err != nil {
			return err
		}
	}

	if title, _ := cmd.Flags().GetString("title"); title != "" {
		state.SetInfo("titulo", title)
	}

	if err := state.Save(path); err != nil {
		return err
	}
	fmt.Printf("Proyecto creado en %s (%d secciones activas)\n", path, len(state.Sections.Active))
	return nil
}

// --- info subcommand ---

var projectInfoCmd = &cobra.Command{
	Use:   "info [campo] [valor]",
	Short: "Show or set general-information fields",
	Long: `Info with no arguments prints every general-information field. With a
field name it prints that field; with a field name and a value it sets it.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runProjectInfo,
}

func runProjectInfo(cmd *cobra.Command, args []string) error {
	return withProject(cmd, func(state *project.State) error {
		switch len(args) {
		case 0:
			for _, field := range sortedInfoFields(state.Info) {
				fmt.Printf("%-14s %s\n", field+":", state.Info[field])
			}
		case 1:
			fmt.Println(state.Info[args[0]])
		case 2:
			state.SetInfo(args[0], args[1])
			fmt.Printf("%s = %s\n", args[0], strings.TrimSpace(args[1]))
		}
		return nil
	})
}

func sortedInfoFields(info map[string]string) []string {
	// Known fields first, in display order; anything else after.
	known := []string{
		"institucion", "titulo", "ciclo", "curso", "enfasis", "area",
		"categoria", "director", "responsable", "estudiantes", "tutores", "año",
	}
	seen := map[string]bool{}
	var fields []string
	for _, f := range known {
		if _, ok := info[f]; ok {
			fields = append(fields, f)
			seen[f] = true
		}
	}
	for f := range info {
		if !seen[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

// --- status subcommand ---

var projectStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show project progress counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _, err := loadProject(cmd)
		if err != nil {
			return err
		}
		sum := state.Summarize()
		fmt.Printf("Título:                  %s\n", sum.Title)
		fmt.Printf("Secciones activas:       %d\n", sum.ActiveCount)
		fmt.Printf("Secciones con contenido: %d\n", sum.WithContent)
		fmt.Printf("Palabras:                %d\n", sum.Words)
		fmt.Printf("Referencias:             %d\n", sum.References)
		fmt.Printf("Última modificación:     %s\n", sum.Modified)
		return nil
	},
}

// --- template subcommand ---

var projectTemplateCmd = &cobra.Command{
	Use:   "template [nombre|archivo.yaml]",
	Short: "List or apply structure templates",
	Long: `Template with no arguments lists the builtin structure templates. With
a builtin name or a YAML file path it replaces the active-section list.
Use --save to write the current structure as a template file instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProjectTemplate,
}

func runProjectTemplate(cmd *cobra.Command, args []string) error {
	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		state, _, err := loadProject(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = "personalizada"
		}
		if err := project.WriteTemplate(savePath, name, "", state); err != nil {
			return err
		}
		fmt.Printf("Plantilla guardada en %s\n", savePath)
		return nil
	}

	if len(args) == 0 {
		for _, name := range project.BuiltinTemplates() {
			tpl, _ := project.LookupTemplate(name)
			fmt.Printf("%-14s %s\n", name, tpl.Description)
		}
		return nil
	}

	tpl, ok := project.LookupTemplate(args[0])
	if !ok {
		var err error
		tpl, err = project.ReadTemplate(args[0])
		if err != nil {
			return err
		}
	}

	return withProject(cmd, func(state *project.State) error {
		if err := state.ApplyTemplate(tpl); err != nil {
			return err
		}
		fmt.Printf("Plantilla %s aplicada (%d secciones activas)\n", tpl.Name, len(state.Sections.Active))
		return nil
	})
}

func init() {
	projectInitCmd.Flags().String("template", "", "builtin structure template: "+strings.Join(project.BuiltinTemplates(), ", "))
	projectInitCmd.Flags().String("title", "", "project title")

	projectTemplateCmd.Flags().String("save", "", "write the current structure to a template file")
	projectTemplateCmd.Flags().String("name", "", "template name used with --save")

	projectCmd.AddCommand(projectInitCmd)
	projectCmd.AddCommand(projectInfoCmd)
	projectCmd.AddCommand(projectStatusCmd)
	projectCmd.AddCommand(projectTemplateCmd)

	rootCmd.AddCommand(projectCmd)
}
