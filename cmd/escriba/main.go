// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the escriba CLI.
// Implements: prd001-citas, prd002-secciones, prd003-referencias,
//             prd004-ensamblado, prd005-exportacion, prd006-estado-proyecto,
//             prd007-biblioteca (CLI surface).
// See docs/ARCHITECTURE § Command Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/escriba/internal/project"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the escriba CLI.
var rootCmd = &cobra.Command{
	Use:   "escriba",
	Short: "Compositor de proyectos académicos con citas APA",
	Long: `escriba maneja proyectos académicos como archivos JSON versionados:
secciones ordenadas, contenido con etiquetas de cita [CITA:...], referencias
bibliográficas en formato APA, y exportación a Word.

Cada área es un subcomando: project, section, ref, cite, validate,
render, export y library. Los comandos cargan el archivo de proyecto,
aplican un cambio y lo guardan de forma atómica.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./escriba.yaml or ~/.config/escriba/config.yaml)")
	rootCmd.PersistentFlags().StringP("project", "p", "", "project file (default: ./proyecto.json)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("escriba")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "escriba"))
		}
	}

	viper.SetEnvPrefix("ESCRIBA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// projectPath resolves the project file path: flag, then config, then the
// default name in the working directory.
func projectPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("project"); path != "" {
		return path
	}
	if path := viper.GetString("project"); path != "" {
		return path
	}
	return "proyecto.json"
}

// loadProject reads the project file named by the --project flag. Version
// warnings go to stderr.
func loadProject(cmd *cobra.Command) (*project.State, string, error) {
	path := projectPath(cmd)
	state, err := project.Load(path, os.Stderr)
	if err != nil {
		return nil, path, fmt.Errorf("cargando %s: %w", path, err)
	}
	return state, path, nil
}

// withProject loads the project, applies fn, and saves the file back when
// fn reports a change was made.
func withProject(cmd *cobra.Command, fn func(*project.State) error) error {
	state, path, err := loadProject(cmd)
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	if !state.Dirty() {
		return nil
	}
	return state.Save(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
