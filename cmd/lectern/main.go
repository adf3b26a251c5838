// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lectern CLI, the toolchain that
// keeps a collection of LaTeX lecture notes on a single shared template:
// normalization, compilation, font-risk scanning, validation, and run history.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lectern/internal/history"
	"github.com/pdiddy/lectern/internal/normalize"
	"github.com/pdiddy/lectern/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the lectern CLI.
var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "Toolchain for unified LaTeX lecture notes",
	Long: `lectern keeps a collection of academic lecture notes on one shared visual
template. It rewrites each document's preamble onto the template and inserts
a course metadata block, compiles documents to PDF through the LaTeX engine,
scans sources for font-shrinking directives that hurt readability, and keeps
a queryable history of batch runs.

Each stage is a subcommand: normalize, compile, scan, validate, and history.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lectern.yaml or ~/.config/lectern/config.yaml)")
	rootCmd.PersistentFlags().String("rules", "", "course rules file (default: courses key of the config file)")
	rootCmd.PersistentFlags().Bool("no-history", false, "do not record batch outcomes in the run-history store")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lectern")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lectern"))
		}
	}

	viper.SetEnvPrefix("LECTERN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadCourseRules reads the ordered course-rule list: from the --rules file
// when given, otherwise from the courses key of the config file.
func loadCourseRules(cmd *cobra.Command) ([]types.CourseRule, error) {
	rulesPath, _ := cmd.Flags().GetString("rules")
	if rulesPath != "" {
		return normalize.LoadRules(rulesPath)
	}

	var rules []types.CourseRule
	if err := viper.UnmarshalKey("courses", &rules); err != nil {
		return nil, fmt.Errorf("reading courses from config: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("no course rules: pass --rules or add a courses key to the config file")
	}
	return rules, nil
}

// openRecorder opens the run-history store, or returns nil when recording is
// disabled. The caller must Close a non-nil store.
func openRecorder(cmd *cobra.Command) (*history.Store, error) {
	if off, _ := cmd.Flags().GetBool("no-history"); off {
		return nil, nil
	}

	dir := viper.GetString("history.dir")
	if dir == "" {
		dir = "output"
	}
	store, err := history.Open(types.HistoryConfig{
		Dir:        dir,
		MaxResults: viper.GetInt("history.max_results"),
	})
	if err != nil {
		return nil, fmt.Errorf("opening run history: %w", err)
	}
	return store, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
