// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the story-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/story-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the story-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "story-engine",
	Short: "Age-appropriate bedtime stories with a safety review loop",
	Long: `story-engine turns a free-form request into a bedtime story for a child
aged 5-10. The pipeline validates the requested moral for safety, drafts the
story under structural and length constraints, solicits an independent
critique, revises the draft to address it, and optionally applies one round
of operator feedback.

The main entry point is the tell subcommand, which runs the whole pipeline
interactively.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Make .env/.env.local credentials visible before any command runs.
		secrets.LoadDotenv()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./story-engine.yaml or ~/.config/story-engine/config.yaml)")
	rootCmd.PersistentFlags().String("morals", "", "YAML file replacing the built-in safe moral pool")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("story-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "story-engine"))
		}
	}

	viper.SetEnvPrefix("STORY_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
