package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/story-engine/internal/moral"
)

var moralsCmd = &cobra.Command{
	Use:   "morals",
	Short: "Print the active safe moral pool",
	Long: `Morals prints the pool of pre-vetted lessons the engine falls back on
when no moral is requested or the requested one fails safety review.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pool := moral.DefaultPool()

		moralsFile, _ := rootCmd.PersistentFlags().GetString("morals")
		if moralsFile == "" {
			moralsFile = viper.GetString("morals_file")
		}
		if moralsFile != "" {
			loaded, err := moral.LoadPool(moralsFile)
			if err != nil {
				return err
			}
			pool = loaded
		}

		for i, m := range pool {
			fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, m)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moralsCmd)
}
