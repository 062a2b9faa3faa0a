package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/story-engine/internal/console"
	"github.com/pdiddy/story-engine/internal/llm"
	"github.com/pdiddy/story-engine/internal/moral"
	"github.com/pdiddy/story-engine/internal/pipeline"
	"github.com/pdiddy/story-engine/internal/plan"
	"github.com/pdiddy/story-engine/internal/secrets"
	"github.com/pdiddy/story-engine/pkg/types"
)

const defaultModel = "gpt-4o-mini"

var tellCmd = &cobra.Command{
	Use:   "tell",
	Short: "Run the interactive story pipeline",
	Long: `Tell prompts for the child's age, the story duration, a free-form
request, and an optional moral, then runs the full pipeline: draft, critique,
safety revision, and one optional feedback pass. The draft, critique, revised
story, and final story are printed as sequential text blocks.`,
	RunE: runTell,
}

func init() {
	tellCmd.Flags().String("model", "", "model identifier (default "+defaultModel+")")
	tellCmd.Flags().String("base-url", "", "override the service endpoint")
	tellCmd.Flags().Int("max-retries", 0, "retries on rate-limited calls (0 = fail immediately)")
	tellCmd.Flags().String("secrets-dir", ".secrets/", "directory of credential key files")

	rootCmd.AddCommand(tellCmd)
}

func runTell(cmd *cobra.Command, args []string) error {
	cfg, err := tellConfig(cmd)
	if err != nil {
		return err
	}

	pool := moral.DefaultPool()
	if cfg.MoralsFile != "" {
		if pool, err = moral.LoadPool(cfg.MoralsFile); err != nil {
			return err
		}
	}

	var client llm.Client
	client, err = llm.NewOpenAI(cfg.AIConfig)
	if err != nil {
		return err
	}
	client = llm.WithRetry(client, cfg.MaxRetries)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	selector, err := moral.NewSelector(pool, rng, client, cfg.Stages.Classify)
	if err != nil {
		return err
	}

	p, err := pipeline.New(client, selector, cfg.Stages)
	if err != nil {
		return err
	}

	ux := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), "=== Bedtime Story Engine ===")

	age, err := ux.AskAge()
	if err != nil {
		return err
	}
	minutes, err := ux.AskDuration()
	if err != nil {
		return err
	}
	request, err := ux.AskRequest()
	if err != nil {
		return err
	}
	userMoral, err := ux.AskMoral()
	if err != nil {
		return err
	}

	req := plan.NewRequest(request, age, minutes)

	_, err = p.Run(cmd.Context(), req, userMoral, ux)
	return err
}

// tellConfig assembles the run configuration from flags, viper config, and
// the credential sources. A missing credential fails here, before any
// pipeline stage runs.
func tellConfig(cmd *cobra.Command) (types.StoryConfig, error) {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("model")
	}
	if model == "" {
		model = defaultModel
	}

	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = viper.GetString("base_url")
	}

	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	if maxRetries == 0 {
		maxRetries = viper.GetInt("max_retries")
	}

	moralsFile, _ := rootCmd.PersistentFlags().GetString("morals")
	if moralsFile == "" {
		moralsFile = viper.GetString("morals_file")
	}

	secretsDir, _ := cmd.Flags().GetString("secrets-dir")
	apiKey, err := secrets.ResolveAPIKey(secretsDir)
	if err != nil {
		return types.StoryConfig{}, err
	}

	return types.StoryConfig{
		AIConfig: types.AIConfig{
			Model:      model,
			APIKey:     apiKey,
			BaseURL:    baseURL,
			MaxRetries: maxRetries,
		},
		Stages:     types.DefaultStageParams(),
		MoralsFile: moralsFile,
	}, nil
}
