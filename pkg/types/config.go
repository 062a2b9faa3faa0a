package types

// CallParams holds the sampling settings for a single generative-service call.
type CallParams struct {
	// MaxTokens caps the output token budget. Zero means the provider default.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature controls sampling randomness (0.0 = deterministic).
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// AIConfig holds shared settings for the generative text service.
type AIConfig struct {
	// Model is the model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the service.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the service endpoint (for compatible gateways).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retry attempts on rate-limited calls.
	// Zero disables retries and surfaces the failure immediately.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StageParams fixes the token budget and temperature for each pipeline
// stage that calls the generative service. Constructed once, never mutated.
type StageParams struct {
	Classify CallParams `json:"classify" yaml:"classify"`
	Generate CallParams `json:"generate" yaml:"generate"`
	Judge    CallParams `json:"judge" yaml:"judge"`
	Revise   CallParams `json:"revise" yaml:"revise"`
	Feedback CallParams `json:"feedback" yaml:"feedback"`
}

// DefaultStageParams returns the per-stage call settings. The moral safety
// classifier runs cold with a tiny budget; the judge runs at the provider's
// default budget so the critique is never truncated mid-metric.
func DefaultStageParams() StageParams {
	return StageParams{
		Classify: CallParams{MaxTokens: 5, Temperature: 0.0},
		Generate: CallParams{MaxTokens: 3000, Temperature: 0.35},
		Judge:    CallParams{MaxTokens: 0, Temperature: 0.2},
		Revise:   CallParams{MaxTokens: 3000, Temperature: 0.35},
		Feedback: CallParams{MaxTokens: 3000, Temperature: 0.4},
	}
}

// StoryConfig groups the settings for one story run.
type StoryConfig struct {
	AIConfig `yaml:",inline"`

	// Stages holds the per-stage call settings.
	Stages StageParams `json:"stages" yaml:"stages"`

	// MoralsFile optionally points at a YAML file replacing the built-in
	// safe moral pool.
	MoralsFile string `json:"morals_file,omitempty" yaml:"morals_file,omitempty"`
}
