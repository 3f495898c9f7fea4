package model

// Config is the full runtime configuration, loaded once at startup
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	LLM      LLMConfig      `yaml:"llm"`
	Cache    CacheConfig    `yaml:"cache"`
	Output   OutputConfig   `yaml:"output"`
}

// PipelineConfig holds the options recognized by the pipeline
type PipelineConfig struct {
	MaxClaims              int  `yaml:"max_claims"`              // Cap on claims that proceed past extraction
	Parallel               bool `yaml:"parallel"`                // Concurrent vs sequential evidence lookups
	IncludeCountermeasures bool `yaml:"include_countermeasures"` // Collaborator toggle; pipeline works with it off
	DetailedLogging        bool `yaml:"detailed_logging"`        // Diagnostic only, no effect on outputs
	EvidenceWorkers        int  `yaml:"evidence_workers"`        // Bound on concurrent evidence lookups
}

// LLMConfig holds text-completion provider settings
type LLMConfig struct {
	Provider  string  `yaml:"provider"` // "openai", "ollama", or "" (disabled)
	Model     string  `yaml:"model"`
	APIKey    string  `yaml:"api_key,omitempty"`
	BaseURL   string  `yaml:"base_url,omitempty"`
	Timeout   int     `yaml:"timeout"` // seconds, per call
	MaxTokens int     `yaml:"max_tokens"`
	RateLimit float64 `yaml:"rate_limit"` // requests per second, 0 = unlimited
}

// CacheConfig controls the optional completion cache
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	TTLSeconds int  `yaml:"ttl_seconds"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			MaxClaims:              10,
			Parallel:               true,
			IncludeCountermeasures: true,
			DetailedLogging:        false,
			EvidenceWorkers:        4,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   60,
			MaxTokens: 1000,
			RateLimit: 2,
		},
		Cache: CacheConfig{
			Enabled:    false,
			TTLSeconds: 300,
		},
	}
}
