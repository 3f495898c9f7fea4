// Package cli implements the prebunk command-line interface
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prebunk/prebunk/internal/evidence"
	"github.com/prebunk/prebunk/internal/extract"
	"github.com/prebunk/prebunk/internal/llm"
	"github.com/prebunk/prebunk/internal/model"
	"github.com/prebunk/prebunk/internal/persona"
	"github.com/prebunk/prebunk/internal/pipeline"
	"github.com/prebunk/prebunk/internal/risk"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "prebunk",
	Short: "Prebunk - misinterpretation risk analysis for health messages",
	Long: `Prebunk analyzes health messages before publication to find claims
likely to be misread, feared, or weaponized by different audiences.

It does not determine whether a claim is true or false.

Prebunk extracts the factual claims a message makes, scores each one
for misinterpretation risk, simulates how different audience personas
would react, checks which trusted sources could back the claims, and
aggregates everything into a prioritized risk report.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Prebunk.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("prebunk v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.prebunk/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.prebunk")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match PREBUNK_*
	viper.SetEnvPrefix("PREBUNK")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// buildCompleter creates the configured LLM completer, wrapped with the
// cache and rate limiter when enabled. Returns (nil, nil) when LLM
// assistance is disabled.
func buildCompleter(cfg *model.Config) (llm.Completer, error) {
	// API keys come from the environment, never the config file
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	completer, err := llm.NewCompleter(cfg.LLM)
	if err != nil || completer == nil {
		return nil, err
	}

	if cfg.Cache.Enabled || cfg.LLM.RateLimit > 0 {
		ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		if !cfg.Cache.Enabled {
			ttl = time.Nanosecond // Rate limiting only; nothing survives in the cache
		}
		return llm.NewCachedCompleter(completer, ttl, cfg.LLM.RateLimit), nil
	}
	return completer, nil
}

// buildPipeline assembles the full analysis pipeline from configuration
func buildPipeline(cfg *model.Config) (*pipeline.Pipeline, error) {
	completer, err := buildCompleter(cfg)
	if err != nil {
		return nil, err
	}

	extractor := extract.NewExtractor(completer)
	scorer := risk.NewScorer()
	interpreter := persona.NewInterpreter(persona.DefaultPersonas(), completer)
	matcher := evidence.NewMatcher(evidence.NewRegistry(evidence.DefaultSources()), completer)

	var logw io.Writer
	if cfg.Pipeline.DetailedLogging {
		logw = os.Stderr
	}

	var countermeasures pipeline.CountermeasureProvider
	if completer != nil {
		countermeasures = pipeline.NewLLMCountermeasures(completer)
	}

	return pipeline.New(extractor, scorer, interpreter, matcher, countermeasures, cfg.Pipeline, logw), nil
}
