package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/prebunk/prebunk/internal/model"
)

var (
	outJSON     string
	timeout     time.Duration
	maxClaims   int
	sequential  bool
	noCache     bool
	noCounters  bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <message>",
	Short: "Analyze a single health message for misinterpretation risk",
	Long: `Analyze runs the full risk pipeline on one message:
- Extract and classify factual health claims
- Score each claim for misinterpretation risk
- Simulate audience persona reactions
- Match claims against trusted evidence sources
- Generate a prioritized risk report

Example:
  prebunk analyze "Vaccines are 100% safe for everyone."
  prebunk analyze "Take 2 tablets daily." --json report.json
  prebunk analyze "New treatment cures diabetes." --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")

	// Pipeline flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().IntVar(&maxClaims, "max-claims", 10, "cap on claims that proceed past extraction")
	analyzeCmd.Flags().BoolVar(&sequential, "sequential", false, "disable concurrent persona and evidence processing")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the LLM response cache")
	analyzeCmd.Flags().BoolVar(&noCounters, "no-countermeasures", false, "skip countermeasure generation")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM-augmented extraction and persona simulation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	message := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := configFromFlags()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing message (%d chars)\n", len(message))
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		if cfg.LLM.Provider != "" {
			fmt.Fprintf(os.Stderr, "LLM: %s\n", cfg.LLM.Provider)
		}
		fmt.Fprintln(os.Stderr)
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	result := p.Analyze(ctx, message)
	if result.Status == model.PipelineError {
		return fmt.Errorf("analysis failed: %s", result.Error)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d claims\n", len(result.Claims))
		fmt.Fprintf(os.Stderr, "✓ Interpreted %d personas\n", len(result.Interpretations))
		fmt.Fprintf(os.Stderr, "✓ Validated %d claims against evidence sources\n", len(result.Validations))
		if result.Report != nil {
			fmt.Fprintf(os.Stderr, "✓ Overall assessment: %s\n", result.Report.OverallRisk)
		}
		fmt.Fprintln(os.Stderr)
	}

	return writeResult(result, outJSON)
}

// configFromFlags builds the runtime configuration from defaults plus
// the analyze/batch flag set
func configFromFlags() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Pipeline.MaxClaims = maxClaims
	cfg.Pipeline.Parallel = !sequential
	cfg.Pipeline.IncludeCountermeasures = !noCounters
	cfg.Pipeline.DetailedLogging = verbose
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
	}
	return cfg
}

// writeResult renders a result as JSON to the given path, or stdout
// when the path is empty
func writeResult(result model.Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Report written: %s\n", path)
	}
	return nil
}
