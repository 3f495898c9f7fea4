package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prebunk/prebunk/internal/fanout"
	"github.com/prebunk/prebunk/internal/model"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple messages from a file in parallel",
	Long: `Batch processes multiple messages concurrently:
- Read messages from input file (one per line, blank lines skipped)
- Analyze messages in parallel with configurable worker count
- Each analysis uses concurrent persona and evidence processing
- Write one JSON report per message

Example:
  prebunk batch messages.txt
  prebunk batch messages.txt --concurrency 10 --output-dir ./reports
  prebunk batch messages.txt --llm openai --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./prebunk-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared pipeline flags
	batchCmd.Flags().IntVar(&maxClaims, "max-claims", 10, "cap on claims that proceed past extraction")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the LLM response cache")
	batchCmd.Flags().BoolVar(&noCounters, "no-countermeasures", false, "skip countermeasure generation")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM-augmented extraction and persona simulation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	messages, err := readMessages(file)
	if err != nil {
		return fmt.Errorf("read messages: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Prebunk Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Messages:     %d\n", len(messages))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg := configFromFlags()

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⚙️  Processing messages with %d workers...\n", concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	outcomes := fanout.Settle(ctx, len(messages), concurrency, func(ctx context.Context, i int) (model.Result, error) {
		return p.Analyze(ctx, messages[i]), nil
	})

	successCount := 0
	failureCount := 0
	for i, o := range outcomes {
		result := o.Value
		if result.Status == model.PipelineError {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ message %d: %s\n", i+1, result.Error)
			continue
		}

		path := filepath.Join(outputDir, fmt.Sprintf("message-%03d.json", i+1))
		if err := writeResult(result, path); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ message %d: %v\n", i+1, err)
			continue
		}

		successCount++
		if result.Report != nil {
			fmt.Fprintf(os.Stderr, "✓ message %d: %s (%d claims)\n", i+1, result.Report.OverallRisk, len(result.Claims))
		} else {
			fmt.Fprintf(os.Stderr, "✓ message %d: %s\n", i+1, result.Status)
		}
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d messages\n", len(messages))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// readMessages loads one message per line, skipping blanks and
// #-comments
func readMessages(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var messages []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		messages = append(messages, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages found in %s", path)
	}
	return messages, nil
}
