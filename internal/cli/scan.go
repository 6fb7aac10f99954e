package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/civicdata-il/protokol/internal/model"
	"github.com/civicdata-il/protokol/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outJSON       string
	outMD         string
	timeout       time.Duration
	useLocal      bool
	useCloud      bool
	localHost     string
	localModel    string
	cloudModel    string
	minConfidence float64
	useCache      bool
	includeRaw    bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Extract a single protocol document",
	Long: `Scan reads one OCR text file (or stdin with "-") and extracts a
structured protocol record: header, rosters, discussion items, votes,
decisions and budgets.

Example:
  protokol scan protocol-41.txt
  protokol scan protocol-41.txt --json out.json --md out.md
  protokol scan protocol-41.txt --cloud --min-confidence 0.7`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scanCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall extraction timeout")

	scanCmd.Flags().BoolVar(&useLocal, "local", true, "allow escalation to the local model (Ollama)")
	scanCmd.Flags().BoolVar(&useCloud, "cloud", false, "allow escalation to the cloud model (needs OPENAI_API_KEY)")
	scanCmd.Flags().StringVar(&localHost, "local-host", "", "local model endpoint (default: http://localhost:11434)")
	scanCmd.Flags().StringVar(&localModel, "local-model", "", "local model name")
	scanCmd.Flags().StringVar(&cloudModel, "cloud-model", "", "cloud model name")
	scanCmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "minimum confidence before escalating to cloud")

	scanCmd.Flags().BoolVar(&useCache, "cache", false, "cache extraction results on disk")
	scanCmd.Flags().BoolVar(&includeRaw, "include-raw", false, "keep raw source snippets in output")
}

func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildConfig()

	p := pipeline.NewPipeline(cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracting: %s\n", path)
		fmt.Fprintf(os.Stderr, "Local model: %v, cloud model: %v\n",
			cfg.Router.EnableLocal, cfg.Router.EnableCloud)
	}

	report, err := p.Process(ctx, path)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Format: %s\n", report.Record.FormatCode)
		fmt.Fprintf(os.Stderr, "✓ Extracted %d attendees, %d discussion items\n",
			len(report.Record.Attendees), len(report.Record.Discussions))
		fmt.Fprintf(os.Stderr, "✓ Quality: %d/100\n\n", report.Quality.Index)
	}

	return renderReport(report)
}

// renderReport writes the report to the requested outputs; stdout JSON
// when no path was given
func renderReport(report *model.Report) error {
	renderer := pipeline.NewRenderer(model.OutputConfig{IncludeRawText: includeRaw})

	if outJSON == "" && outMD == "" {
		return renderer.RenderJSON(report, os.Stdout)
	}

	if outJSON != "" {
		f, err := os.Create(outJSON)
		if err != nil {
			return fmt.Errorf("create JSON output: %w", err)
		}
		defer f.Close()
		if err := renderer.RenderJSON(report, f); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	if outMD != "" {
		f, err := os.Create(outMD)
		if err != nil {
			return fmt.Errorf("create Markdown output: %w", err)
		}
		defer f.Close()
		if err := renderer.RenderMarkdown(report, f); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(report, os.Stderr)
	return nil
}

// buildConfig layers defaults, config file and flags
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	_ = viper.Unmarshal(&cfg)

	cfg.Router.EnableLocal = useLocal
	cfg.Router.EnableCloud = useCloud
	if localHost != "" {
		cfg.Router.LocalHost = localHost
	}
	if localModel != "" {
		cfg.Router.LocalModel = localModel
	}
	if cloudModel != "" {
		cfg.Router.CloudModel = cloudModel
	}
	if minConfidence > 0 {
		cfg.Router.MinConfidence = minConfidence
	}
	if cfg.Router.CloudAPIKey == "" {
		cfg.Router.CloudAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if useCache {
		cfg.Cache.Enabled = true
	}
	cfg.Output.IncludeRawText = includeRaw

	return &cfg
}
