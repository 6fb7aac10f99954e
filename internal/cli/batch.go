package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/civicdata-il/protokol/internal/model"
	"github.com/civicdata-il/protokol/internal/pipeline"
	"github.com/civicdata-il/protokol/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchWorkers int
	batchOutDir  string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Extract every protocol document in a directory",
	Long: `Batch extracts all .txt documents under a directory concurrently and
writes one JSON report per document.

Example:
  protokol batch ./scans --out ./reports --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent workers (default: from config)")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "output directory for JSON reports (default: alongside inputs)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "overall batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	paths, err := worker.CollectDocuments(dir)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .txt documents found in %s", dir)
	}

	cfg := buildConfig()
	workers := cfg.Batch.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracting %d documents with %d workers\n", len(paths), workers)
	}

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, workers)
	results := processor.ProcessPaths(ctx, paths)

	renderer := pipeline.NewRenderer(model.OutputConfig{IncludeRawText: includeRaw})
	succeeded, failed := 0, 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Err)
			continue
		}
		succeeded++

		if err := writeBatchReport(renderer, result); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, err)
			continue
		}
		renderer.RenderSummary(result.Report, os.Stderr)
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d succeeded, %d failed\n", succeeded, failed)
	if succeeded == 0 {
		return fmt.Errorf("all %d documents failed", failed)
	}
	return nil
}

func writeBatchReport(renderer *pipeline.Renderer, result *worker.ExtractResult) error {
	outPath := strings.TrimSuffix(result.Path, filepath.Ext(result.Path)) + ".json"
	if batchOutDir != "" {
		if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		base := strings.TrimSuffix(filepath.Base(result.Path), filepath.Ext(result.Path))
		outPath = filepath.Join(batchOutDir, base+".json")
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	return renderer.RenderJSON(result.Report, f)
}
