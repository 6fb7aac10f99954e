package worker

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/civicdata-il/protokol/internal/model"
)

// Processor extracts one document; implemented by pipeline.Pipeline
type Processor interface {
	Process(ctx context.Context, path string) (*model.Report, error)
}

// ExtractJob extracts a single document file
type ExtractJob struct {
	Path      string
	Processor Processor
}

// Execute runs the extraction
func (j *ExtractJob) Execute(ctx context.Context) Result {
	report, err := j.Processor.Process(ctx, j.Path)
	return &ExtractResult{Path: j.Path, Report: report, Err: err}
}

// ExtractResult is the outcome of extracting one document
type ExtractResult struct {
	Path   string
	Report *model.Report
	Err    error
}

// GetError returns the extraction error, nil on success
func (r *ExtractResult) GetError() error { return r.Err }

// BatchProcessor extracts many documents concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{processor: processor, concurrency: concurrency}
}

// ProcessPaths extracts all given documents, preserving input order in the
// returned results.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ExtractResult {
	if len(paths) == 0 {
		return nil
	}

	pool := newPool(b.concurrency, len(paths))
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ExtractJob{Path: path, Processor: b.processor})
	}

	byPath := make(map[string]*ExtractResult, len(paths))
	for _, result := range pool.Wait() {
		if r, ok := result.(*ExtractResult); ok {
			byPath[r.Path] = r
		}
	}

	ordered := make([]*ExtractResult, 0, len(paths))
	for _, path := range paths {
		if r, ok := byPath[path]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered
}

// CollectDocuments lists the text documents under dir, sorted by name
func CollectDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".txt" || ext == ".text" {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
