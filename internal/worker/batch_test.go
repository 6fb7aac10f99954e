package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/civicdata-il/protokol/internal/model"
)

type stubProcessor struct {
	failOn string
}

func (p *stubProcessor) Process(ctx context.Context, path string) (*model.Report, error) {
	if p.failOn != "" && strings.Contains(path, p.failOn) {
		return nil, errors.New("unreadable scan")
	}
	return &model.Report{Source: path}, nil
}

func TestProcessPathsPreservesOrder(t *testing.T) {
	b := NewBatchProcessor(&stubProcessor{}, 4)

	paths := []string{"scans/c.txt", "scans/a.txt", "scans/b.txt", "scans/d.txt", "scans/e.txt"}
	results := b.ProcessPaths(context.Background(), paths)

	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("result %d path = %s, want input order %s", i, r.Path, paths[i])
		}
		if r.Report == nil || r.Report.Source != paths[i] {
			t.Errorf("result %d report = %+v", i, r.Report)
		}
	}
}

func TestProcessPathsLargeBatch(t *testing.T) {
	b := NewBatchProcessor(&stubProcessor{}, 2)

	// Well past the per-worker channel buffers
	paths := make([]string, 100)
	for i := range paths {
		paths[i] = fmt.Sprintf("scans/%03d.txt", i)
	}
	results := b.ProcessPaths(context.Background(), paths)
	if len(results) != 100 {
		t.Fatalf("got %d results, want 100", len(results))
	}
}

func TestProcessPathsFailureDoesNotAbortBatch(t *testing.T) {
	b := NewBatchProcessor(&stubProcessor{failOn: "broken"}, 2)

	results := b.ProcessPaths(context.Background(), []string{"good.txt", "broken.txt", "fine.txt"})
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
			if r.Path != "broken.txt" {
				t.Errorf("unexpected failure for %s", r.Path)
			}
		}
	}
	if failed != 1 {
		t.Errorf("got %d failures, want 1", failed)
	}
}

func TestProcessPathsEmpty(t *testing.T) {
	b := NewBatchProcessor(&stubProcessor{}, 2)
	if results := b.ProcessPaths(context.Background(), nil); results != nil {
		t.Errorf("got %d results for empty input", len(results))
	}
}

func TestCollectDocuments(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "notes.md", "scan.TEXT"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := CollectDocuments(dir)
	if err != nil {
		t.Fatalf("CollectDocuments: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "scan.TEXT"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %s, want %s", i, paths[i], want[i])
		}
	}
}

func TestCollectDocumentsMissingDir(t *testing.T) {
	if _, err := CollectDocuments(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing directory")
	}
}
