// internal/batch/processor_test.go
package batch

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/valpere/RealtyScrapexter/internal/config"
	"github.com/valpere/RealtyScrapexter/pkg/types"
)

const snapshotA = `<html><body>
	<div class="property-card">
		<span class="price">$450,000</span>
		<span class="address">12 Oak St, Augusta, ME 04330</span>
	</div>
</body></html>`

const snapshotB = `<html><body>
	<div class="property-card">
		<span class="price">$289,900</span>
		<span class="address">7 Birch Ln, Bangor, ME 04401</span>
	</div>
</body></html>`

func writeSnapshot(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", name, err)
	}
	return path
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestProcessor(t *testing.T, cfg *config.Config) *Processor {
	t.Helper()
	processor, err := New(cfg, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("failed to create processor: %v", err)
	}
	return processor
}

func TestRun(t *testing.T) {
	snapshotDir := t.TempDir()
	writeSnapshot(t, snapshotDir, "a.html", snapshotA)
	writeSnapshot(t, snapshotDir, "a_resaved.html", snapshotA)
	writeSnapshot(t, snapshotDir, "b.html", snapshotB)

	outputPath := filepath.Join(t.TempDir(), "results.json")
	cfg := &config.Config{
		Name:   "batch-test",
		Input:  config.InputConfig{Directory: snapshotDir, BaseURL: "https://www.example.com"},
		Output: config.OutputConfig{Format: "json", File: outputPath},
	}

	processor := newTestProcessor(t, cfg)
	summary, err := processor.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.FilesProcessed != 2 {
		t.Errorf("FilesProcessed = %d, expected 2", summary.FilesProcessed)
	}
	if summary.FilesSkipped != 1 {
		t.Errorf("FilesSkipped = %d, expected identical re-saved snapshot to be skipped", summary.FilesSkipped)
	}
	if summary.FilesFailed != 0 {
		t.Errorf("FilesFailed = %d, expected 0", summary.FilesFailed)
	}
	if summary.RecordsWritten != 2 {
		t.Errorf("RecordsWritten = %d, expected 2", summary.RecordsWritten)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 output records, got %d", len(records))
	}
	for _, record := range records {
		if record["entity"] != "listing" {
			t.Errorf("entity = %v, expected listing", record["entity"])
		}
		if record["source_file"] == "" || record["source_file"] == nil {
			t.Errorf("record missing source_file: %v", record)
		}
	}
}

func TestRunNoSnapshots(t *testing.T) {
	cfg := &config.Config{
		Name:   "empty-batch",
		Input:  config.InputConfig{Directory: t.TempDir()},
		Output: config.OutputConfig{Format: "stdout"},
	}

	processor := newTestProcessor(t, cfg)
	if _, err := processor.Run(context.Background()); err == nil {
		t.Error("expected error when no snapshot files resolve")
	}
}

func TestRunCountsFailedFiles(t *testing.T) {
	snapshotDir := t.TempDir()
	writeSnapshot(t, snapshotDir, "good.html", snapshotA)

	outputPath := filepath.Join(t.TempDir(), "results.json")
	cfg := &config.Config{
		Name: "partial-batch",
		Input: config.InputConfig{
			Files:     []string{filepath.Join(snapshotDir, "missing.html")},
			Directory: snapshotDir,
			BaseURL:   "https://www.example.com",
		},
		Output: config.OutputConfig{Format: "json", File: outputPath},
	}

	processor := newTestProcessor(t, cfg)
	summary, err := processor.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.FilesFailed != 1 {
		t.Errorf("FilesFailed = %d, expected 1", summary.FilesFailed)
	}
	if summary.FilesProcessed != 1 {
		t.Errorf("FilesProcessed = %d, expected the readable snapshot to be processed", summary.FilesProcessed)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	snapshotDir := t.TempDir()
	writeSnapshot(t, snapshotDir, "a.html", snapshotA)

	cfg := &config.Config{
		Name:   "cancelled-batch",
		Input:  config.InputConfig{Directory: snapshotDir},
		Output: config.OutputConfig{Format: "stdout"},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := newTestProcessor(t, cfg)
	if _, err := processor.Run(ctx); err == nil {
		t.Error("expected context cancellation error")
	}
}

func TestResolveFiles(t *testing.T) {
	snapshotDir := t.TempDir()
	pathA := writeSnapshot(t, snapshotDir, "a.html", snapshotA)
	pathB := writeSnapshot(t, snapshotDir, "b.htm", snapshotB)
	writeSnapshot(t, snapshotDir, "notes.txt", "not a snapshot")

	cfg := &config.Config{
		Name: "resolve-test",
		Input: config.InputConfig{
			// pathA is listed explicitly and present in the directory;
			// it must resolve once
			Files:     []string{pathA},
			Directory: snapshotDir,
		},
		Output: config.OutputConfig{Format: "stdout"},
	}

	processor := newTestProcessor(t, cfg)
	files, err := processor.resolveFiles()
	if err != nil {
		t.Fatalf("resolveFiles failed: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	if files[0] != pathA || files[1] != pathB {
		t.Errorf("files = %v, expected sorted [%s %s]", files, pathA, pathB)
	}
}

func TestFlattenResult(t *testing.T) {
	rating := 5.0
	result := &FileResult{
		File: "snapshots/agent.html",
		Listings: &types.ListingsResult{
			Active: []types.Listing{{ID: "listing-0", Price: "$450,000"}},
			Sold:   []types.Listing{{ID: "listing-1", Price: "$380,000", Status: "Sold"}},
		},
		Reviews: &types.ReviewsResult{
			Individual: []types.Review{{Author: "John Carter", Text: "Helped us find our home.", Rating: &rating}},
			Recommendations: []types.Recommendation{
				{Author: "Anonymous", Text: "Professional from start to close.", Source: "testimonial"},
			},
		},
		Agent: &types.AgentProfile{Name: "Jane Doe"},
	}

	records := flattenResult(result)
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}

	entities := make(map[string]int)
	for _, record := range records {
		entity, _ := record["entity"].(string)
		entities[entity]++
		if record["source_file"] != "snapshots/agent.html" {
			t.Errorf("source_file = %v", record["source_file"])
		}
	}
	if entities["listing"] != 2 || entities["review"] != 1 ||
		entities["recommendation"] != 1 || entities["agent"] != 1 {
		t.Errorf("entity counts = %v", entities)
	}
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("expected error for nil configuration")
	}
}
