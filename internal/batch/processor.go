// internal/batch/processor.go

// Package batch drives extraction over a set of saved page snapshots.
// It resolves the configured input files, runs the collector's passes
// on each, skips snapshots whose content was already processed, and
// hands the flattened records to the configured output.
package batch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/valpere/RealtyScrapexter/internal/collect"
	"github.com/valpere/RealtyScrapexter/internal/config"
	"github.com/valpere/RealtyScrapexter/internal/dom"
	"github.com/valpere/RealtyScrapexter/internal/monitoring"
	"github.com/valpere/RealtyScrapexter/internal/output"
	"github.com/valpere/RealtyScrapexter/pkg/types"
)

// Processor runs extraction jobs over snapshot files
type Processor struct {
	config    *config.Config
	collector *collect.Collector
	manager   *output.Manager
	metrics   *monitoring.MetricsManager
	logger    *log.Logger

	// seen maps snapshot content hashes to the file that introduced
	// them, so re-saved copies of the same page are processed once
	seen map[string]string
}

// FileResult captures the outcome of a single snapshot
type FileResult struct {
	File     string
	Skipped  bool
	Err      error
	Listings *types.ListingsResult
	Reviews  *types.ReviewsResult
	Agent    *types.AgentProfile
}

// Summary aggregates a batch run
type Summary struct {
	FilesProcessed int
	FilesSkipped   int
	FilesFailed    int
	RecordsWritten int
	Duration       time.Duration
}

// Option configures optional processor collaborators
type Option func(*Processor)

// WithMetrics attaches a metrics manager
func WithMetrics(mm *monitoring.MetricsManager) Option {
	return func(p *Processor) { p.metrics = mm }
}

// WithLogger overrides the default logger
func WithLogger(logger *log.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

// New creates a batch processor from a validated configuration
func New(cfg *config.Config, opts ...Option) (*Processor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	p := &Processor{
		config: cfg,
		logger: log.New(os.Stderr, "[batch] ", log.LstdFlags),
		seen:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(p)
	}

	collectorCfg := cfg.CollectorConfig()
	collectorCfg.Logger = p.logger
	if p.metrics != nil {
		collectorCfg.Observer = p.metrics
	}

	collector, err := collect.New(collectorCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create collector: %w", err)
	}
	p.collector = collector

	manager, err := output.NewManager(output.Options{
		Format:           output.Format(cfg.Output.Format),
		File:             cfg.Output.File,
		ConnectionString: cfg.Output.ConnectionString,
		Database:         cfg.Output.Database,
		Table:            cfg.Output.Table,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create output manager: %w", err)
	}
	p.manager = manager

	return p, nil
}

// Run processes every configured snapshot and writes the combined
// records to the configured output. Individual snapshot failures are
// logged and counted; the batch continues.
func (p *Processor) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	if p.metrics != nil {
		p.metrics.RecordBatchStart()
	}

	files, err := p.resolveFiles()
	if err != nil {
		p.finishBatch("failed", start)
		return nil, err
	}
	if len(files) == 0 {
		p.finishBatch("failed", start)
		return nil, fmt.Errorf("no snapshot files to process")
	}

	p.logger.Printf("starting batch %q with %d snapshot(s)", p.config.Name, len(files))

	summary := &Summary{}
	var records []map[string]interface{}

	for _, file := range files {
		select {
		case <-ctx.Done():
			p.finishBatch("cancelled", start)
			return summary, ctx.Err()
		default:
		}

		result := p.processFile(file)
		switch {
		case result.Err != nil:
			summary.FilesFailed++
			p.logger.Printf("snapshot %s failed: %v", file, result.Err)
			if p.metrics != nil {
				p.metrics.RecordSnapshotProcessed("failed")
			}
		case result.Skipped:
			summary.FilesSkipped++
			if p.metrics != nil {
				p.metrics.RecordSnapshotProcessed("skipped")
			}
		default:
			summary.FilesProcessed++
			records = append(records, flattenResult(result)...)
			if p.metrics != nil {
				p.metrics.RecordSnapshotProcessed("processed")
			}
		}
	}

	if len(records) > 0 {
		writeStart := time.Now()
		if err := p.manager.Write(records); err != nil {
			if p.metrics != nil {
				p.metrics.RecordOutputError(p.config.Output.Format, "write")
			}
			p.finishBatch("failed", start)
			return summary, fmt.Errorf("failed to write output: %w", err)
		}
		if p.metrics != nil {
			p.metrics.RecordOutputSuccess(p.config.Output.Format, time.Since(writeStart), len(records))
		}
		summary.RecordsWritten = len(records)
	}

	summary.Duration = time.Since(start)
	p.finishBatch("completed", start)

	p.logger.Printf("batch %q done: %d processed, %d skipped, %d failed, %d record(s) written in %v",
		p.config.Name, summary.FilesProcessed, summary.FilesSkipped, summary.FilesFailed,
		summary.RecordsWritten, summary.Duration.Round(time.Millisecond))

	return summary, nil
}

// processFile parses one snapshot and runs all extraction passes on it
func (p *Processor) processFile(file string) *FileResult {
	result := &FileResult{File: file}

	content, err := os.ReadFile(file)
	if err != nil {
		result.Err = fmt.Errorf("failed to read snapshot: %w", err)
		return result
	}
	if p.metrics != nil {
		p.metrics.RecordSnapshotSize("file", int64(len(content)))
	}

	hash := contentHash(content)
	if first, ok := p.seen[hash]; ok {
		p.logger.Printf("snapshot %s has the same content as %s, skipping", file, first)
		result.Skipped = true
		return result
	}
	p.seen[hash] = file

	snapshot, err := dom.NewSnapshot(string(content), p.config.Input.BaseURL)
	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordSnapshotError("parse")
		}
		result.Err = fmt.Errorf("failed to parse snapshot: %w", err)
		return result
	}

	result.Listings = p.collector.CollectListings(snapshot)
	result.Reviews = p.collector.CollectReviews(snapshot)
	result.Agent, _ = p.collector.ExtractAgentProfile(snapshot)

	p.logger.Printf("snapshot %s: %d listing(s), %d review(s), %d recommendation(s)",
		file, result.Listings.Total(), len(result.Reviews.Individual), len(result.Reviews.Recommendations))

	return result
}

// resolveFiles combines the configured file list with a directory scan
// for *.html snapshots, deduplicated and sorted for a stable order
func (p *Processor) resolveFiles() ([]string, error) {
	unique := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !unique[path] {
			unique[path] = true
			files = append(files, path)
		}
	}

	for _, file := range p.config.Input.Files {
		add(file)
	}

	if dir := p.config.Input.Directory; dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			ext := strings.ToLower(filepath.Ext(name))
			if ext == ".html" || ext == ".htm" {
				add(filepath.Join(dir, name))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func (p *Processor) finishBatch(status string, start time.Time) {
	if p.metrics != nil {
		p.metrics.RecordBatchComplete(status, time.Since(start))
	}
}

// flattenResult converts one snapshot's results into output records,
// each tagged with its entity kind and source file
func flattenResult(result *FileResult) []map[string]interface{} {
	var records []map[string]interface{}

	tag := func(record map[string]interface{}, entity string) map[string]interface{} {
		record["entity"] = entity
		record["source_file"] = result.File
		return record
	}

	if result.Listings != nil {
		for i := range result.Listings.Active {
			records = append(records, tag(result.Listings.Active[i].ToRecord(), "listing"))
		}
		for i := range result.Listings.Sold {
			records = append(records, tag(result.Listings.Sold[i].ToRecord(), "listing"))
		}
	}
	if result.Reviews != nil {
		for i := range result.Reviews.Individual {
			records = append(records, tag(result.Reviews.Individual[i].ToRecord(), "review"))
		}
		for i := range result.Reviews.Recommendations {
			records = append(records, tag(result.Reviews.Recommendations[i].ToRecord(), "recommendation"))
		}
	}
	if result.Agent != nil {
		records = append(records, tag(result.Agent.ToRecord(), "agent"))
	}

	return records
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
