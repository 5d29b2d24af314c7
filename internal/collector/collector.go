// Package collector runs the full collection pipeline for one source:
// resolve a working dataset identifier, normalize its records, and write
// each configured output file.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Member09/scaling-laws/internal/cmdutil"
	"github.com/Member09/scaling-laws/internal/datastore"
	"github.com/Member09/scaling-laws/internal/jsonl"
	"github.com/Member09/scaling-laws/internal/provider"
	"github.com/Member09/scaling-laws/internal/resolver"
	"github.com/Member09/scaling-laws/internal/sources"
	"github.com/Member09/scaling-laws/internal/stream"
)

// RunRecord summarizes one written output for the run log.
type RunRecord struct {
	Source          string
	Dataset         string
	Config          string
	OutputFile      string
	RecordsWritten  int
	RecordsDropped  int
	Streaming       bool
	RecordLimit     int
	DurationSeconds float64
	FinishedAt      time.Time
}

// Collector collects a source's outputs into OutputDir.
type Collector struct {
	Provider  provider.Provider
	OutputDir string
	Streaming bool
	Limit     int
}

// New creates a collector backed by the configured dataset provider.
func New(outputDir string, limit int, streaming bool) *Collector {
	return &Collector{
		Provider:  provider.NewHFClient(),
		OutputDir: outputDir,
		Streaming: streaming,
		Limit:     limit,
	}
}

// Run collects every output the spec defines. Each output gets its own
// resolution and its own pass over the dataset, since dataset iterators
// are single use. The first failing output aborts the run.
func (c *Collector) Run(ctx context.Context, spec sources.Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	slog.Info("Collecting source", "source", spec.Name, "outputs", len(spec.Outputs))

	runs := make([]RunRecord, 0, len(spec.Outputs))
	for _, out := range spec.Outputs {
		run, err := c.runOutput(ctx, spec, out)
		if err != nil {
			return err
		}
		runs = append(runs, run)
	}

	return recordRuns(runs)
}

func (c *Collector) runOutput(ctx context.Context, spec sources.Spec, out sources.Output) (RunRecord, error) {
	start := time.Now()

	norm, err := out.Normalizer()
	if err != nil {
		return RunRecord{}, fmt.Errorf("output %s: %w", out.File, err)
	}

	ds, cand, err := resolver.Resolve(ctx, c.Provider, spec.Name, spec.Candidates, c.Streaming)
	if err != nil {
		return RunRecord{}, err
	}

	var total int
	if n, known := ds.Len(); known {
		total = n
		if c.Limit > 0 && c.Limit < total {
			total = c.Limit
		}
	}

	it := stream.New(ds, norm, c.Limit)
	path := filepath.Join(c.OutputDir, out.File)
	count, err := jsonl.Write(path, it, total)
	if err != nil {
		return RunRecord{}, fmt.Errorf("output %s: %w", out.File, err)
	}

	drops := it.Drops()
	slog.Info("Output written",
		"source", spec.Name,
		"file", out.File,
		"records", count,
		"dropped", drops.Count)
	for _, sample := range drops.Samples {
		slog.Debug("Dropped record sample", "file", out.File, "raw", fmt.Sprintf("%v", sample))
	}

	return RunRecord{
		Source:          spec.Name,
		Dataset:         cand.Dataset,
		Config:          cand.Config,
		OutputFile:      out.File,
		RecordsWritten:  count,
		RecordsDropped:  drops.Count,
		Streaming:       c.Streaming,
		RecordLimit:     c.Limit,
		DurationSeconds: time.Since(start).Seconds(),
		FinishedAt:      time.Now(),
	}, nil
}

// recordRuns is a var for testability
var recordRuns = func(runs []RunRecord) error {
	return cmdutil.WriteToDatastore(runs, datastore.RunsSchema, datastore.RunsTable, "collection runs", func(r RunRecord) map[string]any {
		return cmdutil.StructToMap(r, cmdutil.StructToMapOptions{})
	})
}
