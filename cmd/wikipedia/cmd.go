// Package wikipedia collects the Hindi Wikipedia dump as monolingual
// text. The snapshot date is part of the dataset config and moves
// forward over time, so it lives in configuration.
package wikipedia

import (
	"context"

	"github.com/spf13/viper"

	"github.com/Member09/scaling-laws/internal/cmdutil"
	"github.com/Member09/scaling-laws/internal/collector"
	"github.com/Member09/scaling-laws/internal/record"
	"github.com/Member09/scaling-laws/internal/sources"
)

// DefaultSnapshot is used when wikipedia.snapshot is not configured.
const DefaultSnapshot = "20231101.hi"

// CollectParams holds the parameters for a wikipedia collection run
type CollectParams struct {
	OutputDir string
	Limit     int
	Streaming bool
}

// Spec returns the source definition
func Spec() sources.Spec {
	snapshot := viper.GetString("wikipedia.snapshot")
	if snapshot == "" {
		snapshot = DefaultSnapshot
	}

	return sources.Spec{
		Name: "wikipedia",
		Candidates: []sources.Candidate{
			{Dataset: "wikimedia/wikipedia", Config: snapshot},
		},
		Outputs: []sources.Output{
			{
				File: "hi_mono.jsonl",
				Kind: record.ShapeMonolingual,
				Lang: "hi",
			},
		},
	}
}

var collectFunc = runCollection

// CollectWithParams resolves the output directory and runs the collection
func CollectWithParams(params CollectParams) error {
	cfg := cmdutil.BaseCommandConfig{
		OutputDir: params.OutputDir,
		ConfigKey: "wikipedia",
	}
	if err := cmdutil.SetupOutputDir(&cfg); err != nil {
		return err
	}
	params.OutputDir = cfg.OutputDir

	return collectFunc(params)
}

func runCollection(params CollectParams) error {
	c := collector.New(params.OutputDir, params.Limit, params.Streaming)
	return c.Run(context.Background(), Spec())
}
