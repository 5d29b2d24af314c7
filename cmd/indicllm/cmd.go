// Package indicllm collects the IndicLLM Hindi pretraining corpus. The
// corpus mixes Hindi with closely related languages and is not filtered,
// so its records carry a note marking them as such.
package indicllm

import (
	"context"

	"github.com/Member09/scaling-laws/internal/cmdutil"
	"github.com/Member09/scaling-laws/internal/collector"
	"github.com/Member09/scaling-laws/internal/record"
	"github.com/Member09/scaling-laws/internal/sources"
)

// CollectParams holds the parameters for an indicllm collection run
type CollectParams struct {
	OutputDir string
	Limit     int
	Streaming bool
}

// Spec returns the source definition
func Spec() sources.Spec {
	return sources.Spec{
		Name: "indicllm",
		Candidates: []sources.Candidate{
			{Dataset: "Hindi-data-hub/odaigen_hindi_pre_trained_sp"},
		},
		Outputs: []sources.Output{
			{
				File: "hi_mixed.jsonl",
				Kind: record.ShapeMonolingual,
				Lang: "hi_like",
				Note: "unfiltered_mixed_hindi_family",
			},
		},
	}
}

var collectFunc = runCollection

// CollectWithParams resolves the output directory and runs the collection
func CollectWithParams(params CollectParams) error {
	cfg := cmdutil.BaseCommandConfig{
		OutputDir: params.OutputDir,
		ConfigKey: "indicllm",
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
