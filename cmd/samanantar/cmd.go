// Package samanantar collects the Samanantar parallel corpus. One pass
// over the dataset feeds the English-Hindi pairs, a second pass keeps
// only the Hindi side as monolingual text.
package samanantar

import (
	"context"

	"github.com/Member09/scaling-laws/internal/cmdutil"
	"github.com/Member09/scaling-laws/internal/collector"
	"github.com/Member09/scaling-laws/internal/record"
	"github.com/Member09/scaling-laws/internal/sources"
)

// CollectParams holds the parameters for a samanantar collection run
type CollectParams struct {
	OutputDir string
	Limit     int
	Streaming bool
}

// Spec returns the source definition
func Spec() sources.Spec {
	return sources.Spec{
		Name: "samanantar",
		Candidates: []sources.Candidate{
			{Dataset: "ai4bharat/samanantar", Config: "hi"},
		},
		Outputs: []sources.Output{
			{
				File:    "en_hi_parallel.jsonl",
				Kind:    record.ShapeParallel,
				SrcLang: "en",
				TgtLang: "hi",
			},
			{
				File:     "hi_mono.jsonl",
				Kind:     record.ShapeMonolingual,
				Lang:     "hi",
				TextKeys: []string{"tgt"},
			},
		},
	}
}

var collectFunc = runCollection

// CollectWithParams resolves the output directory and runs the collection
func CollectWithParams(params CollectParams) error {
	cfg := cmdutil.BaseCommandConfig{
		OutputDir: params.OutputDir,
		ConfigKey: "samanantar",
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
