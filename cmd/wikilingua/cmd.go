// Package wikilingua collects the WikiLingua Hindi summarization pairs.
// The dataset has been published under several names and configs, so the
// spec lists each known identifier in preference order.
package wikilingua

import (
	"context"

	"github.com/Member09/scaling-laws/internal/cmdutil"
	"github.com/Member09/scaling-laws/internal/collector"
	"github.com/Member09/scaling-laws/internal/record"
	"github.com/Member09/scaling-laws/internal/sources"
)

// CollectParams holds the parameters for a wikilingua collection run
type CollectParams struct {
	OutputDir string
	Limit     int
	Streaming bool
}

// Spec returns the source definition
func Spec() sources.Spec {
	return sources.Spec{
		Name: "wikilingua",
		Candidates: []sources.Candidate{
			{Dataset: "wiki_lingua", Config: "hindi"},
			{Dataset: "wikilingua", Config: "hi"},
			{Dataset: "wiki_lingua", Config: "hi"},
		},
		Outputs: []sources.Output{
			{
				File: "hi_sum.jsonl",
				Kind: record.ShapeSummarization,
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
		ConfigKey: "wikilingua",
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
