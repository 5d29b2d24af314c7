// Package provider loads raw dataset rows from the upstream dataset host
// (the Hugging Face datasets-server API).
package provider

import (
	"context"

	"github.com/Member09/scaling-laws/internal/normalize"
)

// Config selects a dataset variant on the provider side.
type Config struct {
	// Name is the builder config (e.g. "hi" or "20231101.hi"). May be
	// empty for datasets with a single default config.
	Name string
	// Split is the dataset split; defaults to "train".
	Split string
}

// Dataset is a single forward pass over raw upstream records. Datasets
// are not restartable: load a fresh handle for a second pass.
type Dataset interface {
	// Next returns the next raw record, or io.EOF when exhausted.
	Next() (normalize.Raw, error)
	// Len reports the total record count when known. Only materialized
	// (non-streaming) datasets know their length.
	Len() (int, bool)
}

// Provider yields datasets for provider-side identifiers. A load failure
// for one identifier is a candidate failure: the resolver moves on to the
// next candidate.
type Provider interface {
	Load(ctx context.Context, dataset string, cfg Config, streaming bool) (Dataset, error)
}
