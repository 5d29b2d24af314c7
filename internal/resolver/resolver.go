// Package resolver picks the first working provider identifier for a
// logical source. Dataset hosting names drift across time and mirrors, so
// each source carries an ordered candidate list.
package resolver

import (
	"context"
	"log/slog"

	srcerrors "github.com/Member09/scaling-laws/internal/errors"
	"github.com/Member09/scaling-laws/internal/provider"
	"github.com/Member09/scaling-laws/internal/sources"
)

// Resolve tries each candidate in order and returns the first dataset
// that loads, along with the candidate that produced it. When every
// candidate fails, it returns a SourceUnavailableError listing each
// attempt and its failure reason; individual failures are never
// swallowed silently.
func Resolve(ctx context.Context, p provider.Provider, source string, candidates []sources.Candidate, streaming bool) (provider.Dataset, sources.Candidate, error) {
	var attempts []srcerrors.Attempt

	for _, cand := range candidates {
		cfg := provider.Config{Name: cand.Config, Split: cand.Split}
		ds, err := p.Load(ctx, cand.Dataset, cfg, streaming)
		if err == nil {
			if len(attempts) > 0 {
				slog.Info("Candidate resolved after earlier failures",
					"source", source,
					"dataset", cand.Dataset,
					"config", cand.Config,
					"failed_attempts", len(attempts))
			}
			return ds, cand, nil
		}

		slog.Warn("Candidate failed to load",
			"source", source,
			"dataset", cand.Dataset,
			"config", cand.Config,
			"error", err)
		attempts = append(attempts, srcerrors.Attempt{
			Dataset: cand.Dataset,
			Config:  cand.Config,
			Reason:  err.Error(),
		})
	}

	return nil, sources.Candidate{}, srcerrors.NewSourceUnavailableError(source, attempts)
}
