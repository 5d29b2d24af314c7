// Package stream turns raw provider datasets into bounded sequences of
// canonical records. One record is in flight at a time; nothing is
// buffered beyond the current element.
package stream

import (
	"io"

	"github.com/Member09/scaling-laws/internal/normalize"
	"github.com/Member09/scaling-laws/internal/provider"
	"github.com/Member09/scaling-laws/internal/record"
)

// DropSampleLimit caps how many skipped raw records are retained for
// diagnostics per output.
const DropSampleLimit = 5

// Drops tracks raw records that failed normalization for one output.
// Per-record skipping stays silent by design (the sources are noisy);
// the counter and samples give operators visibility after the fact.
type Drops struct {
	Count   int
	Samples []normalize.Raw
}

func (d *Drops) observe(raw normalize.Raw) {
	d.Count++
	if len(d.Samples) < DropSampleLimit {
		d.Samples = append(d.Samples, raw)
	}
}

// Iterator is a single forward pass over a dataset: each raw record is
// normalized, skips are counted, and the pass ends once limit records
// have been emitted. A limit of 0 means unbounded. Iterators are not
// restartable.
type Iterator struct {
	ds      provider.Dataset
	norm    normalize.Func
	limit   int
	emitted int
	done    bool
	drops   *Drops
}

// New creates an iterator over ds using norm, emitting at most limit
// records (0 = unbounded).
func New(ds provider.Dataset, norm normalize.Func, limit int) *Iterator {
	return &Iterator{
		ds:    ds,
		norm:  norm,
		limit: limit,
		drops: &Drops{},
	}
}

// Next returns the next canonical record, or io.EOF once the dataset is
// exhausted or the limit is reached. No further raw records are pulled
// from the dataset after the limit.
func (it *Iterator) Next() (record.Record, error) {
	if it.done {
		return nil, io.EOF
	}
	if it.limit > 0 && it.emitted >= it.limit {
		it.done = true
		return nil, io.EOF
	}

	for {
		raw, err := it.ds.Next()
		if err == io.EOF {
			it.done = true
			return nil, io.EOF
		}
		if err != nil {
			it.done = true
			return nil, err
		}

		rec, ok := it.norm(raw)
		if !ok {
			it.drops.observe(raw)
			continue
		}

		it.emitted++
		return rec, nil
	}
}

// Emitted returns how many records have been produced so far.
func (it *Iterator) Emitted() int {
	return it.emitted
}

// Drops returns the drop diagnostics for this pass.
func (it *Iterator) Drops() *Drops {
	return it.drops
}
