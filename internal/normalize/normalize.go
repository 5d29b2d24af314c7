// Package normalize maps raw upstream records onto the canonical record
// shapes. Upstream data is untrusted and heterogeneous: normalization
// never fails with an error, it reports a skip via the ok return and the
// caller drops the record.
package normalize

import (
	"github.com/Member09/scaling-laws/internal/record"
)

// Raw is one upstream record as decoded from the provider. Key names and
// value shapes vary across mirrors of the same logical corpus.
type Raw map[string]any

// Func turns a raw record into a canonical record. ok is false when the
// record carries no usable data and must be skipped.
type Func func(Raw) (record.Record, bool)

// DefaultTextKeys is the key priority for monolingual text extraction.
// First match wins.
var DefaultTextKeys = []string{"text", "content"}

// summaryKeys is the candidate order for summaries across upstream
// mirrors: minimal mirrors rename summary to highlights or summary_text.
var summaryKeys = []string{"summary", "highlights", "summary_text"}

// first returns the first key in keys that extracts to a non-empty string.
func first(raw Raw, keys []string) (string, bool) {
	for _, k := range keys {
		if s, ok := record.ExtractString(raw[k]); ok {
			return s, true
		}
	}
	return "", false
}

// MonolingualOptions configure the monolingual normalizer for one output
// file.
type MonolingualOptions struct {
	// Lang is the language tag stamped on every record.
	Lang string
	// Note is an optional corpus-level marker copied onto every record.
	Note string
	// TextKeys overrides DefaultTextKeys (e.g. ["tgt"] to take the target
	// side of a parallel corpus).
	TextKeys []string
}

// Monolingual returns a normalizer producing Monolingual records.
// Title and URL are copied through when present and default to empty
// strings, keeping the output schema field-stable across records.
func Monolingual(opts MonolingualOptions) Func {
	keys := opts.TextKeys
	if len(keys) == 0 {
		keys = DefaultTextKeys
	}
	return func(raw Raw) (record.Record, bool) {
		text, ok := first(raw, keys)
		if !ok {
			return nil, false
		}
		rec := record.Monolingual{
			Lang: opts.Lang,
			Text: text,
			Note: opts.Note,
		}
		rec.Title, _ = record.ExtractString(raw["title"])
		rec.URL, _ = record.ExtractString(raw["url"])
		return rec, true
	}
}

// Parallel returns a normalizer producing Parallel records. A pair with
// either side empty carries no usable signal and is dropped whole, never
// emitted partially or degraded to monolingual.
func Parallel(srcLang, tgtLang string) Func {
	return func(raw Raw) (record.Record, bool) {
		src, okSrc := record.ExtractString(raw["src"])
		tgt, okTgt := record.ExtractString(raw["tgt"])
		if !okSrc || !okTgt {
			return nil, false
		}
		return record.Parallel{
			SrcLang: srcLang,
			TgtLang: tgtLang,
			Src:     src,
			Tgt:     tgt,
		}, true
	}
}

// Summarization returns a normalizer producing Summarization records.
// The summary is taken from the first of summary/highlights/summary_text
// that extracts. Records with only an article are dropped: a minimal
// mirror's partial data is not useful for the summarization task.
func Summarization(lang string) Func {
	return func(raw Raw) (record.Record, bool) {
		article, okArticle := record.ExtractString(raw["article"])
		summary, okSummary := first(raw, summaryKeys)
		if !okArticle || !okSummary {
			return nil, false
		}
		rec := record.Summarization{
			Lang:    lang,
			Article: article,
			Summary: summary,
		}
		rec.URL, _ = record.ExtractString(raw["url"])
		return rec, true
	}
}
