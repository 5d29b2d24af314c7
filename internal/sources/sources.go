// Package sources defines the logical corpus sources this tool collects:
// which provider identifiers to try for each one, and which output files
// it produces. Specs are static configuration, consumed read-only.
package sources

import (
	"fmt"

	"github.com/Member09/scaling-laws/internal/normalize"
	"github.com/Member09/scaling-laws/internal/record"
)

// Candidate is one provider-side identifier to try for a source. Dataset
// hosting names are not stable across time or mirrors, so a source lists
// candidates in preference order.
type Candidate struct {
	Dataset string `yaml:"dataset"`
	Config  string `yaml:"config,omitempty"`
	Split   string `yaml:"split,omitempty"`
}

// Output describes one file a source produces and how its records are
// normalized.
type Output struct {
	// File is the output filename inside the source's directory.
	File string `yaml:"file"`
	// Kind is the canonical record shape this output emits.
	Kind record.Shape `yaml:"kind"`
	// Lang tags monolingual and summarization records.
	Lang string `yaml:"lang,omitempty"`
	// SrcLang and TgtLang tag parallel records.
	SrcLang string `yaml:"src_lang,omitempty"`
	TgtLang string `yaml:"tgt_lang,omitempty"`
	// Note is an optional corpus-level marker for monolingual records.
	Note string `yaml:"note,omitempty"`
	// TextKeys overrides the monolingual text key priority.
	TextKeys []string `yaml:"text_keys,omitempty"`
}

// Normalizer builds the normalization function for this output.
func (o Output) Normalizer() (normalize.Func, error) {
	switch o.Kind {
	case record.ShapeMonolingual:
		return normalize.Monolingual(normalize.MonolingualOptions{
			Lang:     o.Lang,
			Note:     o.Note,
			TextKeys: o.TextKeys,
		}), nil
	case record.ShapeParallel:
		return normalize.Parallel(o.SrcLang, o.TgtLang), nil
	case record.ShapeSummarization:
		return normalize.Summarization(o.Lang), nil
	default:
		return nil, fmt.Errorf("unknown record shape %q", o.Kind)
	}
}

// Spec describes one logical source.
type Spec struct {
	Name       string      `yaml:"name"`
	Candidates []Candidate `yaml:"candidates"`
	Outputs    []Output    `yaml:"outputs"`
}

// Validate checks that the spec is complete enough to collect.
func (s Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("source has no name")
	}
	if len(s.Candidates) == 0 {
		return fmt.Errorf("source %s has no candidates", s.Name)
	}
	for i, c := range s.Candidates {
		if c.Dataset == "" {
			return fmt.Errorf("source %s candidate %d has no dataset", s.Name, i+1)
		}
	}
	if len(s.Outputs) == 0 {
		return fmt.Errorf("source %s has no outputs", s.Name)
	}
	for _, o := range s.Outputs {
		if o.File == "" {
			return fmt.Errorf("source %s has an output with no file name", s.Name)
		}
		if _, err := o.Normalizer(); err != nil {
			return fmt.Errorf("source %s output %s: %w", s.Name, o.File, err)
		}
		switch o.Kind {
		case record.ShapeParallel:
			if o.SrcLang == "" || o.TgtLang == "" {
				return fmt.Errorf("source %s output %s: parallel outputs need src_lang and tgt_lang", s.Name, o.File)
			}
		default:
			if o.Lang == "" {
				return fmt.Errorf("source %s output %s: missing lang", s.Name, o.File)
			}
		}
	}
	return nil
}
