// Package record defines the canonical record shapes produced by the
// corpus collectors, plus the field extraction used to build them from
// heterogeneous upstream data.
package record

// Shape identifies one of the canonical record shapes.
type Shape string

const (
	ShapeMonolingual   Shape = "monolingual"
	ShapeParallel      Shape = "parallel"
	ShapeSummarization Shape = "summarization"
)

// Record is implemented by every canonical record shape.
type Record interface {
	Shape() Shape
}

// Monolingual is a single-language text record.
// Text is always non-empty after trimming. Title and URL are descriptive
// fields that default to empty strings so the output schema stays
// field-stable across records of one corpus. Note is a corpus-level
// marker and is omitted when unset.
type Monolingual struct {
	Lang  string `json:"lang"`
	Text  string `json:"text"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Note  string `json:"note,omitempty"`
}

// Shape implements Record.
func (Monolingual) Shape() Shape { return ShapeMonolingual }

// Parallel is a translation pair. Both sides are always non-empty; a pair
// with one missing side is never constructed.
type Parallel struct {
	SrcLang string `json:"src_lang"`
	TgtLang string `json:"tgt_lang"`
	Src     string `json:"src"`
	Tgt     string `json:"tgt"`
}

// Shape implements Record.
func (Parallel) Shape() Shape { return ShapeParallel }

// Summarization is an article/summary pair. Both sides are always
// non-empty.
type Summarization struct {
	Lang    string `json:"lang"`
	Article string `json:"article"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

// Shape implements Record.
func (Summarization) Shape() Shape { return ShapeSummarization }
