package record

import "strings"

// nestedTextKey is the reserved sub-key probed when a field value is a
// nested object (some mirrors store text as {"text": [...]}).
const nestedTextKey = "text"

// FieldKind enumerates the recognized shapes of a raw upstream field.
type FieldKind int

const (
	// FieldAbsent covers missing fields and every unrecognized shape.
	FieldAbsent FieldKind = iota
	// FieldText is a plain string.
	FieldText
	// FieldTextList is an ordered sequence of elements.
	FieldTextList
	// FieldNested is a keyed object holding the text under a sub-key.
	FieldNested
)

// FieldValue is a closed classification of a decoded JSON field value.
// Classification is total: anything that is not a string, a sequence, or
// an object is Absent. Malformed fields are expected upstream noise, so
// absence is the only failure signal here, never an error.
type FieldValue struct {
	kind   FieldKind
	text   string
	list   []any
	nested map[string]any
}

// Classify maps a decoded JSON value onto the closed field variant.
func Classify(v any) FieldValue {
	switch t := v.(type) {
	case string:
		return FieldValue{kind: FieldText, text: t}
	case []any:
		return FieldValue{kind: FieldTextList, list: t}
	case []string:
		// Manifest-sourced values decode as typed slices.
		list := make([]any, len(t))
		for i, s := range t {
			list[i] = s
		}
		return FieldValue{kind: FieldTextList, list: list}
	case map[string]any:
		return FieldValue{kind: FieldNested, nested: t}
	default:
		return FieldValue{kind: FieldAbsent}
	}
}

// Kind returns the classified shape of the field.
func (f FieldValue) Kind() FieldKind { return f.kind }

// Extract resolves the field to a single trimmed string. For sequences,
// non-string elements and empty strings are dropped and the survivors are
// joined with single spaces. For nested objects, extraction recurses into
// the "text" sub-key. ok is false when nothing usable remains.
func (f FieldValue) Extract() (string, bool) {
	switch f.kind {
	case FieldText:
		s := strings.TrimSpace(f.text)
		return s, s != ""
	case FieldTextList:
		var parts []string
		for _, el := range f.list {
			s, ok := el.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(s)
			if s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, " "), true
	case FieldNested:
		return Classify(f.nested[nestedTextKey]).Extract()
	default:
		return "", false
	}
}

// ExtractString classifies and extracts v in one step.
func ExtractString(v any) (string, bool) {
	return Classify(v).Extract()
}
