package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// unknownDocumentType is shown when the producer did not classify a document.
const unknownDocumentType = "unknown"

// Document is a previously extracted tax record.
// It is immutable once fetched; identity is ID.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// DocumentType is the producer's classification (e.g. "salary", "form16").
	DocumentType string

	// Extracted holds the raw key/value fields pulled out of the document.
	// It may be nil when extraction produced nothing.
	Extracted map[string]any

	// CreatedAt is when the document was uploaded.
	CreatedAt time.Time
}

// TypeLabel returns the document type, or "unknown" when unset.
func (d *Document) TypeLabel() string {
	if d.DocumentType == "" {
		return unknownDocumentType
	}
	return d.DocumentType
}

// HasExtracted reports whether the document carries any extracted fields.
func (d *Document) HasExtracted() bool {
	return len(d.Extracted) > 0
}

// ExtractedOrEmpty returns the extracted mapping, never nil.
func (d *Document) ExtractedOrEmpty() map[string]any {
	if d.Extracted == nil {
		return map[string]any{}
	}
	return d.Extracted
}

// Field is one extracted key with its display value.
type Field struct {
	Key   string
	Value string
}

// Fields returns the extracted fields sorted by key with display values.
func (d *Document) Fields() []Field {
	keys := make([]string, 0, len(d.Extracted))
	for k := range d.Extracted {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, Field{Key: k, Value: FormatValue(d.Extracted[k])})
	}
	return fields
}

// FormatValue renders an extracted value for display.
// Nil renders as an em dash, maps and slices as indented JSON.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "—"
	case string:
		return val
	case map[string]any, []any:
		data, err := json.MarshalIndent(val, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	case float64:
		// JSON numbers decode as float64; print integers without a fraction.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
