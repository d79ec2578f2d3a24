package usecases

import (
	"strings"

	"github.com/MacsInSpace/plex-tui/internal/domain"
)

// Metadata field names used by the catalog for a track's artist lineage.
// A track nests under album (parent) and artist (grandparent).
const (
	FieldGrandparentTitle = "grandparentTitle"
	FieldOriginalTitle    = "originalTitle"
	FieldParentTitle      = "parentTitle"
)

// FieldSource is the narrow surface the metadata accessor reads from: a
// structured field path plus a raw document fallback.
type FieldSource interface {
	Field(name string) (string, error)
	Document() domain.Document
}

// ReadField reads a metadata field fault-tolerantly: first the typed
// structured field, then the raw document by the same name. Textual values
// are trimmed of surrounding whitespace. Never returns an error; the second
// return value is false when both tiers failed, letting callers distinguish
// "no data" from an empty value.
//
// This is the single home of the structured-then-raw fallback; call sites
// must not reimplement it.
func ReadField(src FieldSource, name string) (string, bool) {
	if src == nil {
		return "", false
	}
	if value := readStructured(src, name); value != "" {
		return value, true
	}
	if value := readDocument(src.Document(), name); value != "" {
		return value, true
	}
	return "", false
}

// readStructured reads a typed structured field, swallowing read errors and
// trimming whitespace. Returns "" when the field is absent or unreadable.
func readStructured(src FieldSource, name string) string {
	if src == nil {
		return ""
	}
	value, err := src.Field(name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

// readDocument scans the raw document for the first non-empty value among
// the given field names, in order.
func readDocument(doc domain.Document, names ...string) string {
	if doc == nil {
		return ""
	}
	for _, name := range names {
		if value, ok := doc.Lookup(name); ok {
			if value = strings.TrimSpace(value); value != "" {
				return value
			}
		}
	}
	return ""
}
