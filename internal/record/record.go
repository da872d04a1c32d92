// Package record defines the core domain types for publication records.
package record

import "strings"

// Record represents a single publication entry, regardless of which source
// (spreadsheet or CCV XML) it was parsed from.
type Record struct {
	// Identity
	ID   string `json:"id"` // Source-local identifier, e.g. "J12", "C8"
	Kind Kind   `json:"kind"`

	// Matching keys
	Title string `json:"title"` // Primary matching key
	Venue string `json:"venue"` // Journal or conference name, disambiguator

	// Metadata
	Authors []string `json:"authors"` // Display names, order preserved
	Year    int      `json:"year"`

	// Optional descriptive fields (formatting only, never matched on)
	Impact   string `json:"impact,omitempty"`
	URL      string `json:"url,omitempty"`
	Labels   string `json:"labels,omitempty"` // Comma-separated category labels
	Prize    string `json:"prize,omitempty"`
	Pages    string `json:"pages,omitempty"` // "Volume:Pages" column
	Location string `json:"location,omitempty"`

	// Extra holds unrecognized spreadsheet columns (grant tags and other
	// 'x'-marker columns) keyed by header name.
	Extra map[string]string `json:"extra,omitempty"`
}

// AuthorString returns the comma-joined serialized form of the author list.
func (r Record) AuthorString() string {
	return strings.Join(r.Authors, ", ")
}

// SplitAuthors parses a comma-separated author string into trimmed display
// names. Order is meaningful and preserved.
func SplitAuthors(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

// SplitLabels parses the comma-separated Labels field into trimmed labels.
func SplitLabels(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if l := strings.TrimSpace(p); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

// NormalizeTitle collapses runs of whitespace so titles from different
// sources compare as exact strings.
func NormalizeTitle(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
