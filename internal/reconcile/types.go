// Package reconcile builds the cross-reference mapping between two
// publication record collections.
package reconcile

import (
	"github.com/neuropoly/bibsync/internal/record"
)

// Sentinel mapping values for records that could not be matched.
const (
	// SentinelMissed marks a source record with no candidate in the target.
	SentinelMissed = "missed"
	// SentinelDupl marks a source record with 2+ target candidates that
	// venue equality could not disambiguate.
	SentinelDupl = "dupl"
)

// Mapping maps a source record ID to the matched target record ID, or to
// one of the sentinels. Transient: built once per run and consumed
// immediately by the sync writer or the ref-block rewriter.
type Mapping map[string]string

// Matched reports whether id resolved to a real target ID.
func (m Mapping) Matched(id string) bool {
	v, ok := m[id]
	return ok && v != SentinelMissed && v != SentinelDupl
}

// FieldWarning records a non-fatal field difference between a matched pair.
type FieldWarning struct {
	SourceID string   `json:"source_id"`
	TargetID string   `json:"target_id"`
	Fields   []string `json:"fields"` // e.g. "Authors", "Journal/Conference"
}

// KindSummary aggregates per-kind reconciliation counts.
type KindSummary struct {
	Kind      record.Kind     `json:"kind"`
	Matched   int             `json:"matched"`
	Missed    int             `json:"missed"`
	Duplicate int             `json:"duplicate"`
	Orphaned  []record.Record `json:"orphaned"` // In target, absent from source
}

// Report is the display/audit output of a reconciliation run. It never
// feeds back into the mapping.
type Report struct {
	Kinds    []KindSummary  `json:"kinds"`
	Warnings []FieldWarning `json:"warnings"`
}

// TotalOrphaned returns the number of orphaned target records across kinds.
func (r *Report) TotalOrphaned() int {
	n := 0
	for _, s := range r.Kinds {
		n += len(s.Orphaned)
	}
	return n
}

// Clean reports whether every source record matched with no duplicates,
// orphans, or field warnings.
func (r *Report) Clean() bool {
	if len(r.Warnings) > 0 {
		return false
	}
	for _, s := range r.Kinds {
		if s.Missed > 0 || s.Duplicate > 0 || len(s.Orphaned) > 0 {
			return false
		}
	}
	return true
}
