package ccv

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/neuropoly/bibsync/internal/reconcile"
	"github.com/neuropoly/bibsync/internal/record"
)

// SyncResult summarizes a sync pass over a CCV tree.
type SyncResult struct {
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`   // No source counterpart; left untouched
	Ambiguous []string `json:"ambiguous"` // Titles that could not be disambiguated
}

// Sync copies the Authors and venue fields from the source records into
// every matching publication entry of the tree, in place. Each entry's
// (kind, title) identity is re-derived from the tree itself and resolved
// against the source collection with the same title-then-venue rule the
// reconciliation engine uses.
//
// Entries with no source counterpart are skipped (logged, not an error);
// the sync never creates or deletes entries. An entry whose title matches
// two or more source records that venue equality cannot separate is a
// disambiguation failure: the entry is left untouched, the remaining
// entries are still processed, and the failure is returned as an error so
// the operator fixes the data instead of the tool guessing.
//
// The tree is mutated in memory only; the caller persists it with Save.
func Sync(logger zerolog.Logger, source []record.Record, doc *etree.Document) (SyncResult, error) {
	entries, err := Entries(doc)
	if err != nil {
		return SyncResult{}, err
	}

	var result SyncResult
	for _, entry := range entries {
		kind, _ := EntryKind(entry)
		labels := labelsByKind[kind]

		title, ok := FieldValue(entry, labels.title)
		if !ok {
			return result, fmt.Errorf("%w: field %q under a %s entry", ErrNotFound, labels.title, kind)
		}
		venue, _ := FieldValue(entry, labels.venue)

		var pool []record.Record
		for _, r := range source {
			if r.Kind == kind {
				pool = append(pool, r)
			}
		}

		idx, err := reconcile.FindMatch(pool, title, venue)
		if err != nil {
			result.Ambiguous = append(result.Ambiguous, title)
			logger.Error().Str("title", title).Str("kind", string(kind)).
				Msg("cannot disambiguate entry, leaving untouched")
			continue
		}
		if idx < 0 {
			result.Skipped++
			logger.Warn().Str("title", title).Str("kind", string(kind)).
				Msg("no source record for entry, skipping")
			continue
		}

		src := pool[idx]
		logger.Info().Str("title", title).Msg("updating entry")
		if err := setFieldLogged(logger, entry, AuthorsLabel, src.AuthorString()); err != nil {
			return result, err
		}
		if err := setFieldLogged(logger, entry, labels.venue, src.Venue); err != nil {
			return result, err
		}
		result.Updated++
	}

	if len(result.Ambiguous) > 0 {
		return result, fmt.Errorf("%w: %d entries could not be disambiguated against the source",
			reconcile.ErrAmbiguous, len(result.Ambiguous))
	}
	return result, nil
}

// setFieldLogged overwrites a field value and logs the old→new transition
// when the value actually changes.
func setFieldLogged(logger zerolog.Logger, entry *etree.Element, label, text string) error {
	old, ok := FieldValue(entry, label)
	if !ok {
		return fmt.Errorf("%w: field %q under entry %q", ErrNotFound, label, entry.SelectAttrValue("label", ""))
	}
	if old != text {
		logger.Info().Str("field", label).Str("old", old).Str("new", text).Msg("field updated")
	}
	return SetField(entry, label, text)
}

// IsAmbiguous reports whether err came from a sync disambiguation failure.
func IsAmbiguous(err error) bool {
	return errors.Is(err, reconcile.ErrAmbiguous)
}
