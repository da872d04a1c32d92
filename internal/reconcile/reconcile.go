package reconcile

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/neuropoly/bibsync/internal/record"
)

// ErrAmbiguous is returned by FindMatch when two or more candidates share
// the same title and venue equality cannot single one out.
var ErrAmbiguous = errors.New("ambiguous match")

// checkedFields are the non-identity fields compared on matched pairs.
// Differences are warnings, never matching criteria.
var checkedFields = []string{"Authors", "Journal/Conference"}

// FindMatch returns the index in pool of the unique record matching the
// given title. When several records share the title, exact venue equality
// is the only tiebreak consulted: if exactly one candidate survives it, that
// candidate wins; otherwise ErrAmbiguous. Returns -1 with a nil error when
// no candidate exists. Both the engine and the sync writer resolve matches
// through this one rule.
func FindMatch(pool []record.Record, title, venue string) (int, error) {
	title = record.NormalizeTitle(title)

	var candidates []int
	for i, r := range pool {
		if record.NormalizeTitle(r.Title) == title {
			candidates = append(candidates, i)
		}
	}

	switch len(candidates) {
	case 0:
		return -1, nil
	case 1:
		return candidates[0], nil
	}

	// Same title used for more than one publication: filter by venue.
	venue = record.NormalizeTitle(venue)
	var survivors []int
	for _, i := range candidates {
		if record.NormalizeTitle(pool[i].Venue) == venue {
			survivors = append(survivors, i)
		}
	}
	if len(survivors) == 1 {
		return survivors[0], nil
	}
	return -1, fmt.Errorf("%w: %d candidates share title %q", ErrAmbiguous, len(candidates), title)
}

// Reconcile matches every source record of the requested kinds against the
// target collection and returns the source→target ID mapping plus an audit
// report. Missing, duplicate, and orphaned records are first-class outcomes
// recorded in the report, never errors; the only error is a kind outside
// the canonical vocabulary. Neither input collection is mutated.
func Reconcile(logger zerolog.Logger, source, target []record.Record, kinds []record.Kind) (Mapping, *Report, error) {
	for _, k := range kinds {
		if _, ok := record.ParseKind(string(k)); !ok {
			return nil, nil, fmt.Errorf("unknown publication kind %q (valid: %v)", k, record.Kinds)
		}
	}

	mapping := make(Mapping)
	report := &Report{}

	for _, kind := range kinds {
		summary := KindSummary{Kind: kind}
		logger.Info().Str("kind", string(kind)).Msg("reconciling publication type")

		// Candidate pool of target records not yet consumed by a match.
		var pool []record.Record
		for _, r := range target {
			if r.Kind == kind {
				pool = append(pool, r)
			}
		}

		for _, src := range source {
			if src.Kind != kind {
				continue
			}

			idx, err := FindMatch(pool, src.Title, src.Venue)
			switch {
			case err != nil:
				// Ambiguity is surfaced to a human, never guessed. No
				// candidate is consumed.
				mapping[src.ID] = SentinelDupl
				summary.Duplicate++
				logger.Error().
					Str("source", src.ID).
					Str("target", SentinelDupl).
					Str("title", src.Title).
					Msg("duplicate titles in target, venue could not disambiguate")
			case idx < 0:
				mapping[src.ID] = SentinelMissed
				summary.Missed++
				logger.Error().
					Str("source", src.ID).
					Str("target", SentinelMissed).
					Str("title", src.Title).
					Msg("no matching target record")
			default:
				matched := pool[idx]
				mapping[src.ID] = matched.ID
				summary.Matched++
				// Matches are consumed at most once.
				pool = append(pool[:idx:idx], pool[idx+1:]...)

				if fields := mismatchedFields(src, matched); len(fields) != 0 {
					report.Warnings = append(report.Warnings, FieldWarning{
						SourceID: src.ID,
						TargetID: matched.ID,
						Fields:   fields,
					})
					logger.Warn().
						Str("source", src.ID).
						Str("target", matched.ID).
						Strs("fields", fields).
						Msg("mismatched fields")
				}
				logger.Info().
					Str("source", src.ID).
					Str("target", matched.ID).
					Str("title", src.Title).
					Msg("matched")
			}
		}

		// Whatever remains in the pool exists in the target only.
		for _, orphan := range pool {
			logger.Warn().
				Str("target", orphan.ID).
				Str("title", orphan.Title).
				Msg("target record absent from source")
		}
		summary.Orphaned = pool

		logger.Info().
			Str("kind", string(kind)).
			Int("matched", summary.Matched).
			Int("missed", summary.Missed).
			Int("duplicate", summary.Duplicate).
			Int("orphaned", len(summary.Orphaned)).
			Msg("reconciliation results")
		report.Kinds = append(report.Kinds, summary)
	}

	return mapping, report, nil
}

// mismatchedFields compares the non-identity fields of a matched pair.
func mismatchedFields(src, tgt record.Record) []string {
	var fields []string
	if src.AuthorString() != tgt.AuthorString() {
		fields = append(fields, checkedFields[0])
	}
	if record.NormalizeTitle(src.Venue) != record.NormalizeTitle(tgt.Venue) {
		fields = append(fields, checkedFields[1])
	}
	return fields
}
