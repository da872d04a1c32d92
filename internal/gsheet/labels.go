package gsheet

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/neuropoly/bibsync/internal/record"
)

// LabelViolation names a record carrying labels outside the authorized set.
type LabelViolation struct {
	RecordID string
	Invalid  []string
}

// ValidationError aggregates every label violation found in one pass, so
// the operator sees the complete picture in a single run.
type ValidationError struct {
	Violations []LabelViolation
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid labels found on %d record(s):", len(e.Violations))
	for _, v := range e.Violations {
		fmt.Fprintf(&b, "\n  %s: %s", v.RecordID, strings.Join(v.Invalid, ", "))
	}
	return b.String()
}

// ReadAuthorizedLabels loads the newline-delimited list of category labels.
func ReadAuthorizedLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading labels file: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			labels = append(labels, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading labels file: %w", err)
	}
	return labels, nil
}

// CheckLabels validates every record's Labels field against the authorized
// set, collecting all violations before failing.
func CheckLabels(records []record.Record, authorized []string) error {
	allowed := make(map[string]bool, len(authorized))
	for _, l := range authorized {
		allowed[l] = true
	}

	var violations []LabelViolation
	for _, r := range records {
		var invalid []string
		for _, l := range record.SplitLabels(r.Labels) {
			if !allowed[l] {
				invalid = append(invalid, l)
			}
		}
		if len(invalid) > 0 {
			violations = append(violations, LabelViolation{RecordID: r.ID, Invalid: invalid})
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
