// Package roster manages the set of student co-author names that receive
// special formatting (underlining in citations, asterisks in CCV exports).
//
// The roster is loaded from an external file and every caller works on its
// own copy; nothing in this package holds mutable package-level state, so
// one invocation can never leak names into another.
package roster

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Roster is an immutable-by-convention set of student display names.
type Roster map[string]bool

// Load reads a newline-delimited roster file.
func Load(path string) (Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster file: %w", err)
	}
	defer f.Close()

	r := make(Roster)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			r[name] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading roster file: %w", err)
	}
	return r, nil
}

// New builds a roster from a name list.
func New(names ...string) Roster {
	r := make(Roster, len(names))
	for _, n := range names {
		r[n] = true
	}
	return r
}

// Contains reports whether a display name belongs to the roster.
func (r Roster) Contains(name string) bool {
	return r[strings.TrimSpace(name)]
}

// With returns a copy of the roster extended with additional names. The
// receiver is left untouched, so test-only additions never leak into other
// invocations.
func (r Roster) With(names ...string) Roster {
	out := make(Roster, len(r)+len(names))
	for n := range r {
		out[n] = true
	}
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out[n] = true
		}
	}
	return out
}

// Names returns the roster as a slice, for display.
func (r Roster) Names() []string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}
	return names
}
