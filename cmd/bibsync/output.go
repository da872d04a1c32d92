package main

import (
	"fmt"
	"os"

	"github.com/neuropoly/bibsync/internal/record"
)

// ListTitleMaxLen truncates titles in list output.
const ListTitleMaxLen = 60

// exitWithError writes an error message to stderr and exits with code.
func exitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(code)
}

// writeOutput writes s to path, or to stdout when path is empty.
func writeOutput(path, s string) error {
	if path == "" {
		fmt.Print(s)
		return nil
	}
	if err := os.WriteFile(path, []byte(s), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// printRecordLine prints one record in list format.
func printRecordLine(r record.Record) {
	fmt.Printf("  %-5s %4d  %s\n", r.ID, r.Year, truncateString(r.Title, ListTitleMaxLen))
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
