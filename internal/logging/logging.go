// Package logging configures structured logging with zerolog. Console
// output goes to stderr so command output on stdout stays pipeable.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the logger for a CLI invocation. Level precedence:
// --verbose/--quiet flags, then LOG_LEVEL, then info.
func Setup(verbose, quiet bool) zerolog.Logger {
	level := levelFromEnv()
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.ErrorLevel
	}

	var writer io.Writer = os.Stderr
	if isatty() && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func levelFromEnv() zerolog.Level {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// isatty checks if stderr is a terminal.
func isatty() bool {
	if fileInfo, _ := os.Stderr.Stat(); (fileInfo.Mode() & os.ModeCharDevice) != 0 {
		return true
	}
	return false
}
