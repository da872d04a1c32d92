package main

// Exit codes.
const (
	ExitSuccess        = 0 // Success
	ExitError          = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError    = 2 // Configuration error (missing config, missing cache)
	ExitDataError      = 3 // Data error (malformed input, label validation failure)
	ExitDisambiguation = 4 // Sync could not disambiguate duplicate titles
)
