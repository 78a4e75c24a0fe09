// Package errors provides error handling conventions for the bakjob CLI.
//
// This package defines sentinel errors for the failure taxonomy of a backup
// run, an ExitError type for CLI exit code handling, and exit code constants
// following standard Unix conventions.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [errors.Is]:
//
//	if errors.Is(err, bakerrors.ErrMissingBaseArchive) {
//	    // the requested mode needs a prior full archive
//	}
//
// All sentinels are fatal to a run; none are retried automatically.
// ErrConfigNotFound, ErrConfigParse and ErrMissingBaseArchive are detected
// before any external process is spawned. ErrArchiverFailed carries the
// archiver's exit status via wrapping.
//
// # Exit Codes
//
//   - ExitSuccess (0): run completed successfully
//   - ExitUser (1): user-related error (flags, job config, missing base archive)
//   - ExitSystem (2): system-related error (I/O, permissions, archiver failure)
package errors
