package plan

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Mode is a backup strategy. ModeAuto is a valid requested mode but never a
// resolved one; resolution always lands on one of the three concrete modes.
type Mode int

const (
	// ModeAuto defers the choice to the resolver: differential when a valid
	// base archive exists, otherwise a fresh full archive.
	ModeAuto Mode = iota

	// ModeFullNew creates a fresh, self-contained full archive.
	ModeFullNew

	// ModeFullUpdate updates the existing full archive in place.
	ModeFullUpdate

	// ModeDiff creates a new differential archive against the base archive.
	ModeDiff
)

// String returns the CLI spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeFullNew:
		return "full-new"
	case ModeFullUpdate:
		return "full-update"
	case ModeDiff:
		return "diff"
	default:
		return "unknown"
	}
}

// Concrete reports whether the mode is a terminal execution mode.
func (m Mode) Concrete() bool {
	return m == ModeFullNew || m == ModeFullUpdate || m == ModeDiff
}

// ParseMode parses a CLI mode selector. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ModeAuto, nil
	case "full-new", "fullnew":
		return ModeFullNew, nil
	case "full-update", "fullupdate":
		return ModeFullUpdate, nil
	case "diff":
		return ModeDiff, nil
	default:
		return ModeAuto, errors.Newf("invalid mode %q (valid: auto, full-new, full-update, diff)", s)
	}
}

// Compression selects the archiver's compression level.
type Compression int

const (
	// CompressionFast trades ratio for speed (7z -mx=1).
	CompressionFast Compression = iota

	// CompressionNone stores files without compression (7z -mx=0).
	CompressionNone
)

// String returns the CLI spelling of the compression selector.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionFast:
		return "fast"
	default:
		return "unknown"
	}
}

// Level returns the 7-Zip -mx level for the selector.
func (c Compression) Level() int {
	if c == CompressionNone {
		return 0
	}
	return 1
}

// ParseCompression parses a CLI compression selector. Matching is case-insensitive.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "fast":
		return CompressionFast, nil
	case "none":
		return CompressionNone, nil
	default:
		return CompressionFast, errors.Newf("invalid compression %q (valid: none, fast)", s)
	}
}
