package plan

import (
	"fmt"
	"time"
)

// Archive naming constants.
const (
	// TimestampFormat is the capture timestamp embedded in archive names.
	// Second resolution: two runs of the same job collide only when they
	// start within the same second.
	TimestampFormat = "20060102_150405"

	// SuffixFull marks a self-contained full archive.
	SuffixFull = "full"

	// SuffixDiff marks a differential archive.
	SuffixDiff = "diff"

	// Ext is the archive file extension.
	Ext = ".7z"
)

// Name derives a deterministic archive filename from the job name, capture
// timestamp and strategy suffix: "<job>-<timestamp>.<suffix>.7z".
//
// It is a pure function: the timestamp is captured once per run by the caller
// so every name generated within a run carries the same instant.
func Name(jobName string, ts time.Time, suffix string) string {
	return fmt.Sprintf("%s-%s.%s%s", jobName, ts.Format(TimestampFormat), suffix, Ext)
}
