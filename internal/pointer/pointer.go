// Package pointer persists the per-job base-archive pointer file.
//
// The pointer file is the only state bakjob keeps between runs: a single line
// naming the most recent full archive for a job. Differential and in-place
// update runs resolve against it; a fresh full run rewrites it.
package pointer

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/bakjob/pkg/fileutil"
)

// Suffix is appended to the job name to form the pointer file name.
const Suffix = ".bakbase"

// State classifies a job's pointer.
//
// Absent and Stale are deliberately distinct: Absent means no full archive
// was ever recorded for the job, Stale means one was recorded but the archive
// file has since disappeared (or the pointer file is empty). Both block
// differential and update modes, but operators need to tell them apart.
type State int

const (
	// StateAbsent means no pointer file exists for the job.
	StateAbsent State = iota

	// StateStale means the pointer file exists but is empty or names an
	// archive that no longer exists.
	StateStale

	// StateValid means the pointer names an existing archive file.
	StateValid
)

// String returns the state name for logs and error messages.
func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateStale:
		return "stale"
	case StateValid:
		return "valid"
	default:
		return "unknown"
	}
}

// Store reads and writes pointer files in a fixed directory,
// conventionally the job's backup target directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the pointer file path for a job.
func (s *Store) Path(jobName string) string {
	return filepath.Join(s.dir, jobName+Suffix)
}

// Read returns the archive path recorded for the job, or ok=false when no
// pointer file exists. It performs no existence check on the referenced
// archive; staleness is the caller's concern (see Resolve).
func (s *Store) Read(jobName string) (archivePath string, ok bool, err error) {
	path := s.Path(jobName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "stat pointer file %s", path)
	}

	line, err := fileutil.FirstLine(path)
	if err != nil {
		return "", false, errors.Wrapf(err, "reading pointer file %s", path)
	}
	return line, true, nil
}

// Resolve reads the pointer and classifies it.
// archivePath is non-empty only for StateStale (the recorded but missing
// archive, useful in error messages) and StateValid.
func (s *Store) Resolve(jobName string) (archivePath string, state State, err error) {
	archivePath, ok, err := s.Read(jobName)
	if err != nil {
		return "", StateAbsent, err
	}
	if !ok {
		return "", StateAbsent, nil
	}
	if archivePath == "" {
		return "", StateStale, nil
	}
	if _, err := os.Stat(archivePath); err != nil {
		if os.IsNotExist(err) {
			return archivePath, StateStale, nil
		}
		return archivePath, StateStale, errors.Wrapf(err, "stat base archive %s", archivePath)
	}
	return archivePath, StateValid, nil
}

// Write records archivePath as the job's base archive, overwriting any
// previous pointer. The write is atomic so a crash never leaves a truncated
// pointer behind.
func (s *Store) Write(jobName, archivePath string) error {
	path := s.Path(jobName)
	if err := fileutil.AtomicWriteFile(path, []byte(archivePath+"\n"), 0o644); err != nil {
		return errors.Wrapf(err, "writing pointer file %s", path)
	}
	return nil
}
