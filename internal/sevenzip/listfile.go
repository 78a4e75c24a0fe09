package sevenzip

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// ListFiles are the run-scoped include/exclude list files handed to the
// archiver via -i@ and -xr@. They live in a private temp directory and are
// removed once the invocation has finished, success or not.
type ListFiles struct {
	// Include is the path of the include list (always present).
	Include string

	// Exclude is the path of the exclude list, or "" when the job has no
	// exclusion patterns.
	Exclude string

	dir string
}

// WriteListFiles materializes the job's include/exclude lists as temp files,
// one entry per line, preserving configuration order.
func WriteListFiles(includes, excludes []string) (*ListFiles, error) {
	if len(includes) == 0 {
		return nil, errors.New("no backup directories configured")
	}

	dir, err := os.MkdirTemp("", "bakjob-lists-*")
	if err != nil {
		return nil, errors.Wrap(err, "creating list file directory")
	}

	lf := &ListFiles{dir: dir}

	lf.Include = filepath.Join(dir, "include.lst")
	if err := writeLines(lf.Include, includes); err != nil {
		lf.Remove()
		return nil, errors.Wrap(err, "writing include list")
	}

	if len(excludes) > 0 {
		lf.Exclude = filepath.Join(dir, "exclude.lst")
		if err := writeLines(lf.Exclude, excludes); err != nil {
			lf.Remove()
			return nil, errors.Wrap(err, "writing exclude list")
		}
	}

	return lf, nil
}

// Remove deletes the list files. Safe to call multiple times.
func (l *ListFiles) Remove() {
	if l.dir != "" {
		os.RemoveAll(l.dir)
		l.dir = ""
	}
}

func writeLines(path string, lines []string) error {
	data := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(path, []byte(data), 0o600)
}
