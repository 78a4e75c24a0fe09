// Package jobfile loads per-job backup configuration files.
//
// A job file is an INI-like text document:
//
//	[global]
//	BackupTargetDir=/mnt/backups
//	Password=hunter2
//
//	[backupdirs]
//	/data/a
//	/data/b
//
//	[exclude]
//	*.tmp
//	*/cache/*
//
// The job name is the config file's base name without extension. Section and
// key names are case-insensitive; bare line order is preserved because it
// becomes the archiver's include/exclude list order.
package jobfile

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	bakerrors "github.com/thoreinstein/bakjob/internal/errors"
)

// Section and key names recognized in job files.
const (
	sectionGlobal     = "global"
	sectionBackupDirs = "backupdirs"
	sectionExclude    = "exclude"

	keyTargetDir = "backuptargetdir"
	keyPassword  = "password"
)

// Config is the immutable result of loading a job file.
// Build it through Load; the zero value is not meaningful.
type Config struct {
	name      string
	targetDir string
	dirs      []string
	excludes  []string

	password    string
	passwordSet bool
}

// Name returns the job name (config file base name without extension).
func (c *Config) Name() string { return c.name }

// TargetDir returns the directory archives are written to.
func (c *Config) TargetDir() string { return c.targetDir }

// BackupDirs returns the ordered list of paths to include.
func (c *Config) BackupDirs() []string { return c.dirs }

// Excludes returns the ordered list of exclusion patterns.
func (c *Config) Excludes() []string { return c.excludes }

// Password returns the configured credential and whether the key was present
// at all. (value="", set=true) means encryption was explicitly disabled;
// (value="", set=false) means no credential was configured and the resolver
// falls back to the environment or the deterministic default.
func (c *Config) Password() (value string, set bool) {
	return c.password, c.passwordSet
}

// InferName derives a job name from a config file path.
// It extracts the filename and strips its extension:
//
//   - /etc/bakjob/myjob.cfg -> myjob
//   - myjob.backup.cfg -> myjob.backup (only the last extension is stripped)
//   - myjob -> myjob (no extension = unchanged)
func InferName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads and parses the job configuration at path.
// It fails with bakerrors.ErrConfigNotFound when the path does not reference
// a readable file and with bakerrors.ErrConfigParse on malformed content.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, errors.Wrapf(bakerrors.ErrConfigNotFound, "%s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(bakerrors.ErrConfigNotFound, "%s", path)
	}
	defer f.Close()

	doc, err := parse(bufio.NewScanner(f))
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	cfg := &Config{
		name:     InferName(path),
		dirs:     doc.bareLines(sectionBackupDirs),
		excludes: doc.bareLines(sectionExclude),
	}

	cfg.targetDir, _ = doc.lookup(sectionGlobal, keyTargetDir)
	if cfg.targetDir == "" {
		// Unset sections/keys are tolerated; archives land next to the job file.
		cfg.targetDir = filepath.Dir(path)
	}

	cfg.password, cfg.passwordSet = doc.lookup(sectionGlobal, keyPassword)

	return cfg, nil
}
