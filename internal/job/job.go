// Package job drives a single backup run end to end: load the job
// configuration, classify the base pointer, resolve the execution mode, build
// the archiver invocation, run it, and record the new base archive when a
// fresh full backup succeeds.
package job

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/bakjob/internal/config"
	"github.com/thoreinstein/bakjob/internal/credential"
	bakerrors "github.com/thoreinstein/bakjob/internal/errors"
	"github.com/thoreinstein/bakjob/internal/jobfile"
	"github.com/thoreinstein/bakjob/internal/logging"
	"github.com/thoreinstein/bakjob/internal/plan"
	"github.com/thoreinstein/bakjob/internal/pointer"
	"github.com/thoreinstein/bakjob/internal/sevenzip"
)

// Runner executes backup runs. A Runner is cheap; create one per command.
type Runner struct {
	settings *config.Settings
	archiver sevenzip.Archiver
	creds    *credential.Resolver
	now      func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithArchiver substitutes the archiver implementation.
func WithArchiver(a sevenzip.Archiver) Option {
	return func(r *Runner) {
		r.archiver = a
	}
}

// WithCredentialResolver substitutes the credential resolver.
func WithCredentialResolver(c *credential.Resolver) Option {
	return func(r *Runner) {
		r.creds = c
	}
}

// WithClock substitutes the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a Runner with the given tool settings.
func NewRunner(settings *config.Settings, opts ...Option) *Runner {
	r := &Runner{
		settings: settings,
		archiver: &sevenzip.ExecArchiver{Stdout: os.Stdout, Stderr: os.Stderr},
		creds:    credential.NewResolver(settings.KeyEnv),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Options are the per-run CLI overrides.
type Options struct {
	// ConfigPath is the job configuration file (mandatory).
	ConfigPath string

	// Mode is the requested mode; ModeAuto lets the pointer state decide.
	Mode plan.Mode

	// Compression selects the archiver compression level.
	Compression plan.Compression

	// Password, when PasswordSet, overrides the job file's credential
	// setting. NoEncryption wins over both.
	Password     string
	PasswordSet  bool
	NoEncryption bool

	// Archiver overrides the configured archiver binary when non-empty.
	Archiver string
}

// Result summarizes a completed (or dry-run resolved) backup run.
type Result struct {
	// Job is the job name.
	Job string

	// Plan is the resolved execution plan.
	Plan *plan.Plan

	// Argv is the archiver argument list with the credential masked.
	Argv []string

	// Binary is the archiver binary.
	Binary string

	// Duration is the wall time of the archiver invocation (zero for dry runs).
	Duration time.Duration

	// PointerUpdated reports whether the base pointer was rewritten.
	PointerUpdated bool
}

// Plan resolves the run without spawning the archiver or touching any state.
// The returned argv uses placeholder list-file names since the run-scoped
// temp files are not created.
func (r *Runner) Plan(ctx context.Context, opts Options) (*Result, error) {
	cfg, pl, key, err := r.resolve(ctx, opts)
	if err != nil {
		return nil, err
	}
	args := sevenzip.BuildArgs(pl, "include.lst", excludePlaceholder(cfg), r.settings.WorkDir, key)
	return &Result{
		Job:    cfg.Name(),
		Plan:   pl,
		Argv:   sevenzip.MaskArgs(args),
		Binary: r.binary(opts),
	}, nil
}

// Run executes one backup run.
//
// The sequence is strictly sequential: configuration load, pointer read, mode
// resolution, list-file creation, one blocking archiver invocation, then a
// conditional pointer write. Configuration and pointer failures surface
// before any process is spawned; the pointer is written only after a fresh
// full archive run succeeds and the archive file is confirmed to exist.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.FromContext(ctx)

	cfg, pl, key, err := r.resolve(ctx, opts)
	if err != nil {
		return nil, err
	}

	lf, err := sevenzip.WriteListFiles(cfg.BackupDirs(), cfg.Excludes())
	if err != nil {
		return nil, err
	}
	// Run-scoped: the lists are removed whether the archiver succeeds or not.
	defer lf.Remove()

	args := sevenzip.BuildArgs(pl, lf.Include, lf.Exclude, r.settings.WorkDir, key)
	binary := r.binary(opts)

	result := &Result{
		Job:    cfg.Name(),
		Plan:   pl,
		Argv:   sevenzip.MaskArgs(args),
		Binary: binary,
	}

	log.Info("starting backup run",
		"job", cfg.Name(),
		"mode", pl.Mode.String(),
		"archive", pl.ArchivePath)
	log.Debug("archiver invocation", "binary", binary, "args", result.Argv)

	start := r.now()
	code, err := r.archiver.Run(ctx, binary, args)
	result.Duration = r.now().Sub(start)
	if err != nil {
		return result, err
	}
	if code != 0 {
		// Base pointer stays untouched so a retry can re-resolve auto mode.
		return result, errors.Wrapf(bakerrors.ErrArchiverFailed, "exit status %d", code)
	}

	if pl.Mode == plan.ModeFullNew {
		if _, err := os.Stat(pl.ArchivePath); err != nil {
			return result, errors.Wrapf(err,
				"archiver reported success but archive %s is missing", pl.ArchivePath)
		}
		store := pointer.NewStore(cfg.TargetDir())
		if err := store.Write(cfg.Name(), pl.ArchivePath); err != nil {
			return result, err
		}
		result.PointerUpdated = true
		log.Debug("base pointer updated", "pointer", store.Path(cfg.Name()))
	}

	log.Info("backup run finished",
		"job", cfg.Name(),
		"mode", pl.Mode.String(),
		"archive", pl.ArchivePath,
		"duration", result.Duration.Round(time.Millisecond))

	return result, nil
}

// resolve performs the spawn-free part of a run: config load, pointer
// classification, mode resolution and credential derivation.
func (r *Runner) resolve(ctx context.Context, opts Options) (*jobfile.Config, *plan.Plan, string, error) {
	log := logging.FromContext(ctx)

	cfg, err := jobfile.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, "", err
	}

	store := pointer.NewStore(cfg.TargetDir())
	basePath, baseState, err := store.Resolve(cfg.Name())
	if err != nil {
		return nil, nil, "", err
	}
	log.Debug("base pointer classified",
		"job", cfg.Name(),
		"state", baseState.String(),
		"base", basePath)

	pl, err := plan.Resolve(plan.Request{
		JobName:     cfg.Name(),
		TargetDir:   cfg.TargetDir(),
		Mode:        opts.Mode,
		Compression: opts.Compression,
		Timestamp:   r.now(),
		BasePath:    basePath,
		BaseState:   baseState,
	})
	if err != nil {
		return nil, nil, "", err
	}

	key, err := r.resolveKey(cfg, pl, opts)
	if err != nil {
		return nil, nil, "", err
	}

	return cfg, pl, key, nil
}

// resolveKey folds the CLI credential overrides into the job file's
// tri-state setting and hands the result to the resolver.
func (r *Runner) resolveKey(cfg *jobfile.Config, pl *plan.Plan, opts Options) (string, error) {
	explicit, set := cfg.Password()
	if opts.PasswordSet {
		explicit, set = opts.Password, true
	}
	if opts.NoEncryption {
		explicit, set = "", true
	}
	return r.creds.Resolve(explicit, set, filepath.Base(pl.ArchivePath))
}

func (r *Runner) binary(opts Options) string {
	if opts.Archiver != "" {
		return opts.Archiver
	}
	if r.settings.Archiver != "" {
		return r.settings.Archiver
	}
	return config.DefaultArchiver
}

func excludePlaceholder(cfg *jobfile.Config) string {
	if len(cfg.Excludes()) == 0 {
		return ""
	}
	return "exclude.lst"
}
