package plan

import (
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	bakerrors "github.com/thoreinstein/bakjob/internal/errors"
	"github.com/thoreinstein/bakjob/internal/pointer"
)

// 7-Zip update directives per strategy.
//
// The letters name file states (p/q: in archive but unmatched/missing on
// disk, r: new, x/y: older/newer on disk, z: identical, w: undetermined) and
// the digits the action (0 ignore, 1 copy from archive, 2 compress from
// disk, 3 create anti-item).
const (
	// updateInPlace replaces changed entries, appends new ones and copies
	// unchanged entries forward untouched.
	updateInPlace = "-up1q1r2x1y2z1w2"

	// updateDiff is the canonical differential recipe: unmatched base entries
	// are ignored, entries deleted on disk become anti-items, changed and new
	// files are compressed, byte-identical files are skipped. The produced
	// archive is named after the '!'.
	updateDiffPrefix = "-up0q3r2x2y2z0w2!"

	// keepBase prevents the positional (base) archive from being modified
	// during a differential run.
	keepBase = "-u-"
)

// Request carries everything mode resolution depends on.
// BasePath/BaseState come from pointer.Store.Resolve; Timestamp is captured
// once at the start of the run.
type Request struct {
	JobName     string
	TargetDir   string
	Mode        Mode
	Compression Compression
	Timestamp   time.Time

	BasePath  string
	BaseState pointer.State
}

// Plan is the resolved execution plan: one concrete mode, the archive the run
// produces, and the archiver directives that carry the strategy. It is built
// once per run, consumed once, then discarded.
type Plan struct {
	// Mode is the concrete resolved mode, never ModeAuto.
	Mode Mode

	// SubCommand is the archiver sub-command: "a" (create) or "u" (update).
	SubCommand string

	// ArchivePath is the archive this run produces or modifies. Only a
	// ModeFullNew run's ArchivePath may later become the base pointer.
	ArchivePath string

	// BaseArchive is the prior full archive a differential run reads from.
	// It is the positional archive argument for ModeDiff and empty for
	// ModeFullNew.
	BaseArchive string

	// UpdateDirectives are the strategy-specific -u switches, in order.
	UpdateDirectives []string

	// Compression selects the -mx level.
	Compression Compression
}

// PositionalArchive returns the archive path passed positionally to the
// archiver. For differential runs that is the base archive (the produced diff
// file travels inside the update directive); for the full modes it is the
// produced archive itself.
func (p *Plan) PositionalArchive() string {
	if p.Mode == ModeDiff {
		return p.BaseArchive
	}
	return p.ArchivePath
}

// Resolve maps a requested mode and the job's pointer state to a concrete
// execution plan.
//
// The transition function, with V = "pointer valid":
//
//	full-new    -> full-new, unconditionally
//	full-update -> full-update if V, else ErrMissingBaseArchive
//	diff        -> diff if V, else ErrMissingBaseArchive
//	auto        -> diff if V, else full-new (never full-update)
//
// Exactly one concrete mode results, or a documented error; there is no
// silent fallback outside the auto path.
func Resolve(req Request) (*Plan, error) {
	switch req.Mode {
	case ModeFullNew:
		return newFull(req), nil

	case ModeFullUpdate:
		if req.BaseState != pointer.StateValid {
			return nil, missingBase(req, "in-place update")
		}
		return &Plan{
			Mode:             ModeFullUpdate,
			SubCommand:       "u",
			ArchivePath:      req.BasePath,
			BaseArchive:      req.BasePath,
			UpdateDirectives: []string{updateInPlace},
			Compression:      req.Compression,
		}, nil

	case ModeDiff:
		if req.BaseState != pointer.StateValid {
			return nil, missingBase(req, "differential backup")
		}
		return diff(req), nil

	case ModeAuto:
		if req.BaseState == pointer.StateValid {
			return diff(req), nil
		}
		return newFull(req), nil

	default:
		return nil, errors.Newf("unknown mode %d", req.Mode)
	}
}

func newFull(req Request) *Plan {
	return &Plan{
		Mode:        ModeFullNew,
		SubCommand:  "a",
		ArchivePath: filepath.Join(req.TargetDir, Name(req.JobName, req.Timestamp, SuffixFull)),
		Compression: req.Compression,
	}
}

func diff(req Request) *Plan {
	diffPath := filepath.Join(req.TargetDir, Name(req.JobName, req.Timestamp, SuffixDiff))
	return &Plan{
		Mode:             ModeDiff,
		SubCommand:       "u",
		ArchivePath:      diffPath,
		BaseArchive:      req.BasePath,
		UpdateDirectives: []string{keepBase, updateDiffPrefix + diffPath},
		Compression:      req.Compression,
	}
}

// missingBase builds an ErrMissingBaseArchive that names the pointer state,
// so "never ran a full backup" reads differently from "the recorded full
// archive has been deleted".
func missingBase(req Request, what string) error {
	switch req.BaseState {
	case pointer.StateStale:
		return errors.Wrapf(bakerrors.ErrMissingBaseArchive,
			"%s for job %q: pointer names %s, which no longer exists",
			what, req.JobName, req.BasePath)
	default:
		return errors.Wrapf(bakerrors.ErrMissingBaseArchive,
			"%s for job %q: no full archive has been recorded",
			what, req.JobName)
	}
}
