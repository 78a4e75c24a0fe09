// Package credential resolves the archive encryption key for a run.
//
// Resolution order:
//
//  1. An explicitly configured empty key disables encryption outright.
//  2. An explicitly configured non-empty key is the candidate.
//  3. Otherwise the override environment variable is consulted; if unset, a
//     deterministic default of "<hostname>-<archive name>" is built. The
//     default exists to vary keys across jobs and machines, not as a
//     security boundary.
//  4. Whatever candidate results is probed: if it names an existing readable
//     file, the file's first line becomes the key; otherwise the candidate
//     string itself does.
//
// Environment and hostname lookups are injectable so tests run against
// deterministic values.
package credential

import (
	"os"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/bakjob/pkg/fileutil"
)

// Env looks up an environment variable.
type Env func(key string) (string, bool)

// Hostname reports the host identity used in the default key.
type Hostname func() (string, error)

// Resolver derives the encryption credential for a run.
type Resolver struct {
	keyEnv   string
	env      Env
	hostname Hostname
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEnv substitutes the environment lookup.
func WithEnv(env Env) Option {
	return func(r *Resolver) {
		r.env = env
	}
}

// WithHostname substitutes the hostname lookup.
func WithHostname(h Hostname) Option {
	return func(r *Resolver) {
		r.hostname = h
	}
}

// NewResolver creates a Resolver consulting the named environment variable,
// defaulting to the real process environment and host name.
func NewResolver(keyEnv string, opts ...Option) *Resolver {
	r := &Resolver{
		keyEnv:   keyEnv,
		env:      os.LookupEnv,
		hostname: os.Hostname,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve derives the credential for a run.
//
// explicit/explicitSet carry the job configuration's tri-state password
// setting (CLI overrides are folded in by the caller). archiveName is the
// base name of the archive the run produces, used in the deterministic
// default. The returned key is empty only when encryption was explicitly
// disabled.
func (r *Resolver) Resolve(explicit string, explicitSet bool, archiveName string) (string, error) {
	if explicitSet && explicit == "" {
		// Explicitly disabled, regardless of environment state.
		return "", nil
	}

	candidate := explicit
	if !explicitSet {
		if v, ok := r.env(r.keyEnv); ok && v != "" {
			candidate = v
		} else {
			host, err := r.hostname()
			if err != nil {
				return "", errors.Wrap(err, "deriving default key from host name")
			}
			candidate = host + "-" + archiveName
		}
	}

	// A candidate naming a readable file is a key file; its first line wins.
	if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
		line, err := fileutil.FirstLine(candidate)
		if err != nil {
			return "", errors.Wrapf(err, "reading key file %s", candidate)
		}
		return line, nil
	}

	return candidate, nil
}
