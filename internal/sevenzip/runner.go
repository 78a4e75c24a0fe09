package sevenzip

import (
	"context"
	"io"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// Archiver runs a built archiver invocation and reports its exit status.
// The interface exists so the job runner can be tested against a fake
// without a 7-Zip binary on the machine.
type Archiver interface {
	// Run executes the archiver and blocks until it exits. It returns the
	// process exit code; err is non-nil only when the process could not be
	// started or was interrupted.
	Run(ctx context.Context, binary string, args []string) (int, error)
}

// ExecArchiver runs the real archiver binary via os/exec.
type ExecArchiver struct {
	// Stdout and Stderr receive the archiver's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the archiver, streaming its output to the configured writers.
// No timeout is imposed; the run blocks until the process exits or ctx is
// canceled.
func (a *ExecArchiver) Run(ctx context.Context, binary string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = a.Stdout
	cmd.Stderr = a.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, errors.Wrapf(err, "running %s", binary)
}
