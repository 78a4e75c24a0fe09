package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitError_Unwrap(t *testing.T) {
	err := NewUserError(ErrMissingBaseArchive, "run full-new first")

	if !errors.Is(err, ErrMissingBaseArchive) {
		t.Error("ExitError should unwrap to its underlying sentinel")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatal("errors.As failed for *ExitError")
	}
	if exitErr.Code != ExitUser {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitUser)
	}
	if exitErr.Suggestion != "run full-new first" {
		t.Errorf("Suggestion = %q", exitErr.Suggestion)
	}
}

func TestExitError_NilErr(t *testing.T) {
	err := NewExitError(nil, ExitSystem)
	if err.Error() != "exit code 2" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config not found", fmt.Errorf("loading: %w", ErrConfigNotFound), ExitUser},
		{"parse error", ErrConfigParse, ExitUser},
		{"missing base", ErrMissingBaseArchive, ExitUser},
		{"archiver failure", ErrArchiverFailed, ExitSystem},
		{"unknown", errors.New("disk on fire"), ExitSystem},
		{"explicit exit error wins", NewExitError(ErrArchiverFailed, ExitUser), ExitUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeFor(tt.err); got != tt.want {
				t.Errorf("CodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}
