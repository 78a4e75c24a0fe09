package sevenzip

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestExecArchiver_Success(t *testing.T) {
	var out bytes.Buffer
	a := &ExecArchiver{Stdout: &out}

	code, err := a.Run(context.Background(), "sh", []string{"-c", "echo archived"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(out.String(), "archived") {
		t.Errorf("stdout = %q, want process output", out.String())
	}
}

func TestExecArchiver_ExitCode(t *testing.T) {
	a := &ExecArchiver{}

	code, err := a.Run(context.Background(), "sh", []string{"-c", "exit 3"})
	if err != nil {
		t.Fatalf("Run() error = %v; non-zero exit is not a Run error", err)
	}
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
}

func TestExecArchiver_StartFailure(t *testing.T) {
	a := &ExecArchiver{}

	code, err := a.Run(context.Background(), "/nonexistent/archiver-binary", nil)
	if err == nil {
		t.Fatal("Run() should fail when the binary cannot be started")
	}
	if code != -1 {
		t.Errorf("exit code = %d, want -1", code)
	}
}
