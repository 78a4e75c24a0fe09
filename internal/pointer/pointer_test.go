package pointer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	archive := filepath.Join(dir, "myjob-20240101_000000.full.7z")
	if err := s.Write("myjob", archive); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, ok, err := s.Read("myjob")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !ok {
		t.Fatal("Read() ok = false after Write")
	}
	if got != archive {
		t.Errorf("Read() = %q, want %q", got, archive)
	}
}

func TestStore_WriteOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	if err := s.Write("job", "/old.7z"); err != nil {
		t.Fatal(err)
	}
	if err := s.Write("job", "/new.7z"); err != nil {
		t.Fatal(err)
	}

	got, _, err := s.Read("job")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/new.7z" {
		t.Errorf("Read() = %q, want %q (no history, last write wins)", got, "/new.7z")
	}

	// Single line, no append.
	data, err := os.ReadFile(s.Path("job"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "\n") != 1 {
		t.Errorf("pointer file should hold exactly one line, got %q", data)
	}
}

func TestStore_ReadAbsent(t *testing.T) {
	s := NewStore(t.TempDir())

	_, ok, err := s.Read("never-ran")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if ok {
		t.Error("Read() ok = true for a job with no pointer file")
	}
}

func TestStore_Resolve(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	existing := filepath.Join(dir, "job-20240101_000000.full.7z")
	if err := os.WriteFile(existing, []byte("archive"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		setup     func(t *testing.T, job string)
		wantState State
		wantPath  string
	}{
		{
			name:      "no pointer file",
			setup:     func(t *testing.T, job string) {},
			wantState: StateAbsent,
		},
		{
			name: "empty pointer file",
			setup: func(t *testing.T, job string) {
				if err := os.WriteFile(s.Path(job), []byte("\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
			wantState: StateStale,
		},
		{
			name: "pointer names missing archive",
			setup: func(t *testing.T, job string) {
				if err := s.Write(job, filepath.Join(dir, "deleted.full.7z")); err != nil {
					t.Fatal(err)
				}
			},
			wantState: StateStale,
			wantPath:  filepath.Join(dir, "deleted.full.7z"),
		},
		{
			name: "pointer names existing archive",
			setup: func(t *testing.T, job string) {
				if err := s.Write(job, existing); err != nil {
					t.Fatal(err)
				}
			},
			wantState: StateValid,
			wantPath:  existing,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := "job" + strings.Repeat("x", i) // unique per case
			tt.setup(t, job)

			path, state, err := s.Resolve(job)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if state != tt.wantState {
				t.Errorf("state = %v, want %v", state, tt.wantState)
			}
			if path != tt.wantPath {
				t.Errorf("path = %q, want %q", path, tt.wantPath)
			}
		})
	}
}

func TestStore_ReadTrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	if err := os.WriteFile(s.Path("job"), []byte("  /backups/a.7z  \nsecond line\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.Read("job")
	if err != nil || !ok {
		t.Fatalf("Read() = (%v, %v)", ok, err)
	}
	if got != "/backups/a.7z" {
		t.Errorf("Read() = %q, want first line trimmed", got)
	}
}

func TestStore_Path(t *testing.T) {
	s := NewStore("/backups")
	if got := s.Path("myjob"); got != "/backups/myjob.bakbase" {
		t.Errorf("Path() = %q, want %q", got, "/backups/myjob.bakbase")
	}
}
