package plan

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	bakerrors "github.com/thoreinstein/bakjob/internal/errors"
	"github.com/thoreinstein/bakjob/internal/pointer"
)

var testStamp = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func request(mode Mode, state pointer.State) Request {
	req := Request{
		JobName:     "myjob",
		TargetDir:   "/backups",
		Mode:        mode,
		Compression: CompressionFast,
		Timestamp:   testStamp,
		BaseState:   state,
	}
	if state != pointer.StateAbsent {
		req.BasePath = "/backups/myjob-20230601_120000.full.7z"
	}
	return req
}

func TestResolve_TransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		state   pointer.State
		want    Mode
		wantErr bool
	}{
		{"full-new ignores absent pointer", ModeFullNew, pointer.StateAbsent, ModeFullNew, false},
		{"full-new ignores stale pointer", ModeFullNew, pointer.StateStale, ModeFullNew, false},
		{"full-new ignores valid pointer", ModeFullNew, pointer.StateValid, ModeFullNew, false},
		{"full-update requires valid pointer", ModeFullUpdate, pointer.StateValid, ModeFullUpdate, false},
		{"full-update fails on absent pointer", ModeFullUpdate, pointer.StateAbsent, 0, true},
		{"full-update fails on stale pointer", ModeFullUpdate, pointer.StateStale, 0, true},
		{"diff requires valid pointer", ModeDiff, pointer.StateValid, ModeDiff, false},
		{"diff fails on absent pointer", ModeDiff, pointer.StateAbsent, 0, true},
		{"diff fails on stale pointer", ModeDiff, pointer.StateStale, 0, true},
		{"auto picks diff with valid pointer", ModeAuto, pointer.StateValid, ModeDiff, false},
		{"auto falls back to full-new on absent pointer", ModeAuto, pointer.StateAbsent, ModeFullNew, false},
		{"auto falls back to full-new on stale pointer", ModeAuto, pointer.StateStale, ModeFullNew, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Resolve(request(tt.mode, tt.state))

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Resolve() = %+v, want error", p)
				}
				if !errors.Is(err, bakerrors.ErrMissingBaseArchive) {
					t.Errorf("Resolve() error = %v, want ErrMissingBaseArchive", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if p.Mode != tt.want {
				t.Errorf("Mode = %v, want %v", p.Mode, tt.want)
			}
			if !p.Mode.Concrete() {
				t.Errorf("resolved mode %v is not concrete", p.Mode)
			}
		})
	}
}

func TestResolve_AutoNeverUpdatesInPlace(t *testing.T) {
	for _, state := range []pointer.State{pointer.StateAbsent, pointer.StateStale, pointer.StateValid} {
		p, err := Resolve(request(ModeAuto, state))
		if err != nil {
			t.Fatalf("Resolve(auto, %v) error = %v", state, err)
		}
		if p.Mode == ModeFullUpdate {
			t.Errorf("Resolve(auto, %v) resolved to full-update", state)
		}
	}
}

func TestResolve_FullNewPlan(t *testing.T) {
	p, err := Resolve(request(ModeFullNew, pointer.StateAbsent))
	if err != nil {
		t.Fatal(err)
	}

	if p.SubCommand != "a" {
		t.Errorf("SubCommand = %q, want %q", p.SubCommand, "a")
	}
	want := filepath.Join("/backups", "myjob-20240101_000000.full.7z")
	if p.ArchivePath != want {
		t.Errorf("ArchivePath = %q, want %q", p.ArchivePath, want)
	}
	if p.BaseArchive != "" {
		t.Errorf("BaseArchive = %q, want empty", p.BaseArchive)
	}
	if len(p.UpdateDirectives) != 0 {
		t.Errorf("UpdateDirectives = %v, want none", p.UpdateDirectives)
	}
	if p.PositionalArchive() != p.ArchivePath {
		t.Errorf("PositionalArchive = %q, want the produced archive", p.PositionalArchive())
	}
}

func TestResolve_FullUpdatePlan(t *testing.T) {
	req := request(ModeFullUpdate, pointer.StateValid)
	p, err := Resolve(req)
	if err != nil {
		t.Fatal(err)
	}

	if p.SubCommand != "u" {
		t.Errorf("SubCommand = %q, want %q", p.SubCommand, "u")
	}
	// In-place: the existing archive is re-opened, not renamed.
	if p.ArchivePath != req.BasePath {
		t.Errorf("ArchivePath = %q, want base %q", p.ArchivePath, req.BasePath)
	}
	if len(p.UpdateDirectives) != 1 || p.UpdateDirectives[0] != "-up1q1r2x1y2z1w2" {
		t.Errorf("UpdateDirectives = %v", p.UpdateDirectives)
	}
}

func TestResolve_DiffPlan(t *testing.T) {
	req := request(ModeDiff, pointer.StateValid)
	p, err := Resolve(req)
	if err != nil {
		t.Fatal(err)
	}

	if p.SubCommand != "u" {
		t.Errorf("SubCommand = %q, want %q", p.SubCommand, "u")
	}
	if !strings.HasSuffix(p.ArchivePath, ".diff.7z") {
		t.Errorf("ArchivePath = %q, want .diff.7z suffix", p.ArchivePath)
	}
	if p.BaseArchive != req.BasePath {
		t.Errorf("BaseArchive = %q, want %q", p.BaseArchive, req.BasePath)
	}
	// The base archive is the positional argument and must not be modified.
	if p.PositionalArchive() != req.BasePath {
		t.Errorf("PositionalArchive = %q, want base archive", p.PositionalArchive())
	}
	if len(p.UpdateDirectives) != 2 {
		t.Fatalf("UpdateDirectives = %v, want 2 entries", p.UpdateDirectives)
	}
	if p.UpdateDirectives[0] != "-u-" {
		t.Errorf("UpdateDirectives[0] = %q, want -u-", p.UpdateDirectives[0])
	}
	// z0 skips byte-identical entries, q3 records deletions as anti-items.
	wantDirective := "-up0q3r2x2y2z0w2!" + p.ArchivePath
	if p.UpdateDirectives[1] != wantDirective {
		t.Errorf("UpdateDirectives[1] = %q, want %q", p.UpdateDirectives[1], wantDirective)
	}
}

func TestResolve_StaleAndAbsentMessagesDiffer(t *testing.T) {
	_, absentErr := Resolve(request(ModeDiff, pointer.StateAbsent))
	_, staleErr := Resolve(request(ModeDiff, pointer.StateStale))

	if absentErr == nil || staleErr == nil {
		t.Fatal("both pointer states should fail for diff mode")
	}
	if absentErr.Error() == staleErr.Error() {
		t.Errorf("absent and stale failures should be distinguishable, both: %v", absentErr)
	}
	if !strings.Contains(staleErr.Error(), "no longer exists") {
		t.Errorf("stale error should name the missing archive: %v", staleErr)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"AUTO", ModeAuto, false},
		{"full-new", ModeFullNew, false},
		{"FullNew", ModeFullNew, false},
		{"full-update", ModeFullUpdate, false},
		{"diff", ModeDiff, false},
		{"incremental", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q) = %v, want error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		input   string
		want    Compression
		level   int
		wantErr bool
	}{
		{"", CompressionFast, 1, false},
		{"fast", CompressionFast, 1, false},
		{"None", CompressionNone, 0, false},
		{"ultra", 0, 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCompression(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCompression(%q) = %v, want error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCompression(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want || got.Level() != tt.level {
			t.Errorf("ParseCompression(%q) = %v (level %d), want %v (level %d)",
				tt.input, got, got.Level(), tt.want, tt.level)
		}
	}
}
