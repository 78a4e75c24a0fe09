package plan

import (
	"testing"
	"time"
)

func TestName_Format(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		job    string
		suffix string
		want   string
	}{
		{"myjob", SuffixFull, "myjob-20240101_000000.full.7z"},
		{"myjob", SuffixDiff, "myjob-20240101_000000.diff.7z"},
		{"nightly-etc", SuffixFull, "nightly-etc-20240101_000000.full.7z"},
	}

	for _, tt := range tests {
		if got := Name(tt.job, ts, tt.suffix); got != tt.want {
			t.Errorf("Name(%q, ts, %q) = %q, want %q", tt.job, tt.suffix, got, tt.want)
		}
	}
}

func TestName_Pure(t *testing.T) {
	ts := time.Date(2026, 8, 24, 13, 37, 1, 0, time.UTC)

	first := Name("job", ts, SuffixFull)
	second := Name("job", ts, SuffixFull)
	if first != second {
		t.Errorf("Name is not deterministic: %q vs %q", first, second)
	}

	// A full/diff pair generated from the same captured timestamp shares it.
	full := Name("job", ts, SuffixFull)
	diff := Name("job", ts, SuffixDiff)
	if full[:len("job-20260824_133701")] != diff[:len("job-20260824_133701")] {
		t.Errorf("full and diff names disagree on timestamp: %q vs %q", full, diff)
	}
}
