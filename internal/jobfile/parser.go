package jobfile

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	bakerrors "github.com/thoreinstein/bakjob/internal/errors"
)

// document is the raw parse result: named sections in the order they appear
// in the file, each holding keyed values plus bare lines in original order.
type document struct {
	sections map[string]*section
}

// section holds the contents of one [name] block.
type section struct {
	keyed map[string]keyedValue
	bare  []string
}

// keyedValue distinguishes "key=" (present, empty) from an absent key.
type keyedValue struct {
	value string
}

func newDocument() *document {
	return &document{sections: make(map[string]*section)}
}

func (d *document) section(name string) *section {
	s, ok := d.sections[name]
	if !ok {
		s = &section{keyed: make(map[string]keyedValue)}
		d.sections[name] = s
	}
	return s
}

// lookup returns a section's keyed value and whether the key was present.
// Missing sections read as empty, per the tolerance rule.
func (d *document) lookup(sectionName, key string) (string, bool) {
	s, ok := d.sections[strings.ToLower(sectionName)]
	if !ok {
		return "", false
	}
	v, ok := s.keyed[strings.ToLower(key)]
	return v.value, ok
}

// bareLines returns a section's unkeyed lines in file order.
func (d *document) bareLines(sectionName string) []string {
	s, ok := d.sections[strings.ToLower(sectionName)]
	if !ok {
		return nil
	}
	return s.bare
}

// parseState tracks where the line parser is.
// The parser is deliberately an explicit state machine rather than a pile of
// regexes: no section yet, inside a section after a key line, or inside a
// section after a bare line. Keyed and bare lines may interleave; the split
// states exist so error reporting can say what the parser last accepted.
type parseState int

const (
	stateNoSection parseState = iota
	stateInSectionKeyed
	stateInSectionBare
)

// parse reads an INI-like document from r.
// Section headers are [name] lines; # and ; open comments; key=value lines
// populate the current section; any other non-blank line is collected as a
// bare line preserving order. A key or bare line before the first section
// header is a parse error.
func parse(r *bufio.Scanner) (*document, error) {
	doc := newDocument()
	state := stateNoSection
	var current *section

	lineNo := 0
	for r.Scan() {
		lineNo++
		line := strings.TrimSpace(r.Text())

		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			name := strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			current = doc.section(name)
			state = stateInSectionKeyed
			continue
		}

		if state == stateNoSection {
			return nil, errors.WithDetail(
				errors.Wrapf(bakerrors.ErrConfigParse, "line %d: %q outside any section", lineNo, line),
				"every value line must follow a [section] header")
		}

		if key, value, ok := splitKeyValue(line); ok {
			current.keyed[strings.ToLower(key)] = keyedValue{value: value}
			state = stateInSectionKeyed
			continue
		}

		current.bare = append(current.bare, line)
		state = stateInSectionBare
	}
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "reading job configuration")
	}

	return doc, nil
}

// splitKeyValue splits a "key=value" line. A line qualifies only when a
// non-empty key precedes the first '='; otherwise it is a bare line
// (exclusion patterns may legitimately contain '=' mid-string, but never
// start with it).
func splitKeyValue(line string) (key, value string, ok bool) {
	i := strings.Index(line, "=")
	if i <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:i])
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	return key, strings.TrimSpace(line[i+1:]), true
}

// ParseError annotates parse failures with the originating file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parsing job configuration: %v", e.Err)
	}
	return fmt.Sprintf("parsing job configuration %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
