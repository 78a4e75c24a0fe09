// Package sevenzip builds and runs 7-Zip invocations.
package sevenzip

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/bakjob/internal/plan"
)

// Fixed switches present on every invocation.
//
//	-t7z   force the 7z container format
//	-ssw   compress files open for writing
//	-spf2  store full paths without drive prefix
const (
	flagFormat     = "-t7z"
	flagSharedOpen = "-ssw"
	flagFullPaths  = "-spf2"
)

// BuildArgs composes the ordered argument list for one archiver invocation.
//
// The order is fixed: sub-command, archive path, strategy update directives,
// include list, exclude list, compression, fixed format flags, working
// directory, credential. 7-Zip switch parsing does not require this order,
// but a stable argv keeps invocations reproducible and diffable in logs.
//
// excludeList, workDir and key are optional; empty values omit their switch.
func BuildArgs(p *plan.Plan, includeList, excludeList, workDir, key string) []string {
	args := []string{p.SubCommand, p.PositionalArchive()}
	args = append(args, p.UpdateDirectives...)
	args = append(args, "-i@"+includeList)
	if excludeList != "" {
		args = append(args, "-xr@"+excludeList)
	}
	args = append(args, fmt.Sprintf("-mx=%d", p.Compression.Level()))
	args = append(args, flagFormat, flagSharedOpen, flagFullPaths)
	if workDir != "" {
		args = append(args, "-w"+workDir)
	}
	if key != "" {
		args = append(args, "-p"+key)
	}
	return args
}

// MaskArgs returns a copy of args with any credential switch value hidden,
// for logging and dry-run display.
func MaskArgs(args []string) []string {
	masked := make([]string, len(args))
	for i, a := range args {
		if strings.HasPrefix(a, "-p") && len(a) > 2 {
			masked[i] = "-p********"
			continue
		}
		masked[i] = a
	}
	return masked
}
