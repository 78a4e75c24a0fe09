package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	bakerrors "github.com/thoreinstein/bakjob/internal/errors"
	"github.com/thoreinstein/bakjob/internal/job"
)

func init() {
	registerRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run <job-config>",
	Short: "Execute one backup run for a job",
	Long: `Execute one backup run for the job described by the given configuration file.

The mode defaults to auto: a differential archive when the job's base pointer
names an existing full archive, otherwise a fresh full archive. After a
successful fresh full run the base pointer is updated to the new archive.

Forcing --mode full-update or --mode diff fails when no valid base archive
exists; no archiver process is spawned in that case.`,
	Example: `  # Scheduled nightly run
  bakjob run /etc/bakjob/myjob.cfg

  # Start a new full archive generation
  bakjob run /etc/bakjob/myjob.cfg --mode full-new

  # Unencrypted, uncompressed throwaway archive
  bakjob run /etc/bakjob/myjob.cfg --no-encryption --compression none

  See Also:
    bakjob plan - Show the invocation a run would execute`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	return runRunWithWriter(cmd, args[0], os.Stdout)
}

func runRunWithWriter(cmd *cobra.Command, configPath string, w io.Writer) error {
	opts, err := runOptions(cmd, configPath)
	if err != nil {
		return err
	}

	runner := job.NewRunner(Settings())
	result, err := runner.Run(cmd.Context(), opts)
	if err != nil {
		if errors.Is(err, bakerrors.ErrMissingBaseArchive) {
			return bakerrors.NewUserError(err,
				"run with --mode full-new to record a base archive first")
		}
		if errors.Is(err, bakerrors.ErrArchiverFailed) {
			return bakerrors.NewSystemError(err,
				"re-run with -v to see the archiver invocation")
		}
		return err
	}

	fmt.Fprintf(w, "%s✓ %s: %s archive %s (%s)%s\n",
		colorGreen, result.Job, result.Plan.Mode, result.Plan.ArchivePath,
		result.Duration.Round(timeRound), colorReset)
	if result.PointerUpdated {
		fmt.Fprintf(w, "%s  base pointer now references this archive%s\n",
			colorGray, colorReset)
	}

	return nil
}
