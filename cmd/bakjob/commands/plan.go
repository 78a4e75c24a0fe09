package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/bakjob/internal/job"
	"github.com/thoreinstein/bakjob/internal/plan"
)

func init() {
	registerRunFlags(planCmd)
	rootCmd.AddCommand(planCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan <job-config>",
	Short: "Show the invocation a run would execute",
	Long: `Resolve a backup run without executing it.

plan loads the job configuration, classifies the base pointer, resolves the
mode and prints the archiver invocation that 'bakjob run' would execute with
the same flags. No archiver process is spawned, no list files are written and
the base pointer is never touched. The credential is masked in the output.`,
	Example: `  # See whether auto would go full or differential
  bakjob plan /etc/bakjob/myjob.cfg

  # Preview a forced in-place update
  bakjob plan /etc/bakjob/myjob.cfg --mode full-update`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	return runPlanWithWriter(cmd, args[0], os.Stdout)
}

func runPlanWithWriter(cmd *cobra.Command, configPath string, w io.Writer) error {
	opts, err := runOptions(cmd, configPath)
	if err != nil {
		return err
	}

	runner := job.NewRunner(Settings())
	result, err := runner.Plan(cmd.Context(), opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%sJob:%s      %s\n", colorBold, colorReset, result.Job)
	fmt.Fprintf(w, "%sMode:%s     %s\n", colorBold, colorReset, result.Plan.Mode)
	fmt.Fprintf(w, "%sArchive:%s  %s\n", colorBold, colorReset, result.Plan.ArchivePath)
	if result.Plan.Mode != plan.ModeFullNew {
		fmt.Fprintf(w, "%sBase:%s     %s\n", colorBold, colorReset, result.Plan.BaseArchive)
	}
	fmt.Fprintf(w, "%sCommand:%s  %s %s\n", colorBold, colorReset,
		result.Binary, strings.Join(result.Argv, " "))

	return nil
}
