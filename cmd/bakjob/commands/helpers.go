package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/bakjob/internal/errors"
	"github.com/thoreinstein/bakjob/internal/job"
	"github.com/thoreinstein/bakjob/internal/plan"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// timeRound is the display resolution for run durations.
const timeRound = time.Millisecond

// registerRunFlags adds the per-run override flags shared by run and plan.
func registerRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", "auto",
		"backup mode: auto, full-new, full-update, diff")
	cmd.Flags().StringP("compression", "c", "",
		"compression: none, fast (default from tool config)")
	cmd.Flags().StringP("password", "p", "",
		"explicit encryption key (overrides the job file)")
	cmd.Flags().Bool("no-encryption", false,
		"disable encryption even when no key is configured")
	cmd.Flags().String("archiver", "",
		"archiver binary (overrides the tool config)")
}

// runOptions builds job.Options from the command's flags and argument.
func runOptions(cmd *cobra.Command, configPath string) (job.Options, error) {
	var opts job.Options
	opts.ConfigPath = configPath

	modeStr, _ := cmd.Flags().GetString("mode")
	mode, err := plan.ParseMode(modeStr)
	if err != nil {
		return opts, errors.NewUserError(err, "see 'bakjob run --help' for valid modes")
	}
	opts.Mode = mode

	compStr, _ := cmd.Flags().GetString("compression")
	if compStr == "" {
		compStr = Settings().DefaultCompression
	}
	comp, err := plan.ParseCompression(compStr)
	if err != nil {
		return opts, errors.NewUserError(err, "see 'bakjob run --help' for valid compression selectors")
	}
	opts.Compression = comp

	if cmd.Flags().Changed("password") {
		opts.Password, _ = cmd.Flags().GetString("password")
		opts.PasswordSet = true
	}
	opts.NoEncryption, _ = cmd.Flags().GetBool("no-encryption")
	opts.Archiver, _ = cmd.Flags().GetString("archiver")

	return opts, nil
}
