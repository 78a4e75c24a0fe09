// Package commands implements the CLI commands for bakjob.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/bakjob/cmd"
	"github.com/thoreinstein/bakjob/internal/config"
	"github.com/thoreinstein/bakjob/internal/errors"
	"github.com/thoreinstein/bakjob/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// settings holds the tool-level configuration loaded at startup.
var settings *config.Settings

// settingsLoadErr holds any error that occurred during config loading.
var settingsLoadErr error

func init() {
	cobra.OnInitialize(initSettings)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("bakjob version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initSettings() {
	config.Init()
	settings, settingsLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "bakjob",
	Short: "7-Zip backup job orchestrator",
	Long: `bakjob runs named backup jobs described by simple configuration files.

For each run it decides the archival strategy (fresh full archive, in-place
update, or differential archive against the last full archive), derives the
archive name from the job and a capture timestamp, and drives a 7-Zip
invocation to carry it out. The only state kept between runs is a per-job
pointer file recording the most recent full archive.

Scheduling is left to an external invoker such as cron or a systemd timer.`,
	Example: `  # Run a job, letting the pointer state pick full vs differential
  bakjob run /etc/bakjob/myjob.cfg

  # Force a fresh full archive without compression
  bakjob run /etc/bakjob/myjob.cfg --mode full-new --compression none

  # Show what a run would execute
  bakjob plan /etc/bakjob/myjob.cfg`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if settingsLoadErr != nil {
			return errors.NewUserError(settingsLoadErr, "Run: bakjob config init")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("BAKJOB_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 1
				case "2":
					v = 2
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// Settings returns the tool-level configuration loaded at startup.
// Subcommands use this instead of reloading viper state.
func Settings() *config.Settings {
	if settings == nil {
		return config.Default()
	}
	return settings
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
