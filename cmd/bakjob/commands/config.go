package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/bakjob/internal/config"
	"github.com/thoreinstein/bakjob/internal/errors"
)

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false,
		"overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage bakjob's own configuration",
	Long: `Manage the tool-level configuration: which archiver binary to run, the
default compression selector, the name of the credential override variable
and the archiver working directory.

This is distinct from per-job configuration files, which are passed to
'bakjob run' directly.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteDefault(configForce)
		if err != nil {
			return errors.NewUserError(err, "use --force to overwrite")
		}
		fmt.Fprintf(os.Stdout, "%s✓ wrote %s%s\n", colorGreen, path, colorReset)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showSettings(os.Stdout)
	},
}

func showSettings(w io.Writer) error {
	data, err := yaml.Marshal(Settings())
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
