package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SuyashParmar/network-auditor/internal/config"
	"github.com/SuyashParmar/network-auditor/internal/exitcode"
	"github.com/SuyashParmar/network-auditor/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a netaudit.yaml with default settings",
	Long: `Writes netaudit.yaml with the default device and report settings.

Without --ci the device host and SSH username are asked for interactively.
The password is never stored; provide it through NETAUDIT_DEVICE_PASSWORD
or answer the prompt when running 'netaudit audit'.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var (
	initHost  string
	initUser  string
	initForce bool
)

func init() {
	initCmd.Flags().StringVar(&initHost, "host", "", "device hostname or address")
	initCmd.Flags().StringVar(&initUser, "user", "", "SSH username")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	_ = args
	initOutput(cmd)

	path := cfgFile
	if path == "" {
		path = "netaudit.yaml"
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return exitcode.Wrap(exitcode.Validation, output.NewErrorWithFix(
			fmt.Sprintf("%s already exists", path),
			"Use --force to overwrite it"))
	}

	cfg := config.Default()
	cfg.Device.Host = initHost
	cfg.Device.Username = initUser

	if !effectiveCIMode() {
		var err error
		if cfg.Device.Host == "" {
			if cfg.Device.Host, err = prompter.Input("Device host:", ""); err != nil {
				return fmt.Errorf("reading device host: %w", err)
			}
		}
		if cfg.Device.Username == "" {
			if cfg.Device.Username, err = prompter.Input("SSH username:", "vyos"); err != nil {
				return fmt.Errorf("reading SSH username: %w", err)
			}
		}
	}

	result, err := config.Validate(cfg)
	if err != nil {
		return exitcode.Wrap(exitcode.Validation, err)
	}
	if !result.Valid {
		return exitcode.Wrap(exitcode.Validation, fmt.Errorf("invalid configuration: %s", result.Summary()))
	}

	if err := config.Save(cfg, path); err != nil {
		return exitcode.Wrap(exitcode.Serialization, err)
	}

	if jsonOutput {
		output.JSONTo(cmd.OutOrStdout(), map[string]string{"path": path})
		return nil
	}
	color.New(color.FgGreen, color.Bold).Fprintf(cmd.ErrOrStderr(), "✅ Wrote %s\n", path)
	return nil
}
