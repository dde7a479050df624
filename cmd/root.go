// Package cmd implements the Cobra-based CLI for netaudit.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SuyashParmar/network-auditor/internal/config"
	"github.com/SuyashParmar/network-auditor/internal/exitcode"
	"github.com/SuyashParmar/network-auditor/internal/output"
)

var (
	cfgFile    string
	verbosity  int
	jsonOutput bool // --json flag for machine-readable output
	ciMode     bool

	// settings layers netaudit.yaml, NETAUDIT_* environment variables and
	// command flags. It is rebuilt on every invocation.
	settings = viper.New()
)

// rootCmd is the top-level command for netaudit.
var rootCmd = &cobra.Command{
	Use:   "netaudit",
	Short: "Router configuration security auditor",
	Long: `netaudit retrieves the running configuration of a VyOS-style router over
SSH (or reads a saved dump) and checks it against a small catalog of
security rules:
  - plaintext user passwords       (HIGH)
  - Telnet service enabled         (HIGH)
  - SSH service missing            (MEDIUM)
  - administratively down links    (LOW)

Each run produces a security score and writes a text and a JSON report.
Device settings live in netaudit.yaml and may be overridden with
NETAUDIT_* environment variables or flags. Running netaudit without a
subcommand is the same as 'netaudit audit'.

Workflow: init → doctor → audit → schema validate`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: netaudit.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (-v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output results as JSON (machine-readable)")
	rootCmd.PersistentFlags().BoolVar(&ciMode, "ci", false, "strict non-interactive mode (fails when required inputs are missing)")
}

func effectiveCIMode() bool {
	if ciMode || settings.GetBool("ci") {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(os.Getenv("CI")), "true")
}

func initConfig() {
	settings = viper.New()
	if cfgFile != "" {
		settings.SetConfigFile(cfgFile)
	} else {
		settings.SetConfigName("netaudit")
		settings.SetConfigType("yaml")
		settings.AddConfigPath(".")
		settings.AddConfigPath("$HOME")
	}
	settings.SetEnvPrefix("NETAUDIT")
	settings.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	settings.AutomaticEnv()
	bindAuditFlags(settings)

	if err := settings.ReadInConfig(); err == nil && verbosity > 0 {
		fmt.Fprintln(os.Stderr, "Using config file:", settings.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration and validates it against
// the schema.
func loadConfig() (*config.Config, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}

	result, err := config.Validate(cfg)
	if err != nil {
		return nil, exitcode.Wrap(exitcode.Validation, err)
	}
	if !result.Valid {
		return nil, exitcode.Wrap(exitcode.Validation,
			fmt.Errorf("invalid configuration: %s", result.Summary()))
	}
	return cfg, nil
}

// resolveConfig builds the effective configuration without validating it:
// the typed netaudit.yaml (when one was found) with environment and flag
// values layered on top and defaults applied.
func resolveConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := settings.ConfigFileUsed(); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, exitcode.Wrap(exitcode.Validation, output.WrapErrorWithFix(err,
				"cannot load configuration",
				"Run 'netaudit init' to create netaudit.yaml or pass --config"))
		}
		cfg = loaded
	}

	overlayString(&cfg.Device.Host, "device.host")
	overlayString(&cfg.Device.Username, "device.username")
	overlayString(&cfg.Device.Password, "device.password")
	overlayString(&cfg.Device.Command, "device.command")
	overlayString(&cfg.Device.KnownHostsFile, "device.knownhostsfile")
	overlayInt(&cfg.Device.Port, "device.port")
	overlayInt(&cfg.Device.TimeoutSeconds, "device.timeoutseconds")
	overlayInt(&cfg.Device.Retries, "device.retries")
	overlayString(&cfg.Reports.Text, "reports.text")
	overlayString(&cfg.Reports.JSON, "reports.json")
	overlayString(&cfg.Reports.Snapshot, "reports.snapshot")
	config.ApplyDefaults(cfg)
	return cfg, nil
}

func overlayString(dst *string, key string) {
	if v := settings.GetString(key); v != "" {
		*dst = v
	}
}

func overlayInt(dst *int, key string) {
	if v := settings.GetInt(key); v != 0 {
		*dst = v
	}
}

// initOutput points logging and the spinner at the command's stderr and
// applies the global output flags.
func initOutput(cmd *cobra.Command) {
	output.SetOutput(cmd.ErrOrStderr())
	output.Init(verbosity > 0, jsonOutput)
}
