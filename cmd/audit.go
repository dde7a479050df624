package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SuyashParmar/network-auditor/internal/audit"
	"github.com/SuyashParmar/network-auditor/internal/config"
	"github.com/SuyashParmar/network-auditor/internal/device"
	"github.com/SuyashParmar/network-auditor/internal/exitcode"
	"github.com/SuyashParmar/network-auditor/internal/output"
	"github.com/SuyashParmar/network-auditor/internal/prompt"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit a router configuration and write the reports",
	Long: `Retrieves the router configuration and evaluates it against the rule
catalog (see 'netaudit rules').

Sources:
  - live device over SSH (device.* in netaudit.yaml, --host/--user)
  - saved configuration dump with --input

Outputs:
  - console summary (JSON envelope with --json)
  - text report   (default audit_report.txt)
  - JSON report   (default audit_report.json)

Nothing is written when the configuration cannot be retrieved.`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

var (
	auditInput      string
	auditHost       string
	auditPort       int
	auditUser       string
	auditTextReport string
	auditJSONReport string
	auditSnapshot   string

	// prompter asks for credentials missing from the configuration.
	prompter prompt.Prompter = prompt.NewSurveyPrompter()
)

func init() {
	auditCmd.Flags().StringVar(&auditInput, "input", "", "audit a saved configuration file instead of connecting to the device")
	auditCmd.Flags().StringVar(&auditHost, "host", "", "device hostname or address (overrides device.host)")
	auditCmd.Flags().IntVar(&auditPort, "port", 0, "device SSH port (overrides device.port)")
	auditCmd.Flags().StringVar(&auditUser, "user", "", "SSH username (overrides device.username)")
	auditCmd.Flags().StringVar(&auditTextReport, "text-report", "", "text report path (overrides reports.text)")
	auditCmd.Flags().StringVar(&auditJSONReport, "json-report", "", "JSON report path (overrides reports.json)")
	auditCmd.Flags().StringVar(&auditSnapshot, "snapshot", "", "also save the raw configuration to this path")

	rootCmd.AddCommand(auditCmd)
	rootCmd.RunE = runAudit
}

func bindAuditFlags(v *viper.Viper) {
	_ = v.BindPFlag("device.host", auditCmd.Flags().Lookup("host"))
	_ = v.BindPFlag("device.port", auditCmd.Flags().Lookup("port"))
	_ = v.BindPFlag("device.username", auditCmd.Flags().Lookup("user"))
	_ = v.BindPFlag("reports.text", auditCmd.Flags().Lookup("text-report"))
	_ = v.BindPFlag("reports.json", auditCmd.Flags().Lookup("json-report"))
	_ = v.BindPFlag("reports.snapshot", auditCmd.Flags().Lookup("snapshot"))
	_ = v.BindPFlag("ci", rootCmd.PersistentFlags().Lookup("ci"))
}

// auditResult is the --json payload of the audit command.
type auditResult struct {
	Source   string          `json:"source"`
	Score    int             `json:"score"`
	Summary  audit.Summary   `json:"summary"`
	Findings []audit.Finding `json:"findings"`
	Reports  config.Reports  `json:"reports"`
}

func runAudit(cmd *cobra.Command, args []string) error {
	_ = args
	initOutput(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fetcher, source, err := newFetcher(cfg)
	if err != nil {
		return err
	}

	banner := color.New(color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	if !jsonOutput {
		banner.Fprintf(cmd.ErrOrStderr(), "🔍 Auditing %s...\n", source)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), fetchBudget(cfg.Device))
	defer cancel()

	raw, err := output.SpinnerValue("Retrieving configuration", func() (string, error) {
		return fetcher.Fetch(ctx)
	})
	if err != nil {
		return exitcode.Wrap(exitcode.Retrieval, output.WrapErrorWithFix(err,
			"audit aborted, no reports written",
			"Check device.host, credentials and reachability, or audit a saved dump with --input"))
	}

	if cfg.Reports.Snapshot != "" && auditInput == "" {
		if err := device.SaveSnapshot(cfg.Reports.Snapshot, raw); err != nil {
			output.Warn("could not save configuration snapshot", "path", cfg.Reports.Snapshot, "error", err)
		} else {
			output.Debug("configuration snapshot saved", "path", cfg.Reports.Snapshot)
		}
	}

	findings := audit.NewEngine().Evaluate(raw)

	if jsonOutput {
		output.JSONTo(cmd.OutOrStdout(), auditResult{
			Source:   source,
			Score:    audit.Score(findings),
			Summary:  audit.Summarize(findings),
			Findings: findings,
			Reports:  cfg.Reports,
		})
	} else {
		output.PrintFindings(cmd.OutOrStdout(), findings)
	}

	if err := audit.Persist(findings, cfg.Reports.Text, cfg.Reports.JSON, time.Now()); err != nil {
		for _, serr := range audit.SerializationErrors(err) {
			output.Error("report not written", "path", serr.Path, "error", serr.Err)
		}
		return exitcode.Wrap(exitcode.Serialization, output.WrapErrorWithFix(err,
			"writing audit reports",
			"Check that the report directories exist and are writable"))
	}

	if !jsonOutput {
		green.Fprintf(cmd.ErrOrStderr(), "\n✅ Reports written to %s and %s\n", cfg.Reports.Text, cfg.Reports.JSON)
	}
	return nil
}

// newFetcher picks the configuration source and resolves missing SSH
// credentials, prompting for them unless running in CI mode.
func newFetcher(cfg *config.Config) (device.Fetcher, string, error) {
	if auditInput != "" {
		return device.NewFileFetcher(auditInput), auditInput, nil
	}

	d := &cfg.Device
	if strings.TrimSpace(d.Host) == "" {
		return nil, "", exitcode.Wrap(exitcode.Validation, output.NewErrorWithFix(
			"no device host configured",
			"Set device.host in netaudit.yaml, NETAUDIT_DEVICE_HOST or --host; or audit a saved dump with --input"))
	}

	if effectiveCIMode() {
		if err := config.RequireDevice(*d); err != nil {
			return nil, "", exitcode.Wrap(exitcode.Validation, err)
		}
		if d.Password == "" {
			return nil, "", exitcode.Wrap(exitcode.Validation, output.NewErrorWithFix(
				"device password not set",
				"Export NETAUDIT_DEVICE_PASSWORD in the CI environment"))
		}
	} else {
		user, password, err := prompt.DeviceCredentials(prompter, d.Host, d.Username, d.Password)
		if err != nil {
			return nil, "", fmt.Errorf("reading device credentials: %w", err)
		}
		d.Username, d.Password = user, password
	}

	fetcher := device.NewSSHFetcher(*d)
	return fetcher, fetcher.Addr(), nil
}

// fetchBudget bounds the whole retrieval: every attempt may use the full
// connection timeout, plus the longest backoff between attempts.
func fetchBudget(d config.Device) time.Duration {
	attempts := d.Retries
	if attempts < 1 {
		attempts = 1
	}
	return time.Duration(attempts)*d.Timeout() + time.Duration(attempts-1)*device.DefaultRetryMaxDelay
}
