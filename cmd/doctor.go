package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SuyashParmar/network-auditor/internal/doctor"
	"github.com/SuyashParmar/network-auditor/internal/exitcode"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that an audit can run against the configured device",
	Long: `Verify that netaudit.yaml loads and matches its schema, that the device
SSH port is reachable, that host key verification can be loaded, and that
the report paths are writable.

Each check reports ✅ (pass), ❌ (fail), or ⚠️ (warning) with an
actionable fix suggestion.

Exit code 0 if all critical checks pass, 2 otherwise.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	initOutput(cmd)

	// The config-schema check reports validation problems itself.
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	summary := doctor.RunAll(cmd.Context(), doctor.NewEnv(cfg, settings.ConfigFileUsed()))
	doctor.PrintResults(cmd.OutOrStdout(), summary)

	if summary.HasFailure {
		return exitcode.Wrap(exitcode.Validation, fmt.Errorf("doctor found %d failed check(s)", summary.TotalFail))
	}
	return nil
}
