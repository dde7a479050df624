package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SuyashParmar/network-auditor/internal/audit"
	"github.com/SuyashParmar/network-auditor/internal/config"
	"github.com/SuyashParmar/network-auditor/internal/exitcode"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Export or validate against the netaudit JSON Schemas",
	Long: `Schema tooling for netaudit.yaml and the structured audit report.

Examples:
  netaudit schema export                          # netaudit.yaml schema to stdout
  netaudit schema export --kind report -o r.json  # report schema to a file
  netaudit schema validate                        # validate netaudit.yaml
  netaudit schema validate audit_report.json      # validate a JSON report`,
}

var schemaExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a JSON Schema (config or report)",
	Args:  cobra.NoArgs,
	RunE:  runSchemaExport,
}

var schemaValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate netaudit.yaml or a JSON report against its schema",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSchemaValidate,
}

var (
	schemaOutputFile string
	schemaKind       string
)

func init() {
	schemaExportCmd.Flags().StringVarP(&schemaOutputFile, "output", "o", "", "write schema to file instead of stdout")
	schemaExportCmd.Flags().StringVar(&schemaKind, "kind", "config", "schema to export: config or report")

	schemaCmd.AddCommand(schemaExportCmd)
	schemaCmd.AddCommand(schemaValidateCmd)
	rootCmd.AddCommand(schemaCmd)
}

func runSchemaExport(cmd *cobra.Command, args []string) error {
	var data []byte
	switch schemaKind {
	case "config":
		data = config.GetSchema()
	case "report":
		data = audit.ReportSchema()
	default:
		return exitcode.Wrap(exitcode.Validation, fmt.Errorf("unknown schema kind %q (want config or report)", schemaKind))
	}
	if len(data) == 0 {
		return exitcode.Wrap(exitcode.Validation, fmt.Errorf("no embedded %s schema available", schemaKind))
	}

	if schemaOutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(schemaOutputFile), 0o755); err != nil {
			return exitcode.Wrap(exitcode.Serialization, err)
		}
		if err := os.WriteFile(schemaOutputFile, data, 0o644); err != nil {
			return exitcode.Wrap(exitcode.Serialization, err)
		}
		color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "✅ Schema written to %s\n", schemaOutputFile)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

type schemaViolation struct {
	Field       string
	Description string
}

func runSchemaValidate(cmd *cobra.Command, args []string) error {
	path := localConfigPath()
	if len(args) == 1 {
		path = args[0]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return exitcode.Wrap(exitcode.Validation, fmt.Errorf("reading %s: %w", path, err))
	}

	var violations []schemaViolation
	if strings.EqualFold(filepath.Ext(path), ".json") {
		result, err := audit.ValidateReport(data)
		if err != nil {
			return exitcode.Wrap(exitcode.Validation, err)
		}
		for _, e := range result.Errors {
			violations = append(violations, schemaViolation{e.Field, e.Description})
		}
	} else {
		result, err := config.ValidateYAML(data)
		if err != nil {
			return exitcode.Wrap(exitcode.Validation, err)
		}
		for _, e := range result.Errors {
			violations = append(violations, schemaViolation{e.Field, e.Description})
		}
	}

	if len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s: %s\n", v.Field, v.Description)
		}
		return exitcode.Wrap(exitcode.Validation, fmt.Errorf("schema validation failed with %d error(s)", len(violations)))
	}

	color.New(color.FgGreen, color.Bold).Fprintf(cmd.ErrOrStderr(), "✅ %s is valid.\n", path)
	return nil
}

func localConfigPath() string {
	if strings.TrimSpace(cfgFile) != "" {
		return cfgFile
	}
	if used := settings.ConfigFileUsed(); used != "" {
		return used
	}
	return "netaudit.yaml"
}
