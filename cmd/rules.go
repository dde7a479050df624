package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SuyashParmar/network-auditor/internal/audit"
	"github.com/SuyashParmar/network-auditor/internal/output"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the audit rules in evaluation order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		initOutput(cmd)

		type ruleInfo struct {
			ID          string `json:"id"`
			Description string `json:"description"`
		}
		rules := audit.NewEngine().Rules()
		infos := make([]ruleInfo, 0, len(rules))
		for _, r := range rules {
			infos = append(infos, ruleInfo{ID: r.ID(), Description: r.Description()})
		}

		if jsonOutput {
			output.JSONTo(cmd.OutOrStdout(), infos)
			return nil
		}
		for _, info := range infos {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", info.ID, info.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
