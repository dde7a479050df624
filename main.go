// netaudit audits router configurations for common security misconfigurations
// and writes text and JSON reports.
package main

import (
	"os"

	"github.com/SuyashParmar/network-auditor/cmd"
	"github.com/SuyashParmar/network-auditor/internal/exitcode"
	"github.com/SuyashParmar/network-auditor/internal/output"
	_ "github.com/SuyashParmar/network-auditor/schemas"
)

func main() {
	if err := cmd.Execute(); err != nil {
		output.PrintError(err)
		os.Exit(exitcode.Of(err))
	}
}
