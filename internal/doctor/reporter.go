package doctor

import (
	"fmt"
	"io"
	"strings"

	"github.com/SuyashParmar/network-auditor/internal/output"
)

var categoryLabels = map[string]string{
	"config":  "Configuration",
	"device":  "Device Access",
	"reports": "Report Output",
}

// StatusIcon returns the emoji/icon for a check status.
func StatusIcon(s Status) string {
	if output.NoColor() {
		switch s {
		case StatusPass:
			return "[PASS]"
		case StatusFail:
			return "[FAIL]"
		case StatusWarn:
			return "[WARN]"
		case StatusSkip:
			return "[SKIP]"
		default:
			return "[????]"
		}
	}
	switch s {
	case StatusPass:
		return "✅"
	case StatusFail:
		return "❌"
	case StatusWarn:
		return "⚠️"
	case StatusSkip:
		return "⏭️"
	default:
		return "❓"
	}
}

// PrintResults writes check results to w grouped by category. The caller
// decides the exit code from summary.HasFailure.
func PrintResults(w io.Writer, summary Summary) {
	if output.JSONMode {
		output.JSONTo(w, summary)
		return
	}

	checks := AllChecks()
	lastCategory := ""
	for i, r := range summary.Results {
		cat := ""
		if i < len(checks) {
			cat = checks[i].Category
		}
		if cat != lastCategory {
			printCategoryHeader(w, cat)
			lastCategory = cat
		}
		printCheckResult(w, r)
	}

	fmt.Fprintln(w)
	printSummaryLine(summary)
}

func printCategoryHeader(w io.Writer, cat string) {
	label, ok := categoryLabels[cat]
	if !ok {
		label = cat
	}
	fmt.Fprintln(w)
	if output.NoColor() {
		fmt.Fprintf(w, "--- %s ---\n", label)
	} else {
		fmt.Fprintln(w, output.StyleBold.Render("━━ "+label+" ━━"))
	}
}

func printCheckResult(w io.Writer, r CheckResult) {
	fmt.Fprintf(w, "  %s  %s\n", StatusIcon(r.Status), r.Message)
	if r.Fix != "" && r.Status != StatusPass {
		if output.NoColor() {
			fmt.Fprintf(w, "       Fix: %s\n", r.Fix)
		} else {
			fmt.Fprintf(w, "       💡 %s\n", r.Fix)
		}
	}
}

func printSummaryLine(s Summary) {
	parts := []string{}
	if s.TotalPass > 0 {
		parts = append(parts, fmt.Sprintf("%d passed", s.TotalPass))
	}
	if s.TotalWarn > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", s.TotalWarn))
	}
	if s.TotalFail > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.TotalFail))
	}
	line := strings.Join(parts, ", ")

	switch {
	case s.HasFailure:
		output.Fail(fmt.Sprintf("Doctor found issues: %s", line))
	case s.TotalWarn > 0:
		output.Warn(fmt.Sprintf("Doctor completed with warnings: %s", line))
	default:
		output.Success(fmt.Sprintf("All checks passed (%d)", s.TotalPass))
	}
}
