package output

import (
	"fmt"
	"io"

	"github.com/SuyashParmar/network-auditor/internal/audit"
)

// PrintFindings writes the console summary of an audit run: one coloured
// line per finding, in report order, followed by the severity counts.
func PrintFindings(w io.Writer, findings []audit.Finding) {
	if JSONMode {
		return
	}
	title := "=== AUDIT RESULTS ==="
	if !NoColor() {
		title = StyleTitle.Render(title)
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, f := range findings {
		fmt.Fprintln(w, FormatFinding(f))
	}

	s := audit.Summarize(findings)
	fmt.Fprintf(w, "\nFindings: high=%d medium=%d low=%d info=%d\n", s.High, s.Medium, s.Low, s.Info)
}
