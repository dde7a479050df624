package audit

import (
	"fmt"
	"strings"
	"time"
)

const (
	reportTitle     = "Router Security Audit Report"
	separatorWidth  = 40
	timestampLayout = "2006-01-02 15:04:05"
)

// RenderText renders the findings as the human-readable report. generatedAt
// is printed as-is; callers pass the current time.
func RenderText(findings []Finding, generatedAt time.Time) string {
	b := &strings.Builder{}
	fmt.Fprintln(b, reportTitle)
	fmt.Fprintln(b, strings.Repeat("-", separatorWidth))
	fmt.Fprintf(b, "Generated at: %s\n\n", generatedAt.Format(timestampLayout))

	for _, f := range findings {
		fmt.Fprintf(b, "[%s] %s\n", f.Severity, f.Message)
		fmt.Fprintf(b, "  Recommendation: %s\n\n", f.Recommendation)
	}

	return b.String()
}

// Render produces both report documents for the same findings.
func Render(findings []Finding, generatedAt time.Time) (string, []byte, error) {
	structured, err := RenderJSON(findings)
	if err != nil {
		return "", nil, err
	}
	return RenderText(findings, generatedAt), structured, nil
}
