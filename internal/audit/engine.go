// Package audit evaluates router configuration text against a fixed catalog
// of security rules and renders the resulting findings as text and JSON
// reports.
package audit

import "fmt"

const (
	maxScore       = 100
	penaltyPerItem = 10

	scoreRecommendation = "Resolve all HIGH and MEDIUM findings to improve the security score."
)

// Rule is a single configuration check. Evaluate must return exactly one
// finding for any input.
type Rule interface {
	ID() string
	Description() string
	Evaluate(config string) Finding
}

// Engine applies an ordered rule list to configuration text. It holds no
// mutable state and may be shared between goroutines.
type Engine struct {
	rules []Rule
}

// NewEngine returns an engine loaded with the default rule catalog.
func NewEngine() *Engine {
	return &Engine{rules: defaultRules()}
}

// NewEngineWithRules returns an engine that evaluates rules in the given order.
func NewEngineWithRules(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the rules in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Evaluate runs every rule against config and returns the findings with the
// security score finding at index 0, followed by one finding per rule in
// declaration order.
func (e *Engine) Evaluate(config string) []Finding {
	results := make([]Finding, 0, len(e.rules))
	for _, rule := range e.rules {
		results = append(results, rule.Evaluate(config))
	}

	findings := make([]Finding, 0, len(results)+1)
	findings = append(findings, scoreFinding(Score(results)))
	return append(findings, results...)
}

// Evaluate runs the default rule catalog against config.
func Evaluate(config string) []Finding {
	return NewEngine().Evaluate(config)
}

// Score derives the 0-100 security score from the HIGH and MEDIUM findings.
func Score(findings []Finding) int {
	penalized := 0
	for _, f := range findings {
		if f.Severity.Penalized() {
			penalized++
		}
	}
	score := maxScore - penaltyPerItem*penalized
	if score < 0 {
		return 0
	}
	return score
}

func scoreFinding(score int) Finding {
	return Finding{
		Severity:       SeverityInfo,
		Message:        fmt.Sprintf("Security Score: %d/%d", score, maxScore),
		Recommendation: scoreRecommendation,
	}
}

// Summarize counts findings per severity.
func Summarize(findings []Finding) Summary {
	out := Summary{Total: len(findings)}
	for _, f := range findings {
		switch f.Severity {
		case SeverityHigh:
			out.High++
		case SeverityMedium:
			out.Medium++
		case SeverityLow:
			out.Low++
		case SeverityInfo:
			out.Info++
		}
	}
	return out
}
