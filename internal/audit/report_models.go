package audit

import "fmt"

// Severity classifies the risk of a finding. Lower values are more severe;
// the zero value is unset and never valid.
type Severity int

const (
	SeverityHigh Severity = iota + 1
	SeverityMedium
	SeverityLow
	SeverityInfo

	// NumSeverities bounds the enumeration. Lookup tables indexed by
	// Severity are declared with this length and leave index 0 empty.
	NumSeverities
)

var severityNames = [NumSeverities]string{
	SeverityHigh:   "HIGH",
	SeverityMedium: "MEDIUM",
	SeverityLow:    "LOW",
	SeverityInfo:   "INFO",
}

// Severities returns the enumeration from most to least severe.
func Severities() []Severity {
	return []Severity{SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

// Valid reports whether s is one of the four defined severities.
func (s Severity) Valid() bool {
	return s >= SeverityHigh && s < NumSeverities
}

func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// Penalized reports whether findings of this severity lower the score.
func (s Severity) Penalized() bool {
	return s == SeverityHigh || s == SeverityMedium
}

// MarshalText encodes the severity as its upper-case name.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return []byte(severityNames[s]), nil
}

// UnmarshalText accepts only the exact upper-case severity names.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity maps a severity name back to its enum value.
func ParseSeverity(name string) (Severity, error) {
	for _, s := range Severities() {
		if severityNames[s] == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", name)
}

// Finding is a single rule-evaluation result. Field order is the key order
// of the structured report.
type Finding struct {
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
}

// Summary counts findings per severity.
type Summary struct {
	Total  int `json:"total"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	Info   int `json:"info"`
}
