package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const jsonIndent = "    "

// RenderJSON renders the findings as an indented JSON array. A nil slice is
// rendered as an empty array.
func RenderJSON(findings []Finding) ([]byte, error) {
	if findings == nil {
		findings = []Finding{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", jsonIndent)
	if err := enc.Encode(findings); err != nil {
		return nil, fmt.Errorf("encoding findings: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeJSON parses a structured report back into findings.
func DecodeJSON(data []byte) ([]Finding, error) {
	var findings []Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return nil, fmt.Errorf("decoding findings: %w", err)
	}
	return findings, nil
}
