package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// schemaBytes holds the embedded JSON Schema for netaudit.yaml.
// It is set by the schemas package init or by SetSchema() for testing.
var schemaBytes []byte

// SetSchema sets the JSON Schema bytes used for validation.
func SetSchema(data []byte) {
	schemaBytes = data
}

// GetSchema returns the registered JSON Schema bytes.
func GetSchema() []byte {
	return schemaBytes
}

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationResult holds the outcome of a config validation.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// Validate validates a Config against the embedded JSON Schema.
func Validate(cfg *Config) (*ValidationResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	jsonBytes, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config to JSON: %w", err)
	}
	return validateJSON(jsonBytes)
}

// ValidateYAML validates raw netaudit.yaml bytes against the schema, after
// applying defaults the same way Load does.
func ValidateYAML(data []byte) (*ValidationResult, error) {
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Validate(cfg)
}

func validateJSON(doc []byte) (*ValidationResult, error) {
	if len(schemaBytes) == 0 {
		return nil, fmt.Errorf("JSON schema not loaded; call config.SetSchema() or import the schemas package")
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("running schema validation: %w", err)
	}

	vr := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		vr.Errors = append(vr.Errors, ValidationError{
			Field:       e.Field(),
			Description: e.Description(),
		})
	}
	return vr, nil
}

// RequireDevice checks the fields a live SSH fetch cannot do without.
// The password is checked separately since it may still be prompted for.
func RequireDevice(d Device) error {
	var missing []string
	if strings.TrimSpace(d.Host) == "" {
		missing = append(missing, "device.host")
	}
	if strings.TrimSpace(d.Username) == "" {
		missing = append(missing, "device.username")
	}
	if len(missing) > 0 {
		return fmt.Errorf("invalid device configuration: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// Summary renders validation errors as a single line for error messages.
func (r *ValidationResult) Summary() string {
	if r == nil || len(r.Errors) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Field+": "+e.Description)
	}
	return strings.Join(parts, "; ")
}
