package audit

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// reportSchema holds the JSON Schema for the structured report. It is set by
// the schemas package init or by SetReportSchema in tests.
var reportSchema []byte

// SetReportSchema sets the JSON Schema used by ValidateReport.
func SetReportSchema(data []byte) {
	reportSchema = data
}

// ReportSchema returns the registered report JSON Schema.
func ReportSchema() []byte {
	return reportSchema
}

// SchemaError is a single schema violation in a structured report.
type SchemaError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationResult is the outcome of validating a structured report.
type ValidationResult struct {
	Valid  bool          `json:"valid"`
	Errors []SchemaError `json:"errors,omitempty"`
}

// ValidateReport checks structured report bytes against the report schema.
func ValidateReport(data []byte) (*ValidationResult, error) {
	if len(reportSchema) == 0 {
		return nil, fmt.Errorf("report schema not loaded; call audit.SetReportSchema() or import the schemas package")
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(reportSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("running schema validation: %w", err)
	}

	vr := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		vr.Errors = append(vr.Errors, SchemaError{
			Field:       e.Field(),
			Description: e.Description(),
		})
	}
	return vr, nil
}
