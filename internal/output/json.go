package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONResult is the standard envelope for JSON output from any netaudit command.
type JSONResult struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // command-specific payload
	Error  string      `json:"error,omitempty"` // error message, if any
}

// JSONTo writes a structured JSON result to w.
func JSONTo(w io.Writer, data interface{}) {
	writeJSON(w, JSONResult{Status: "ok", Data: data})
}

// JSONError writes an error result as JSON to stdout.
func JSONError(err error) {
	writeJSON(os.Stdout, JSONResult{Status: "error", Error: err.Error()})
}

func writeJSON(w io.Writer, result JSONResult) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(Writer(), "error encoding JSON output: %v\n", err)
	}
}
