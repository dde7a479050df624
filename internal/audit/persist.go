package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
)

const (
	DefaultTextReportPath = "audit_report.txt"
	DefaultJSONReportPath = "audit_report.json"

	reportFileMode = 0o644
)

// SerializationError reports a report target that could not be written.
type SerializationError struct {
	Path string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("writing report %s: %v", e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Persist writes the text report to textPath and the JSON report to
// jsonPath, replacing existing files. Both targets are attempted even if one
// fails; the returned error combines every *SerializationError.
func Persist(findings []Finding, textPath, jsonPath string, generatedAt time.Time) error {
	var errs error

	if err := writeFileAtomic(textPath, []byte(RenderText(findings, generatedAt))); err != nil {
		errs = multierr.Append(errs, &SerializationError{Path: textPath, Err: err})
	}

	structured, err := RenderJSON(findings)
	if err == nil {
		err = writeFileAtomic(jsonPath, structured)
	}
	if err != nil {
		errs = multierr.Append(errs, &SerializationError{Path: jsonPath, Err: err})
	}

	return errs
}

// SerializationErrors splits a Persist error into its per-target failures.
func SerializationErrors(err error) []*SerializationError {
	var out []*SerializationError
	for _, e := range multierr.Errors(err) {
		if se, ok := e.(*SerializationError); ok {
			out = append(out, se)
		}
	}
	return out
}

// writeFileAtomic writes data to a temp file next to path and renames it into
// place once fully written and closed. On failure path is left untouched and
// the temp file is removed.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp, reportFileMode); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
