// Package device retrieves router configuration text for auditing, either
// live over SSH or from a saved dump on disk.
package device

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Fetcher supplies the full configuration of a device as text.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// RetrievalError reports that configuration text could not be obtained.
type RetrievalError struct {
	Source string // host:port or file path
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieving configuration from %s: %v", e.Source, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// FileFetcher reads a configuration dump saved earlier.
type FileFetcher struct {
	Path string
}

// NewFileFetcher returns a fetcher for the dump at path.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{Path: path}
}

// Fetch returns the file contents.
func (f *FileFetcher) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &RetrievalError{Source: f.Path, Err: err}
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", &RetrievalError{Source: f.Path, Err: err}
	}
	return string(data), nil
}

// SaveSnapshot writes the raw configuration text to path, replacing any
// previous snapshot.
func SaveSnapshot(path, config string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config), 0o600); err != nil {
		return fmt.Errorf("writing config snapshot %s: %w", path, err)
	}
	return nil
}
