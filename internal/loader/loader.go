// Package loader reads result documents from disk. Individual bad files are
// warned about and skipped; they never fail the run.
package loader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/evalgate/evalgate/internal/discovery"
	"github.com/evalgate/evalgate/internal/models"
	"github.com/evalgate/evalgate/internal/validation"
)

// ParseError marks a file whose contents are not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError marks a file that is valid JSON but fails the result-document
// schema.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema validation failed: %s", strings.Join(e.Violations, "; "))
}

// LoadResults discovers and decodes every result document under dir.
// Malformed, schema-invalid, or unreadable files produce a warning on warnW
// and are skipped. Documents come back in discovery order. The error return
// covers the directory walk only.
func LoadResults(dir string, warnW io.Writer) ([]models.ResultDocument, error) {
	files, err := discovery.FindResultFiles(dir)
	if err != nil {
		return nil, err
	}
	slog.Debug("discovered result files", "dir", dir, "count", len(files))

	docs := make([]models.ResultDocument, 0, len(files))
	for _, path := range files {
		doc, err := LoadResultFile(path)
		if err != nil {
			warn(warnW, path, err)
			continue
		}
		slog.Debug("loaded result file", "path", path, "model", doc.Model)
		docs = append(docs, doc)
	}
	return docs, nil
}

// LoadResultFile reads, validates, and decodes a single result document.
// Files ending in .gz are transparently decompressed.
func LoadResultFile(path string) (models.ResultDocument, error) {
	data, err := readMaybeGzip(path)
	if err != nil {
		return models.ResultDocument{}, err
	}

	violations, err := validation.ValidateResultBytes(data)
	if err != nil {
		return models.ResultDocument{}, &ParseError{Err: err}
	}
	if len(violations) > 0 {
		return models.ResultDocument{}, &SchemaError{Violations: violations}
	}

	return models.ParseResultDocument(data)
}

func readMaybeGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	if !strings.HasSuffix(path, ".gz") {
		return io.ReadAll(f)
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer zr.Close() //nolint:errcheck
	return io.ReadAll(zr)
}

func warn(w io.Writer, path string, err error) {
	var pe *ParseError
	var se *SchemaError
	switch {
	case errors.As(err, &pe):
		fmt.Fprintf(w, "Warning: Could not parse %s\n", path) //nolint:errcheck
	case errors.As(err, &se):
		fmt.Fprintf(w, "Warning: Skipping %s: %s\n", path, se.Violations[0]) //nolint:errcheck
	default:
		fmt.Fprintf(w, "Warning: Error loading %s: %v\n", path, err) //nolint:errcheck
	}
}
