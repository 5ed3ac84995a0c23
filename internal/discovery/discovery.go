// Package discovery finds result-document files under a results directory.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindResultFiles walks the given root directory and collects every result
// document, meaning any file named *.json or *.json.gz. Paths come back in
// walk order, which is deterministic for a given tree.
func FindResultFiles(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving results path: %w", err)
	}

	// Verify root exists before walking
	if _, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("results path: %w", err)
	}

	var files []string

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}

		// Skip hidden directories
		if d.IsDir() && strings.HasPrefix(d.Name(), ".") && path != absRoot {
			return fs.SkipDir
		}

		// Skip node_modules and similar
		if d.IsDir() && (d.Name() == "node_modules" || d.Name() == "vendor") {
			return fs.SkipDir
		}

		if !d.IsDir() && IsResultFile(d.Name()) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", absRoot, err)
	}

	return files, nil
}

// IsResultFile reports whether the file name looks like a result document.
func IsResultFile(name string) bool {
	return strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".json.gz")
}
