package nsrl

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultGlob matches the CAID JSON files NIST publishes.
const DefaultGlob = "*.json"

// Discover resolves an input path to the list of CAID documents to process.
// A file path is returned as-is. A directory is expanded with the glob
// pattern, which supports doublestar recursive wildcards (e.g. "**/*.json").
// Results are sorted for reproducible processing order.
func Discover(inputPath, pattern string) ([]string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("stat input path: %w", err)
	}

	if !info.IsDir() {
		return []string{inputPath}, nil
	}

	if pattern == "" {
		pattern = DefaultGlob
	}

	// Use doublestar for ** support
	matches, err := doublestar.FilepathGlob(filepath.Join(inputPath, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil || fi.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}
