// Package output handles file naming and writing for sitepdf.
// Filenames come from the last non-empty path segment of the URL, so two
// URLs sharing that segment map to the same file and the later one wins.
package output

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Extension is appended to every derived filename.
const Extension = ".pdf"

// IndexName is used when the URL path has no non-empty segment.
const IndexName = "index"

// ErrInvalidURL is returned when a URL has no scheme or host.
var ErrInvalidURL = errors.New("invalid URL")

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting outputDir, creating it (and any parents)
// if needed. An existing directory is not an error.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Path returns where a file called name would be written.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.OutputDir, name)
}

// Write stores data under name in the output directory, replacing any
// existing file, and returns the full path.
func (w *Writer) Write(name string, data []byte) (string, error) {
	path := w.Path(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// FilenameFromURL derives the PDF filename for rawURL.
// Only the path matters: scheme, host, query and fragment are ignored.
//
//	https://example.com/docs/guide/ → guide.pdf
//	https://example.com/            → index.pdf
//	https://example.com/a/b?x=1     → b.pdf
func FilenameFromURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidURL, rawURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q (must include scheme, e.g. https://example.com)", ErrInvalidURL, rawURL)
	}

	segments := strings.Split(strings.TrimRight(parsed.EscapedPath(), "/"), "/")
	base := segments[len(segments)-1]
	if base == "" {
		base = IndexName
	}
	return base + Extension, nil
}
