package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	report := Report{
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		OutputDir:   "pdf_output",
		Converted:   1,
		Failed:      1,
		Entries: []ReportEntry{
			{URL: "https://site.test/a/", Target: "pdf_output/a.pdf", Path: "pdf_output/a.pdf", Status: "converted", Duration: "12ms"},
			{URL: "https://site.test/b", Target: "pdf_output/b.pdf", Status: "failed", Error: "unexpected status 500", Duration: "3ms"},
		},
	}

	require.NoError(t, WriteReport(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "url: https://site.test/a/")
	assert.Contains(t, string(data), "error: unexpected status 500")

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, 1, raw["converted"])
	assert.Equal(t, 1, raw["failed"])
	entries, ok := raw["entries"].([]any)
	require.True(t, ok)
	assert.Len(t, entries, 2)
	_, hasErr := entries[0].(map[string]any)["error"]
	assert.False(t, hasErr, "successful entries omit the error key")
	failed := entries[1].(map[string]any)
	assert.Equal(t, "pdf_output/b.pdf", failed["target"])
	_, hasPath := failed["path"]
	assert.False(t, hasPath, "failed entries omit the path key")
}
