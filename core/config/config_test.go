package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "sitemap.xml", cfg.SitemapPath)
	assert.Equal(t, "urls.txt", cfg.URLsPath)
	assert.Equal(t, "pdf_output", cfg.OutputDir)
	assert.Equal(t, "chromium", cfg.Engine)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.ReportPath)
	assert.NotEmpty(t, cfg.UserAgent)
}

func TestParse_Environment(t *testing.T) {
	t.Setenv("SITEPDF_SITEMAP", "in/site.xml")
	t.Setenv("SITEPDF_OUTPUT_DIR", "out")
	t.Setenv("SITEPDF_ENGINE", "native")
	t.Setenv("SITEPDF_TIMEOUT", "0s")
	t.Setenv("SITEPDF_REPORT", "report.yaml")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "in/site.xml", cfg.SitemapPath)
	assert.Equal(t, "urls.txt", cfg.URLsPath)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "native", cfg.Engine)
	assert.Zero(t, cfg.Timeout)
	assert.Equal(t, "report.yaml", cfg.ReportPath)
}

func TestParse_InvalidTimeout(t *testing.T) {
	for _, v := range []string{"soon", "-5s"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("SITEPDF_TIMEOUT", v)
			_, err := Parse()
			require.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SITEPDF_URLS=list.txt\n"), 0o644))
	t.Chdir(dir)
	// godotenv sets variables directly; restore afterwards.
	t.Setenv("SITEPDF_URLS", "")
	os.Unsetenv("SITEPDF_URLS")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "list.txt", cfg.URLsPath)
}

func TestLoad_WithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "urls.txt", cfg.URLsPath)
}
