package render

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	e, err := New("native", Options{})
	require.NoError(t, err)
	assert.IsType(t, &NativeEngine{}, e)

	e, err = New(" Chromium ", Options{BrowserPath: "/opt/chrome", UserAgent: "ua"})
	require.NoError(t, err)
	chromium, ok := e.(*ChromiumEngine)
	require.True(t, ok)
	assert.Equal(t, "/opt/chrome", chromium.BrowserPath)
	assert.True(t, chromium.Headless)
	// Nothing is started until the first Render.
	assert.NoError(t, chromium.Close())

	_, err = New("weasyprint", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownEngine)
}

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/docs/guide/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html lang="en"><head><title>Guide</title></head><body>
<nav>menu</nav><main><h1>Guide</h1><p>Read <a href="/docs/more">more</a>.</p>
<pre><code>go run .</code></pre></main></body></html>`))
	})
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/guide/", http.StatusFound)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestNativeEngine_Render(t *testing.T) {
	ts := newSite(t)
	e := NewNativeEngine(Options{})
	defer e.Close()

	for _, path := range []string{"/docs/guide/", "/old"} {
		data, err := e.Render(context.Background(), ts.URL+path)
		require.NoError(t, err, path)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), path)
	}
}

func TestNativeEngine_HTTPError(t *testing.T) {
	ts := newSite(t)

	_, err := NewNativeEngine(Options{}).Render(context.Background(), ts.URL+"/broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func findBrowser() string {
	for _, name := range []string{"headless-shell", "chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

func TestChromiumEngine_Render(t *testing.T) {
	browser := findBrowser()
	if browser == "" {
		t.Skip("no Chromium binary on PATH")
	}
	ts := newSite(t)

	e := NewChromiumEngine(Options{BrowserPath: browser})
	defer e.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	data, err := e.Render(ctx, ts.URL+"/old")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	_, err = e.Render(ctx, ts.URL+"/broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestChromiumEngine_LaunchesBrowserOnce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the browser")
	}
	dir := t.TempDir()
	launches := filepath.Join(dir, "launches.log")
	fakeBrowser := filepath.Join(dir, "fake-chrome")
	script := "#!/bin/sh\necho launch >> '" + launches + "'\nexit 1\n"
	require.NoError(t, os.WriteFile(fakeBrowser, []byte(script), 0o755))

	e := NewChromiumEngine(Options{BrowserPath: fakeBrowser})
	defer e.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for i := 0; i < 3; i++ {
		_, err := e.Render(ctx, "https://site.test/page")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "starting chromium")
	}

	data, err := os.ReadFile(launches)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "launch"))
}

func TestPrintParams(t *testing.T) {
	p := printParams()
	assert.True(t, p.PrintBackground)
	assert.Equal(t, a4WidthInches, p.PaperWidth)
	assert.Equal(t, a4HeightInches, p.PaperHeight)
	assert.Equal(t, defaultMargin, p.MarginLeft)
}
