// Package render — native engine.
// Runs a URL through fetch → extract → normalize → PDF layout without a browser.
package render

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gaurav-prasanna/sitepdf/core"
	"github.com/gaurav-prasanna/sitepdf/core/extract"
	"github.com/gaurav-prasanna/sitepdf/core/fetch"
	"github.com/gaurav-prasanna/sitepdf/core/normalize"
	"github.com/sirupsen/logrus"
)

// NativeEngine renders pages in pure Go. Layout is simplified: the main
// content is reduced to Markdown and typeset with gofpdf.
type NativeEngine struct {
	Fetcher    core.Fetcher
	Extractor  core.Extractor
	Normalizer core.Normalizer
	Renderer   core.Renderer

	log logrus.FieldLogger
}

// NewNativeEngine wires the default pipeline stages.
func NewNativeEngine(opts Options) *NativeEngine {
	return &NativeEngine{
		Fetcher:    fetch.New(fetch.WithUserAgent(opts.UserAgent)),
		Extractor:  extract.New(),
		Normalizer: normalize.New(),
		Renderer:   NewPDFRenderer(),
		log:        opts.logger(),
	}
}

// Render fetches rawURL and returns the laid-out PDF.
func (e *NativeEngine) Render(ctx context.Context, rawURL string) ([]byte, error) {
	result, err := e.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	e.log.WithField("url", rawURL).Debugf("fetched %d bytes (status %d)", len(result.HTML), result.StatusCode)

	content, err := e.Extractor.Extract(result.HTML)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	markdown, err := e.Normalizer.Normalize(content, domainOf(result.URL))
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	meta := extract.Metadata(result.URL, result.HTML)
	data, err := e.Renderer.Render(markdown, meta)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return data, nil
}

// Close is a no-op; the native engine holds no external resources.
func (e *NativeEngine) Close() error {
	return nil
}

// domainOf returns "scheme://host" for rawURL, or "" when it has no host.
func domainOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
