// Package core defines the rendering interfaces for sitepdf.
// Each stage of the native engine is a small, testable interface; an Engine
// is anything that turns a URL into PDF bytes.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string // final URL after redirects
	StatusCode int
	HTML       string
}

// PageMetadata holds what the PDF header shows about a page.
type PageMetadata struct {
	URL   string
	Title string
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts cleaned HTML into Markdown. Relative links are
// resolved against domain (e.g. "https://example.com") when it is set.
type Normalizer interface {
	Normalize(html, domain string) (string, error)
}

// Renderer lays out Markdown (and metadata) as a PDF document.
type Renderer interface {
	Render(markdown string, meta PageMetadata) ([]byte, error)
}

// Engine fetches a URL and renders it as a complete PDF document.
type Engine interface {
	Render(ctx context.Context, url string) ([]byte, error)
	// Close releases any resources held by the engine (browser processes).
	Close() error
}
