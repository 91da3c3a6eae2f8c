// Package crawl reads sitemaps and the URL lists derived from them.
// Only <loc> elements in the sitemap protocol namespace are collected;
// everything else in the document (lastmod, priority, foreign namespaces)
// is ignored.
package crawl

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// Namespace is the sitemap protocol XML namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

var (
	// ErrEmptyLoc is returned when a <loc> element has no text.
	// Whitespace-only text counts as empty.
	ErrEmptyLoc = errors.New("empty <loc> element")
	// ErrNoRoot is returned for a document without any element.
	ErrNoRoot = errors.New("no root element")
	// ErrOutsideRoot is returned for elements or text outside the single
	// document element.
	ErrOutsideRoot = errors.New("content outside document element")
)

// ExtractURLs returns the trimmed text of every namespaced <loc> element
// in document order, at any depth. Documents with no element in the
// namespace yield an empty list and no error.
func ExtractURLs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		urls       []string
		depth      int
		sawRoot    bool
		rootClosed bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing sitemap: %w", err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				where := "before"
				if rootClosed {
					where = "after"
				}
				line, _ := dec.InputPos()
				return nil, fmt.Errorf("parsing sitemap: %w: text %s root (line %d)", ErrOutsideRoot, where, line)
			}
		case xml.EndElement:
			depth--
			if depth == 0 {
				rootClosed = true
			}
		case xml.StartElement:
			if rootClosed {
				line, _ := dec.InputPos()
				return nil, fmt.Errorf("parsing sitemap: %w: element <%s> after root (line %d)", ErrOutsideRoot, t.Name.Local, line)
			}
			sawRoot = true
			if t.Name.Space != Namespace || t.Name.Local != "loc" {
				depth++
				continue
			}

			// DecodeElement consumes the matching end element.
			var text string
			if err := dec.DecodeElement(&text, &t); err != nil {
				return nil, fmt.Errorf("parsing sitemap: %w", err)
			}
			if depth == 0 {
				rootClosed = true
			}
			loc := strings.TrimSpace(text)
			if loc == "" {
				line, _ := dec.InputPos()
				return nil, fmt.Errorf("%w (entry %d, line %d)", ErrEmptyLoc, len(urls)+1, line)
			}
			urls = append(urls, loc)
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("parsing sitemap: %w", ErrNoRoot)
	}
	return urls, nil
}

// ExtractFile reads the sitemap at sitemapPath and writes its URLs to
// urlsPath, one per line, replacing any previous list. It returns the number
// of URLs written.
func ExtractFile(sitemapPath, urlsPath string) (int, error) {
	f, err := os.Open(sitemapPath)
	if err != nil {
		return 0, fmt.Errorf("opening sitemap: %w", err)
	}
	defer f.Close()

	urls, err := ExtractURLs(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", sitemapPath, err)
	}

	if err := WriteURLList(urlsPath, urls); err != nil {
		return 0, err
	}
	return len(urls), nil
}
