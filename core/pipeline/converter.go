// Package pipeline runs the URL list through an engine, one URL at a time.
// A failing URL is logged and recorded; it never stops the batch.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gaurav-prasanna/sitepdf/core"
	"github.com/gaurav-prasanna/sitepdf/core/output"
	"github.com/gaurav-prasanna/sitepdf/crawl"
	"github.com/sirupsen/logrus"
)

// Result is the outcome of converting a single URL.
type Result struct {
	URL      string
	Target   string // where the PDF goes, set once the filename is derived
	Path     string // set only after the PDF is written
	Err      error
	Duration time.Duration
}

// OK reports whether the URL was converted.
func (r Result) OK() bool {
	return r.Err == nil
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Converted int
	Failed    int
}

// Total returns the number of URLs processed.
func (s Summary) Total() int {
	return s.Converted + s.Failed
}

// Converter renders URLs with Engine and stores them through Writer.
type Converter struct {
	Engine core.Engine
	Writer *output.Writer
	// Timeout bounds each URL; zero leaves a slow page free to block the batch.
	Timeout time.Duration

	log logrus.FieldLogger
}

// Option configures a Converter.
type Option func(*Converter)

// WithTimeout sets the per-URL timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) { c.Timeout = d }
}

// WithLogger sets the logger used for status lines.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Converter) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Converter. Status lines are discarded unless WithLogger is given.
func New(engine core.Engine, writer *output.Writer, opts ...Option) *Converter {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Converter{Engine: engine, Writer: writer, log: discard}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertFile reads the URL list at urlsPath and converts every line.
// Only a failure to read the list is returned as an error.
func (c *Converter) ConvertFile(ctx context.Context, urlsPath string) ([]Result, Summary, error) {
	urls, err := crawl.ReadURLList(urlsPath)
	if err != nil {
		return nil, Summary{}, err
	}
	results, summary := c.Run(ctx, urls)
	return results, summary, nil
}

// Run converts urls in order. Every URL gets a Result; if ctx is cancelled
// the batch stops before the next URL.
func (c *Converter) Run(ctx context.Context, urls []string) ([]Result, Summary) {
	results := make([]Result, 0, len(urls))
	var summary Summary

	for i, rawURL := range urls {
		if err := ctx.Err(); err != nil {
			c.log.Warnf("Batch interrupted after %d of %d URLs: %v", i, len(urls), err)
			break
		}

		res := c.convert(ctx, rawURL)
		results = append(results, res)
		if res.OK() {
			summary.Converted++
			c.log.Infof("Converted %s to %s", rawURL, res.Path)
			continue
		}
		summary.Failed++
		c.log.WithField("url", rawURL).Errorf("Error processing %s: %v", rawURL, res.Err)
	}

	c.log.Infof("%d converted, %d failed (total %d)", summary.Converted, summary.Failed, summary.Total())
	return results, summary
}

// convert handles one URL. Engine panics are turned into the URL's error.
func (c *Converter) convert(ctx context.Context, rawURL string) (res Result) {
	res.URL = rawURL
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res.Err = fmt.Errorf("engine panic: %v", p)
		}
		res.Duration = time.Since(start)
	}()

	name, err := output.FilenameFromURL(rawURL)
	if err != nil {
		res.Err = err
		return res
	}
	res.Target = c.Writer.Path(name)

	renderCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	data, err := c.Engine.Render(renderCtx, rawURL)
	if err != nil {
		res.Err = err
		return res
	}

	path, err := c.Writer.Write(name, data)
	if err != nil {
		res.Err = err
		return res
	}
	res.Path = path
	return res
}

// Report turns results into the document written by output.WriteReport.
func (c *Converter) Report(results []Result, summary Summary) output.Report {
	report := output.Report{
		GeneratedAt: time.Now().UTC(),
		OutputDir:   c.Writer.OutputDir,
		Converted:   summary.Converted,
		Failed:      summary.Failed,
		Entries:     make([]output.ReportEntry, 0, len(results)),
	}
	for _, r := range results {
		entry := output.ReportEntry{
			URL:      r.URL,
			Target:   r.Target,
			Path:     r.Path,
			Status:   "converted",
			Duration: r.Duration.Round(time.Millisecond).String(),
		}
		if r.Err != nil {
			entry.Status = "failed"
			entry.Error = r.Err.Error()
		}
		report.Entries = append(report.Entries, entry)
	}
	return report
}
