package render

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// A4 in inches, the unit Page.printToPDF expects.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
	defaultMargin  = 0.4
)

// ChromiumEngine renders pages with a shared headless Chromium instance.
// The browser starts on the first Render and lives until Close.
type ChromiumEngine struct {
	BrowserPath string
	UserAgent   string
	Headless    bool

	log logrus.FieldLogger

	initOnce      sync.Once
	initErr       error
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewChromiumEngine creates a headless ChromiumEngine.
func NewChromiumEngine(opts Options) *ChromiumEngine {
	return &ChromiumEngine{
		BrowserPath: opts.BrowserPath,
		UserAgent:   opts.UserAgent,
		Headless:    true,
		log:         opts.logger(),
	}
}

// Render navigates a fresh tab to rawURL and prints it to PDF.
// HTTP error statuses on the main document are reported as errors.
func (e *ChromiumEngine) Render(ctx context.Context, rawURL string) ([]byte, error) {
	if e == nil {
		return nil, errors.New("chromium engine is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := e.ensureBrowser(); err != nil {
		return nil, fmt.Errorf("starting chromium: %w", err)
	}

	tabCtx, cancel := chromedp.NewContext(e.browserCtx)
	defer cancel()

	// Tie the tab to the caller's context so per-URL timeouts close it.
	execCtx, cancelReq := context.WithCancel(tabCtx)
	defer cancelReq()
	go func() {
		select {
		case <-ctx.Done():
			cancelReq()
		case <-execCtx.Done():
		}
	}()

	resp, err := chromedp.RunResponse(execCtx, chromedp.Navigate(rawURL))
	if err != nil {
		return nil, fmt.Errorf("navigating to %s: %w", rawURL, contextError(ctx, err))
	}
	if resp != nil && (resp.Status < 200 || resp.Status >= 400) {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.Status, rawURL)
	}

	var pdf []byte
	err = chromedp.Run(execCtx,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = printParams().Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("printing %s: %w", rawURL, contextError(ctx, err))
	}
	e.log.WithField("url", rawURL).Debugf("printed %d bytes", len(pdf))
	return pdf, nil
}

// Close releases Chromium resources if they have been initialized.
func (e *ChromiumEngine) Close() error {
	if e == nil {
		return nil
	}
	if e.browserCancel != nil {
		e.browserCancel()
	}
	if e.allocCancel != nil {
		e.allocCancel()
	}
	return nil
}

// ensureBrowser launches the shared browser once. Tabs created from
// browserCtx reuse it; a failed launch is remembered and not retried.
func (e *ChromiumEngine) ensureBrowser() error {
	e.initOnce.Do(func() {
		e.allocCtx, e.allocCancel = chromedp.NewExecAllocator(context.Background(), e.allocatorOptions()...)
		e.browserCtx, e.browserCancel = chromedp.NewContext(e.allocCtx)
		// Running with no actions starts the browser process.
		if err := chromedp.Run(e.browserCtx); err != nil {
			e.initErr = err
			return
		}
		e.log.Debugf("chromium started (path=%q headless=%t)", e.BrowserPath, e.Headless)
	})
	if e.initErr != nil {
		return e.initErr
	}
	if e.allocCtx == nil || e.browserCtx == nil {
		return errors.New("chromium allocator unavailable")
	}
	return nil
}

func (e *ChromiumEngine) allocatorOptions() []chromedp.ExecAllocatorOption {
	options := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if e.BrowserPath != "" {
		options = append(options, chromedp.ExecPath(e.BrowserPath))
	}
	if e.UserAgent != "" {
		options = append(options, chromedp.UserAgent(e.UserAgent))
	}
	return append(options, chromedp.Flag("headless", e.Headless))
}

func printParams() *page.PrintToPDFParams {
	return page.PrintToPDF().
		WithPrintBackground(true).
		WithPaperWidth(a4WidthInches).
		WithPaperHeight(a4HeightInches).
		WithMarginTop(defaultMargin).
		WithMarginBottom(defaultMargin).
		WithMarginLeft(defaultMargin).
		WithMarginRight(defaultMargin)
}

// contextError prefers the caller's deadline error over chromedp's generic
// "context canceled" so timeouts read as timeouts.
func contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
