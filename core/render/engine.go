// Package render provides the PDF engines for sitepdf.
// "chromium" drives a headless browser for full HTML layout; "native" is a
// pure-Go fallback built on gofpdf.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gaurav-prasanna/sitepdf/core"
	"github.com/sirupsen/logrus"
)

// Engine names accepted by New.
const (
	EngineChromium = "chromium"
	EngineNative   = "native"
)

// ErrUnknownEngine is returned by New for an unrecognized engine name.
var ErrUnknownEngine = errors.New("unknown engine")

// Options carries engine settings from the driver.
type Options struct {
	UserAgent   string
	BrowserPath string
	Logger      logrus.FieldLogger
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// New creates the engine with the given name.
func New(name string, opts Options) (core.Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case EngineChromium:
		return NewChromiumEngine(opts), nil
	case EngineNative:
		return NewNativeEngine(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownEngine, name, EngineChromium, EngineNative)
	}
}
