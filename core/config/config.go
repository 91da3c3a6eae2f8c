// Package config loads sitepdf settings from the environment.
// Defaults reproduce the classic layout: sitemap.xml → urls.txt → pdf_output/.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the driver passes to the two stages.
type Config struct {
	SitemapPath string        `env:"SITEMAP" envDefault:"sitemap.xml"`
	URLsPath    string        `env:"URLS" envDefault:"urls.txt"`
	OutputDir   string        `env:"OUTPUT_DIR" envDefault:"pdf_output"`
	Engine      string        `env:"ENGINE" envDefault:"chromium"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"2m"` // per URL, 0 = unbounded
	UserAgent   string        `env:"USER_AGENT" envDefault:"sitepdf/1.0 (https://github.com/gaurav-prasanna/sitepdf)"`
	BrowserPath string        `env:"BROWSER_PATH"`
	ReportPath  string        `env:"REPORT"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"LOG_FORMAT" envDefault:"text"`
}

// EnvPrefix is prepended to every variable name in Config.
const EnvPrefix = "SITEPDF_"

// Load reads an optional .env file from the working directory and then parses
// SITEPDF_* variables over the defaults. A missing .env is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative (got %s)", cfg.Timeout)
	}
	return &cfg, nil
}
