// Package cmd implements the CLI commands for sitepdf using Cobra.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/gaurav-prasanna/sitepdf/core"
	"github.com/gaurav-prasanna/sitepdf/core/config"
	"github.com/gaurav-prasanna/sitepdf/core/render"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// app holds what the commands share once flags are parsed.
type app struct {
	cfg *config.Config
	log *logrus.Logger
	out io.Writer

	newEngine func(name string, opts render.Options) (core.Engine, error)
}

func newApp(out io.Writer) *app {
	return &app{out: out, newEngine: render.New}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sitepdf",
		Short: "sitepdf — render every page of a sitemap as a PDF",
		Long: `sitepdf extracts the <loc> URLs of an XML sitemap into a plain URL list,
then renders each URL to a PDF named after the last segment of its path.

Run without a subcommand to do both steps:
  sitepdf                      sitemap.xml → urls.txt → pdf_output/*.pdf
  sitepdf extract              only write the URL list
  sitepdf convert --engine native
                               only render the URL list

Settings can also come from SITEPDF_* environment variables or a .env file.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.runExtract(); err != nil {
				return err
			}
			return a.runConvert(cmd.Context())
		},
	}

	f := root.PersistentFlags()
	f.String("sitemap", "sitemap.xml", "Sitemap XML file to read")
	f.String("urls", "urls.txt", "URL list file written by extract and read by convert")
	f.String("output_dir", "pdf_output", "Directory for generated PDFs (created if missing)")
	f.String("engine", render.EngineChromium, "Rendering engine: chromium or native")
	f.Duration("timeout", 2*time.Minute, "Per-URL render timeout, 0 for none")
	f.String("report", "", "Write a YAML conversion report to this file")
	f.String("browser", "", "Chromium/Chrome executable (default: search PATH)")
	f.String("user_agent", "", "User-Agent sent when fetching pages")
	f.String("log_level", "info", "Log level: debug, info, warn, error")
	f.String("log_format", "text", "Log format: text or json")

	root.AddCommand(newExtractCmd(a), newConvertCmd(a))
	return root
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(newApp(os.Stdout)).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// setup loads configuration, lets explicitly set flags override it, and
// builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd.Flags(), cfg); err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel, cfg.LogFormat, a.out)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

func applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	strs := map[string]*string{
		"sitemap":    &cfg.SitemapPath,
		"urls":       &cfg.URLsPath,
		"output_dir": &cfg.OutputDir,
		"engine":     &cfg.Engine,
		"report":     &cfg.ReportPath,
		"browser":    &cfg.BrowserPath,
		"user_agent": &cfg.UserAgent,
		"log_level":  &cfg.LogLevel,
		"log_format": &cfg.LogFormat,
	}
	for name, dst := range strs {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if fs.Changed("timeout") {
		d, err := fs.GetDuration("timeout")
		if err != nil {
			return err
		}
		if d < 0 {
			return fmt.Errorf("--timeout must not be negative (got %s)", d)
		}
		cfg.Timeout = d
	}
	return nil
}
