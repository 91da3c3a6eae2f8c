package cmd

import (
	"context"
	"fmt"

	"github.com/gaurav-prasanna/sitepdf/core/output"
	"github.com/gaurav-prasanna/sitepdf/core/pipeline"
	"github.com/gaurav-prasanna/sitepdf/core/render"
	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "Render every URL in the URL list to a PDF",
		Long: `Convert reads the URL list and renders each URL to
<output_dir>/<last path segment>.pdf (index.pdf for root URLs).

URLs sharing a last path segment write the same file; the later one wins.
A URL that fails is logged and skipped, and the batch carries on.

Examples:
  sitepdf convert
  sitepdf convert --engine native --output_dir ./out
  sitepdf convert --timeout 30s --report report.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd.Context())
		},
	}
}

// runConvert only fails for setup problems (output directory, engine,
// URL list). Per-URL failures are logged by the pipeline.
func (a *app) runConvert(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	writer, err := output.New(a.cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	engine, err := a.newEngine(a.cfg.Engine, render.Options{
		UserAgent:   a.cfg.UserAgent,
		BrowserPath: a.cfg.BrowserPath,
		Logger:      a.log.WithField("engine", a.cfg.Engine),
	})
	if err != nil {
		return err
	}
	defer engine.Close()

	conv := pipeline.New(engine, writer,
		pipeline.WithTimeout(a.cfg.Timeout),
		pipeline.WithLogger(a.log),
	)
	results, summary, err := conv.ConvertFile(ctx, a.cfg.URLsPath)
	if err != nil {
		return err
	}

	if a.cfg.ReportPath != "" {
		if err := output.WriteReport(a.cfg.ReportPath, conv.Report(results, summary)); err != nil {
			return err
		}
		a.log.Infof("Report written to %s", a.cfg.ReportPath)
	}
	return nil
}
