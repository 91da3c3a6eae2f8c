package cmd

import (
	"github.com/gaurav-prasanna/sitepdf/crawl"
	"github.com/spf13/cobra"
)

func newExtractCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Write the sitemap's <loc> URLs to the URL list",
		Long: `Extract parses the sitemap and writes every <loc> URL in the
http://www.sitemaps.org/schemas/sitemap/0.9 namespace to the URL list,
one per line, in document order. An existing list is replaced.

Examples:
  sitepdf extract
  sitepdf extract --sitemap site/sitemap.xml --urls site/urls.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract()
		},
	}
}

// runExtract is fatal on any error: a missing or malformed sitemap stops the run.
func (a *app) runExtract() error {
	n, err := crawl.ExtractFile(a.cfg.SitemapPath, a.cfg.URLsPath)
	if err != nil {
		return err
	}
	a.log.Infof("Extracted %d URLs and saved to %s", n, a.cfg.URLsPath)
	return nil
}
