// Command sitepdf renders the pages listed in an XML sitemap as PDF files.
package main

import "github.com/gaurav-prasanna/sitepdf/cmd"

func main() {
	cmd.Execute()
}
