package output

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// ReportEntry is one URL's line in a conversion report.
type ReportEntry struct {
	URL      string `yaml:"url"`
	Target   string `yaml:"target,omitempty"`
	Path     string `yaml:"path,omitempty"`
	Status   string `yaml:"status"`
	Error    string `yaml:"error,omitempty"`
	Duration string `yaml:"duration"`
}

// Report is the document written by WriteReport.
type Report struct {
	GeneratedAt time.Time     `yaml:"generated_at"`
	OutputDir   string        `yaml:"output_dir"`
	Converted   int           `yaml:"converted"`
	Failed      int           `yaml:"failed"`
	Entries     []ReportEntry `yaml:"entries"`
}

// WriteReport marshals r as YAML to path, replacing any existing file.
func WriteReport(path string, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
