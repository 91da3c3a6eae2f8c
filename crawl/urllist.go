package crawl

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// WriteURLList writes urls to path, each followed by "\n". The file is
// created or truncated.
func WriteURLList(path string, urls []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating URL list: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, u := range urls {
		w.WriteString(u)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing URL list %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing URL list %s: %w", path, err)
	}
	return nil
}

// ReadURLList returns the lines of the file at path. A final newline does
// not produce an extra entry; "\r\n" and "\r" endings are accepted. Blank
// lines are kept verbatim so the converter can report them.
func ReadURLList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading URL list: %w", err)
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits text into lines without their terminators.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
