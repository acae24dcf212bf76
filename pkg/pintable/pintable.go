// Package pintable renders pin configurations as a markdown table.
package pintable

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"stmcraft/pkg/ioc"
)

const (
	// DefaultTitle is the level-1 heading of the summary.
	DefaultTitle = "STM32 Pin Configuration Summary"

	header    = "| Pin Name | Mode | Additional Settings |\n"
	separator = "|----------|------|---------------------|\n"
)

// Markdown returns the summary document.
// Values are written as they are, a '|' inside a value breaks the table.
func Markdown(title string, rows []ioc.Row) []byte {
	var buf bytes.Buffer
	_ = Write(&buf, title, rows)
	return buf.Bytes()
}

// Write writes the summary document to w.
func Write(w io.Writer, title string, rows []ioc.Row) error {
	if _, err := fmt.Fprintf(w, "# %s\n\n%s%s", title, header, separator); err != nil {
		return err
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "| %s | %s | %s |\n", r.Pin, r.Mode, r.Additional); err != nil {
			return err
		}
	}

	return nil
}

// WriteFile writes the summary document to path, creating missing parent
// directories. An existing file is overwritten.
func WriteFile(path, title string, rows []ioc.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := os.WriteFile(path, Markdown(title, rows), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// RenderHTML converts a markdown document (with GitHub tables) to HTML.
func RenderHTML(markdown []byte, w io.Writer) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert(markdown, w); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}

// WriteHTMLFile renders the summary document as HTML to path.
func WriteHTMLFile(path, title string, rows []ioc.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var buf bytes.Buffer
	if err := RenderHTML(Markdown(title, rows), &buf); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
