package pintable_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"stmcraft/pkg/ioc"
	"stmcraft/pkg/pintable"
)

var rows = []ioc.Row{
	{Pin: "PA0", Mode: "GPIO_Output", Additional: "High, PullUp"},
	{Pin: "PA1", Mode: "GPIO_Input", Additional: "N/A"},
	{Pin: "PC13", Mode: "GPIO_Output", Additional: "Low"},
}

// ---------------------------------------------------------------------------
// TestWrite - Document layout
// ---------------------------------------------------------------------------

func TestWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := pintable.Write(&buf, pintable.DefaultTitle, rows[:2]); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "# STM32 Pin Configuration Summary\n\n" +
		"| Pin Name | Mode | Additional Settings |\n" +
		"|----------|------|---------------------|\n" +
		"| PA0 | GPIO_Output | High, PullUp |\n" +
		"| PA1 | GPIO_Input | N/A |\n"

	if buf.String() != want {
		t.Errorf("Write() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteEmpty(t *testing.T) {
	t.Parallel()

	got := string(pintable.Markdown("Empty", nil))
	if lines := strings.Count(got, "\n"); lines != 4 {
		t.Errorf("Markdown(nil) has %d lines, want 4:\n%s", lines, got)
	}
}

// ---------------------------------------------------------------------------
// TestMarkdownTable - Generated table parses back with N data rows in order
// ---------------------------------------------------------------------------

func TestMarkdownTable(t *testing.T) {
	t.Parallel()

	src := pintable.Markdown(pintable.DefaultTitle, rows)

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(src))

	var headers, dataRows int
	var firstCells []string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case east.KindTableHeader:
			headers++
		case east.KindTableRow:
			dataRows++
			firstCells = append(firstCells, string(n.FirstChild().Text(src)))
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if headers != 1 {
		t.Errorf("table headers = %d, want 1", headers)
	}
	if dataRows != len(rows) {
		t.Errorf("table rows = %d, want %d", dataRows, len(rows))
	}
	for i, r := range rows {
		if i < len(firstCells) && firstCells[i] != r.Pin {
			t.Errorf("row %d pin = %q, want %q", i, firstCells[i], r.Pin)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWriteFile - Directories and idempotence
// ---------------------------------------------------------------------------

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "documentation", "pin_config", "PinConfigurationSummary.md")

	if err := pintable.WriteFile(path, pintable.DefaultTitle, rows); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := pintable.WriteFile(path, pintable.DefaultTitle, rows); err != nil {
		t.Fatalf("second WriteFile() error = %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("second run produced different content")
	}
	if !bytes.Equal(first, pintable.Markdown(pintable.DefaultTitle, rows)) {
		t.Error("file content differs from Markdown()")
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "summary.md")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), 4096), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := pintable.WriteFile(path, "T", rows[:1]); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	if strings.Contains(string(got), "xxx") {
		t.Error("old content not replaced")
	}
}

// ---------------------------------------------------------------------------
// TestRenderHTML
// ---------------------------------------------------------------------------

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "html", "summary.html")
	if err := pintable.WriteHTMLFile(path, pintable.DefaultTitle, rows); err != nil {
		t.Fatalf("WriteHTMLFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"<h1>STM32 Pin Configuration Summary</h1>", "<table>", "<th>Pin Name</th>", "<td>PC13</td>"} {
		if !strings.Contains(string(got), want) {
			t.Errorf("html missing %q:\n%s", want, got)
		}
	}
	if n := strings.Count(string(got), "<tr>"); n != len(rows)+1 {
		t.Errorf("html has %d <tr>, want %d", n, len(rows)+1)
	}
}
