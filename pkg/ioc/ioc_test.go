package ioc_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/womat/debug"
	"stmcraft/pkg/ioc"
)

func TestMain(m *testing.M) {
	debug.SetDebug(os.Stderr, debug.Standard)
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// TestExtract - Section scanning
// ---------------------------------------------------------------------------

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name: "lines until next section",
			input: "[Mcu]\nName=STM32F103\n" +
				"[PinConfiguration]\n  PA0=GPIO_Output,High \n\nPA1=GPIO_Input\n" +
				"[RCC]\nHSE=8000000\n",
			want: []string{"PA0=GPIO_Output,High", "PA1=GPIO_Input"},
		},
		{
			name: "stops at first header and ignores later occurrences",
			input: "[PinConfiguration]\nPA0=GPIO_Output\n[Other]\nX=1\n" +
				"[PinConfiguration]\nPB0=GPIO_Input\n",
			want: []string{"PA0=GPIO_Output"},
		},
		{
			name:  "section at end of file",
			input: "[PinConfiguration]\nPC13=GPIO_Output,Low\r\nPC14=RCC_OSC32_IN\n",
			want:  []string{"PC13=GPIO_Output,Low", "PC14=RCC_OSC32_IN"},
		},
		{
			name:  "immediately followed by another header",
			input: "[PinConfiguration]\n[Other]\nPA0=GPIO_Output\n",
			want:  []string{},
		},
		{
			name:  "section absent",
			input: "[Mcu]\nPA0=GPIO_Output\n",
			want:  []string{},
		},
		{
			name:  "indented header",
			input: "  [PinConfiguration]  \nPA0=GPIO_Analog\n",
			want:  []string{"PA0=GPIO_Analog"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ioc.Extract(strings.NewReader(tt.input), ioc.DefaultSection)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "board.ioc")
	if err := os.WriteFile(path, []byte("[PinConfiguration]\nPA5=GPIO_Output\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ioc.ExtractFile(path, ioc.DefaultSection)
	if err != nil {
		t.Fatalf("ExtractFile() error = %v", err)
	}
	if !slices.Equal(got, []string{"PA5=GPIO_Output"}) {
		t.Errorf("ExtractFile() = %q", got)
	}

	_, err = ioc.ExtractFile(filepath.Join(dir, "missing.ioc"), ioc.DefaultSection)
	if !errors.Is(err, ioc.ErrSourceNotFound) {
		t.Errorf("ExtractFile(missing) error = %v, want %v", err, ioc.ErrSourceNotFound)
	}
}

// ---------------------------------------------------------------------------
// TestParseLine - Row formatting
// ---------------------------------------------------------------------------

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want ioc.Row
	}{
		{
			name: "mode and settings",
			line: "PA0=GPIO_Output,High,PullUp",
			want: ioc.Row{Pin: "PA0", Mode: "GPIO_Output", Additional: "High, PullUp"},
		},
		{
			name: "mode only",
			line: "PA1=GPIO_Input",
			want: ioc.Row{Pin: "PA1", Mode: "GPIO_Input", Additional: ioc.NotAvailable},
		},
		{
			name: "empty value",
			line: "PA2=",
			want: ioc.Row{Pin: "PA2", Mode: "", Additional: ioc.NotAvailable},
		},
		{
			name: "split on first separator only",
			line: "PA3=Mode=X,Y",
			want: ioc.Row{Pin: "PA3", Mode: "Mode=X", Additional: "Y"},
		},
		{
			name: "empty settings kept",
			line: "PA4=GPIO_Output,,Low",
			want: ioc.Row{Pin: "PA4", Mode: "GPIO_Output", Additional: ", Low"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ioc.ParseLine(tt.line)
			if err != nil {
				t.Fatalf("ParseLine(%q) error = %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseLineMalformed(t *testing.T) {
	t.Parallel()

	_, err := ioc.ParseLine("PA0 GPIO_Output")
	if !errors.Is(err, ioc.ErrMalformedLine) {
		t.Fatalf("ParseLine() error = %v, want %v", err, ioc.ErrMalformedLine)
	}

	var le *ioc.LineError
	if !errors.As(err, &le) || le.Text != "PA0 GPIO_Output" {
		t.Errorf("ParseLine() error = %#v, want *LineError with text", err)
	}
}

// ---------------------------------------------------------------------------
// TestParseLines - Malformed line policy
// ---------------------------------------------------------------------------

func TestParseLines(t *testing.T) {
	t.Parallel()

	lines := []string{"PA0=GPIO_Output", "garbage", "PA1=GPIO_Input,Low"}

	t.Run("fail", func(t *testing.T) {
		t.Parallel()

		_, err := ioc.ParseLines(lines, false)
		var le *ioc.LineError
		if !errors.As(err, &le) {
			t.Fatalf("ParseLines() error = %v, want *LineError", err)
		}
		if le.Line != 2 {
			t.Errorf("LineError.Line = %d, want 2", le.Line)
		}
	})

	t.Run("skip", func(t *testing.T) {
		t.Parallel()

		rows, err := ioc.ParseLines(lines, true)
		if err != nil {
			t.Fatalf("ParseLines() error = %v", err)
		}

		want := []ioc.Row{
			{Pin: "PA0", Mode: "GPIO_Output", Additional: ioc.NotAvailable},
			{Pin: "PA1", Mode: "GPIO_Input", Additional: "Low"},
		}
		if !slices.Equal(rows, want) {
			t.Errorf("ParseLines() = %+v, want %+v", rows, want)
		}
	})
}
