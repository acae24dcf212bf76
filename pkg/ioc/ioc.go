// Package ioc reads the pin configuration of an STM32CubeMX project file.
//
// The project file is organized into bracketed sections. Only the lines of a
// single section are collected, and each line has the form
// name=mode[,setting]*.
package ioc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/womat/debug"
)

const (
	// DefaultSection is the section holding the pin configuration.
	DefaultSection = "PinConfiguration"
	// NotAvailable is shown for missing mode or settings.
	NotAvailable = "N/A"

	// maxLineSize limits a single line of the project file.
	maxLineSize = 1 << 20
)

var (
	ErrSourceNotFound = errors.New("source file does not exist")
	ErrEmptySection   = errors.New("no pin configurations found")
	ErrMalformedLine  = errors.New("malformed configuration line")
)

// LineError reports a configuration line without a name/value separator.
type LineError struct {
	// Line is the 1-based position of the line within the section.
	Line int
	Text string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s %d %q: missing '='", ErrMalformedLine, e.Line, e.Text)
}

func (e *LineError) Unwrap() error { return ErrMalformedLine }

// Row is one formatted pin configuration.
type Row struct {
	Pin        string `json:"pin"`
	Mode       string `json:"mode"`
	Additional string `json:"additional"`
}

// ExtractFile opens path and returns the lines of section.
func ExtractFile(path, section string) ([]string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return Extract(file, section)
}

// Extract returns the non-empty, trimmed lines following the [section] header.
// Collection stops at the next line starting with '[', later occurrences of
// the header are not searched for.
func Extract(r io.Reader, section string) ([]string, error) {
	header := "[" + section + "]"
	lines := []string{}
	inSection := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == header {
			inSection = true
			continue
		}

		if !inSection {
			continue
		}

		if strings.HasPrefix(line, "[") {
			break
		}

		if line != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	debug.DebugLog.Printf("%d lines found in section %s", len(lines), header)
	return lines, nil
}

// ParseLine splits a configuration line into pin name, mode and additional settings.
func ParseLine(line string) (Row, error) {
	name, rest, ok := strings.Cut(line, "=")
	if !ok {
		return Row{}, &LineError{Text: line}
	}

	details := strings.Split(rest, ",")
	row := Row{Pin: name, Mode: NotAvailable, Additional: NotAvailable}

	if len(details) > 0 {
		row.Mode = details[0]
	}
	if len(details) > 1 {
		row.Additional = strings.Join(details[1:], ", ")
	}

	return row, nil
}

// ParseLines formats all lines in order.
// A malformed line aborts with a *LineError unless skipMalformed is set,
// in which case the line is logged and left out.
func ParseLines(lines []string, skipMalformed bool) ([]Row, error) {
	rows := make([]Row, 0, len(lines))

	for i, line := range lines {
		row, err := ParseLine(line)
		if err != nil {
			var le *LineError
			if errors.As(err, &le) {
				le.Line = i + 1
			}

			if skipMalformed {
				debug.ErrorLog.Printf("skipping %v", err)
				continue
			}
			return nil, err
		}

		rows = append(rows, row)
	}

	return rows, nil
}
