// Package capture reads and writes logic analyzer captures of a digital line.
//
// A capture is a CSV export with one row per transition, e.g.
//
//	Time [s],Channel 0
//	0.000000000,1
//	0.000000400,0
package capture

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/womat/debug"
	"stmcraft/pkg/port"
)

// DefaultTimeColumn is the header of the time column in logic analyzer exports.
const DefaultTimeColumn = "Time [s]"

// defaultLevelColumn is the header written by WriteCSV.
const defaultLevelColumn = "Channel 0"

var (
	ErrNoTimeColumn     = errors.New("time column not found")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrEmptyCapture     = errors.New("capture contains no samples")
	ErrUnsupported      = errors.New("live capture is not supported on this platform")
)

// ReadFile reads a CSV capture from path.
func ReadFile(path, timeColumn string) ([]port.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	events, err := ReadCSV(file, timeColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

// ReadCSV reads a CSV capture. The time column is located by its header name;
// the first other column, if any, is taken as the line level.
func ReadCSV(r io.Reader, timeColumn string) ([]port.Event, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	head, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCapture
	}
	if err != nil {
		return nil, err
	}

	timeIx, levelIx := -1, -1
	for i, h := range head {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case h == timeColumn && timeIx < 0:
			timeIx = i
		case levelIx < 0:
			levelIx = i
		}
	}
	if timeIx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoTimeColumn, timeColumn)
	}

	var events []port.Event
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if timeIx >= len(record) {
			return nil, fmt.Errorf("%w: row %d has no time value", ErrInvalidTimestamp, row)
		}

		ts, err := strconv.ParseFloat(strings.TrimSpace(record[timeIx]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %q", ErrInvalidTimestamp, row, record[timeIx])
		}

		level := port.Invalid
		if levelIx >= 0 && levelIx < len(record) {
			level = parseLevel(record[levelIx])
		}

		events = append(events, port.Event{Timestamp: ts, Level: level})
	}

	if len(events) == 0 {
		return nil, ErrEmptyCapture
	}

	debug.DebugLog.Printf("%d samples read, %.9fs to %.9fs", len(events), events[0].Timestamp, events[len(events)-1].Timestamp)
	return events, nil
}

func parseLevel(s string) port.StateType {
	switch strings.TrimSpace(s) {
	case "1":
		return port.High
	case "0":
		return port.Low
	default:
		return port.Invalid
	}
}

// WriteCSV writes events as a capture with nanosecond resolution.
func WriteCSV(w io.Writer, timeColumn string, events []port.Event) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{timeColumn, defaultLevelColumn}); err != nil {
		return err
	}

	for _, e := range events {
		if err := writer.Write([]string{strconv.FormatFloat(e.Timestamp, 'f', 9, 64), e.Level.String()}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes events as a capture to path.
func WriteFile(path, timeColumn string, events []port.Event) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if e := file.Close(); err == nil {
			err = e
		}
	}()

	return WriteCSV(file, timeColumn, events)
}
