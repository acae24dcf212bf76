//go:build linux

package capture

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/warthog618/gpiod"
	"github.com/womat/debug"
	"stmcraft/pkg/port"
)

// eventBuffer is the number of edges buffered between the gpiod event handler and the collector.
const eventBuffer = 1 << 16

// GPIO watches both edges of a line for window and returns the edges in arrival order.
// Timestamps are the kernel event times relative to the first edge.
// Edges arriving while the buffer is full are dropped and logged.
func GPIO(chip string, offset int, window time.Duration) ([]port.Event, error) {
	c, err := gpiod.NewChip(chip)
	if err != nil {
		return nil, fmt.Errorf("can't open gpio chip %s: %w", chip, err)
	}
	defer func() { _ = c.Close() }()

	rx := make(chan gpiod.LineEvent, eventBuffer)
	var dropped atomic.Int64

	handler := func(evt gpiod.LineEvent) {
		select {
		case rx <- evt:
		default:
			dropped.Add(1)
		}
	}

	line, err := c.RequestLine(offset, gpiod.WithEventHandler(handler), gpiod.WithBothEdges, gpiod.AsInput)
	if err != nil {
		return nil, fmt.Errorf("can't request line %d: %w", offset, err)
	}

	debug.InfoLog.Printf("capturing %s line %d for %v", chip, offset, window)
	time.Sleep(window)

	// Close waits for a running event handler to return
	if err = line.Close(); err != nil {
		return nil, err
	}
	close(rx)

	if n := dropped.Load(); n > 0 {
		debug.ErrorLog.Printf("%d edges dropped, event buffer full", n)
	}

	var events []port.Event
	var start time.Duration
	for evt := range rx {
		if len(events) == 0 {
			start = evt.Timestamp
		}

		level := port.Low
		if evt.Type == gpiod.LineEventRisingEdge {
			level = port.High
		}

		events = append(events, port.Event{Timestamp: (evt.Timestamp - start).Seconds(), Level: level})
	}

	if len(events) == 0 {
		return nil, ErrEmptyCapture
	}

	debug.DebugLog.Printf("%d edges captured", len(events))
	return events, nil
}
