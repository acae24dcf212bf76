package ws2812

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/womat/debug"
	"stmcraft/pkg/port"
)

const (
	// BitsPerLED is the size of one green, red, blue data word.
	BitsPerLED = 24
	// bitsPerChannel is the size of one color channel.
	bitsPerChannel = 8
)

// Bit is a decoded data bit (0 or 1).
type Bit uint8

// RGB is the color of a single LED as it is sent on the wire.
type RGB struct {
	Green uint8 `json:"green"`
	Red   uint8 `json:"red"`
	Blue  uint8 `json:"blue"`
}

// Durations yields the time between each event and its predecessor.
// The first event has no predecessor and yields nothing.
func Durations(events []port.Event) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for i := 1; i < len(events); i++ {
			if !yield(events[i].Timestamp - events[i-1].Timestamp) {
				return
			}
		}
	}
}

// HighDurations yields only the durations of phases in which the line was high,
// i.e. the intervals starting at an event with level High.
func HighDurations(events []port.Event) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for i := 1; i < len(events); i++ {
			if events[i-1].Level != port.High {
				continue
			}
			if !yield(events[i].Timestamp - events[i-1].Timestamp) {
				return
			}
		}
	}
}

// Pulses classifies every duration.
func Pulses(durations iter.Seq[float64]) iter.Seq[Pulse] {
	return func(yield func(Pulse) bool) {
		for d := range durations {
			if !yield(Classify(d)) {
				return
			}
		}
	}
}

// Bits yields 0 for T0H, 1 for T1H and drops every other pulse.
// Low pulses, reset gaps and unknown durations carry no data.
func Bits(pulses iter.Seq[Pulse]) iter.Seq[Bit] {
	return func(yield func(Bit) bool) {
		for p := range pulses {
			var b Bit
			switch p {
			case T0H:
				b = 0
			case T1H:
				b = 1
			default:
				continue
			}

			if !yield(b) {
				return
			}
		}
	}
}

// Assemble groups bits into 24 bit words starting at index 0 and decodes each
// word MSB first in the order green, red, blue. A trailing incomplete word is dropped.
func Assemble(bits []Bit) []RGB {
	leds := make([]RGB, 0, len(bits)/BitsPerLED)

	for i := 0; i+BitsPerLED <= len(bits); i += BitsPerLED {
		word := bits[i : i+BitsPerLED]
		leds = append(leds, RGB{
			Green: channel(word[0:8]),
			Red:   channel(word[8:16]),
			Blue:  channel(word[16:24]),
		})
	}

	return leds
}

// channel converts 8 bits, MSB first, to a byte.
func channel(bits []Bit) (v uint8) {
	for _, b := range bits[:bitsPerChannel] {
		v = v<<1 | uint8(b&1)
	}
	return v
}

// Decode classifies the duration between every pair of consecutive events,
// regardless of the line level, and assembles the resulting bits.
func Decode(events []port.Event) []RGB {
	return decode(Durations(events))
}

// DecodeHigh is Decode restricted to the high phases of the line.
// The events must carry the line level.
func DecodeHigh(events []port.Event) []RGB {
	return decode(HighDurations(events))
}

func decode(durations iter.Seq[float64]) []RGB {
	var stats Stats
	pulses := stats.Count(Pulses(durations))
	bits := slices.Collect(Bits(pulses))

	debug.DebugLog.Printf("pulses: %v", stats)
	debug.DebugLog.Printf("bits: %d, leds: %d, dropped trailing bits: %d", len(bits), len(bits)/BitsPerLED, len(bits)%BitsPerLED)

	return Assemble(bits)
}

// Stats counts classified pulses per type.
type Stats map[Pulse]int

// Count passes pulses through unchanged and counts them.
func (s *Stats) Count(pulses iter.Seq[Pulse]) iter.Seq[Pulse] {
	if *s == nil {
		*s = Stats{}
	}

	return func(yield func(Pulse) bool) {
		for p := range pulses {
			(*s)[p]++
			if !yield(p) {
				return
			}
		}
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("T0H=%d T1H=%d T0L=%d T1L=%d RES=%d UNKNOWN=%d",
		s[T0H], s[T1H], s[T0L], s[T1L], s[RES], s[Unknown])
}

// Print writes one line per LED, numbered from 1.
func Print(w io.Writer, leds []RGB) error {
	for i, led := range leds {
		if _, err := fmt.Fprintf(w, "LED %d: Green=%d, Red=%d, Blue=%d\n", i+1, led.Green, led.Red, led.Blue); err != nil {
			return err
		}
	}
	return nil
}
