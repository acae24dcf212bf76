// Package ws2812 decodes the single wire protocol of WS2812B LEDs.
//
// A capture of the data line is a list of edge timestamps. The time between
// two edges is classified against the nominal WS2812B timing table, high
// pulses of 0.4µs and 0.8µs carry a 0 and a 1 bit, and every 24 bits form
// the green, red and blue byte of one LED.
package ws2812

import "math"

// Pulse is the classification of a single pulse duration.
type Pulse int

const (
	// Unknown is a duration outside all timing windows.
	Unknown Pulse = iota
	// T0H is the high time of a 0 bit.
	T0H
	// T1H is the high time of a 1 bit.
	T1H
	// T0L is the low time of a 0 bit.
	T0L
	// T1L is the low time of a 1 bit.
	T1L
	// RES is the reset (latch) gap between two frames.
	RES
)

func (p Pulse) String() string {
	switch p {
	case T0H:
		return "T0H"
	case T1H:
		return "T1H"
	case T0L:
		return "T0L"
	case T1L:
		return "T1L"
	case RES:
		return "RES"
	default:
		return "UNKNOWN"
	}
}

// timing is one row of the timing table.
// A tolerance of 0 marks an open ended window: the duration must exceed expected.
type timing struct {
	pulse     Pulse
	expected  float64
	tolerance float64
}

// timings is evaluated in order, the first match wins.
// The T0H/T1L and T1H/T0L windows overlap, so the order matters.
var timings = []timing{
	{pulse: T0H, expected: 0.4e-6, tolerance: 0.15e-6},
	{pulse: T1H, expected: 0.8e-6, tolerance: 0.15e-6},
	{pulse: T0L, expected: 0.85e-6, tolerance: 0.15e-6},
	{pulse: T1L, expected: 0.45e-6, tolerance: 0.15e-6},
	{pulse: RES, expected: 50e-6},
}

// Classify maps a pulse duration in seconds to its pulse type.
// Windows are inclusive and compared in float64, so a duration on a window
// edge lands on whichever side the subtraction rounds to: 0.95e-6 is T0L
// and 0.25e-6 is T0H.
func Classify(seconds float64) Pulse {
	if math.IsNaN(seconds) {
		return Unknown
	}

	for _, t := range timings {
		if t.tolerance == 0 {
			if seconds > t.expected {
				return t.pulse
			}
			continue
		}

		if math.Abs(seconds-t.expected) <= t.tolerance {
			return t.pulse
		}
	}

	return Unknown
}

// Nominal returns the expected duration of p in seconds and false for Unknown.
func Nominal(p Pulse) (float64, bool) {
	for _, t := range timings {
		if t.pulse == p {
			return t.expected, true
		}
	}
	return 0, false
}
