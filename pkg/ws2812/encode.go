package ws2812

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"stmcraft/pkg/port"
)

// ResetGap is the low time appended after the last LED of a frame.
const ResetGap = 60e-6

// gamma is the exponent used by the controller firmware for color correction.
const gamma = 2.2

var ErrInvalidColor = errors.New("invalid color, want G,R,B with values 0-255")

// Encode returns the edges a controller drives to send leds, starting at 0s.
// Every bit is a high phase (T0H/T1H) followed by a low phase (T0L/T1L),
// the last low phase is stretched by ResetGap and closed by a rising edge.
func Encode(leds []RGB) []port.Event {
	if len(leds) == 0 {
		return nil
	}

	t0h, _ := Nominal(T0H)
	t1h, _ := Nominal(T1H)
	t0l, _ := Nominal(T0L)
	t1l, _ := Nominal(T1L)

	events := make([]port.Event, 0, len(leds)*BitsPerLED*2+1)
	var t float64

	for _, led := range leds {
		for _, c := range [...]uint8{led.Green, led.Red, led.Blue} {
			for i := bitsPerChannel - 1; i >= 0; i-- {
				high, low := t0h, t0l
				if c&(1<<i) != 0 {
					high, low = t1h, t1l
				}

				events = append(events, port.Event{Timestamp: t, Level: port.High})
				t += high
				events = append(events, port.Event{Timestamp: t, Level: port.Low})
				t += low
			}
		}
	}

	events = append(events, port.Event{Timestamp: t + ResetGap, Level: port.High})
	return events
}

// Gamma applies the firmware's gamma correction to a channel value.
func Gamma(v uint8) uint8 {
	return uint8(math.Pow(float64(v)/255, gamma) * 255)
}

// Corrected returns the color with Gamma applied to every channel.
func (c RGB) Corrected() RGB {
	return RGB{Green: Gamma(c.Green), Red: Gamma(c.Red), Blue: Gamma(c.Blue)}
}

// ParseRGB parses a color given as "G,R,B" in wire order.
func ParseRGB(s string) (RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	var v [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 0, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		v[i] = uint8(n)
	}

	return RGB{Green: v[0], Red: v[1], Blue: v[2]}, nil
}
