package app

import (
	"fmt"

	"github.com/womat/debug"
	"stmcraft/pkg/capture"
	"stmcraft/pkg/ws2812"
)

// Synth writes the capture a controller would produce for leds to output.
// With gamma set the colors are corrected first, as the firmware does.
func (app *App) Synth(leds []ws2812.RGB, gamma bool, output string) error {
	if gamma {
		corrected := make([]ws2812.RGB, len(leds))
		for i, led := range leds {
			corrected[i] = led.Corrected()
		}
		leds = corrected
	}

	events := ws2812.Encode(leds)
	if err := capture.WriteFile(output, app.config.LEDCapture.TimeColumn, events); err != nil {
		return err
	}

	debug.InfoLog.Printf("%d leds encoded to %d events", len(leds), len(events))
	fmt.Fprintf(app.out, "Capture generated: %s\n", output)
	return nil
}
