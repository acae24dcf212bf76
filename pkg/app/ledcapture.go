package app

import (
	"encoding/json"
	"fmt"

	"github.com/womat/debug"
	"stmcraft/pkg/capture"
	"stmcraft/pkg/mqtt"
	"stmcraft/pkg/port"
	"stmcraft/pkg/ws2812"
)

// LEDCapture decodes a capture of a WS2812B data line and prints the led colors.
// The capture is read from source, or from the configured gpio line if one is set.
// The colors are published to the mqtt broker when connected.
func (app *App) LEDCapture(source string) ([]ws2812.RGB, error) {
	c := app.config.LEDCapture

	var events []port.Event
	var err error

	if c.GPIO >= 0 {
		events, err = capture.GPIO(c.Chip, c.GPIO, c.Window)
	} else {
		events, err = capture.ReadFile(source, c.TimeColumn)
	}
	if err != nil {
		return nil, err
	}

	var leds []ws2812.RGB
	if c.HighOnly {
		leds = ws2812.DecodeHigh(events)
	} else {
		leds = ws2812.Decode(events)
	}
	debug.InfoLog.Printf("%d events decoded to %d leds", len(events), len(leds))

	if err = ws2812.Print(app.out, leds); err != nil {
		return nil, err
	}

	app.leds = leds

	if err = app.publish(leds); err != nil {
		debug.ErrorLog.Println(err)
	}

	return leds, nil
}

// ConnectMQTT connects to the configured broker, if any.
func (app *App) ConnectMQTT() error {
	return app.mqtt.Connect(app.config.MQTT.Connection)
}

// publish sends the led colors as json array to the mqtt broker.
func (app *App) publish(leds []ws2812.RGB) error {
	if !app.mqtt.Enabled() {
		return nil
	}

	b, err := json.Marshal(leds)
	if err != nil {
		return fmt.Errorf("publish marshal: %w", err)
	}

	return app.mqtt.Publish(mqtt.Message{
		Qos:      0,
		Retained: true,
		Topic:    app.config.MQTT.Topic,
		Payload:  b,
	})
}
