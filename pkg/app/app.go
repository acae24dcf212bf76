package app

import (
	"io"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/womat/debug"
	"stmcraft/pkg/app/config"
	"stmcraft/pkg/ioc"
	"stmcraft/pkg/mqtt"
	"stmcraft/pkg/ws2812"
)

// App is the main application struct.
// App is where the application is wired up.
type App struct {
	// web is the fiber web framework instance
	web *fiber.App

	// config is the application configuration
	config *config.Config

	// out receives the user facing results (summary path, led colors)
	out io.Writer

	// mqtt is the handler to the mqtt broker
	mqtt *mqtt.Handler

	// rows is the last generated pin configuration
	rows []ioc.Row

	// leds is the last decoded led capture
	leds []ws2812.RGB
}

// New initialize the main app structure
func New(config *config.Config, out io.Writer) *App {
	app := &App{
		config: config,
		out:    out,
		web:    fiber.New(fiber.Config{DisableStartupMessage: true}),
		mqtt:   mqtt.New(),
		rows:   []ioc.Row{},
		leds:   []ws2812.RGB{},
	}

	// initDefaultRoutes should be always called last because the handlers access the app structure
	app.initDefaultRoutes()
	return app
}

// Serve runs both pipelines on the configured sources and starts the web server.
// Failing pipelines are logged, the web server reports empty results for them.
func (app *App) Serve() error {
	u, err := url.Parse(app.config.Webserver.URL)
	if err != nil {
		debug.ErrorLog.Printf("Error parsing url %q: %s", app.config.Webserver.URL, err.Error())
		return err
	}

	if err = app.mqtt.Connect(app.config.MQTT.Connection); err != nil {
		debug.ErrorLog.Printf("can't open mqtt broker %v", err)
		return err
	}

	if app.config.PinConfig.Source != "" {
		if _, err = app.PinConfig(app.config.PinConfig.Source); err != nil {
			debug.ErrorLog.Printf("pin configuration: %v", err)
		}
	}

	if _, err = app.LEDCapture(app.config.LEDCapture.File); err != nil {
		debug.ErrorLog.Printf("led capture: %v", err)
	}

	go app.runWebServer(u.Host)
	return nil
}

// Close stops the web server and disconnects from the mqtt broker.
func (app *App) Close() error {
	_ = app.mqtt.Disconnect()
	return app.web.Shutdown()
}
