package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/womat/debug"
)

// runWebServer starts the applications web server and listens for web requests.
//  It's designed to run in a separate go function to not block the main go function.
//  e.g.: go runWebServer()
//  See app.Serve()
func (app *App) runWebServer(addr string) {
	debug.InfoLog.Printf("web server listening on %s", addr)
	if err := app.web.Listen(addr); err != nil {
		debug.ErrorLog.Print(err)
	}
}

// HandlePins returns the last generated pin configuration.
func (app *App) HandlePins() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		debug.InfoLog.Print("web request pins")

		return ctx.JSON(app.rows)
	}
}

// HandleLEDs returns the last decoded led colors.
func (app *App) HandleLEDs() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		debug.InfoLog.Print("web request leds")

		return ctx.JSON(app.leds)
	}
}
