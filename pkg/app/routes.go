package app

// initDefaultRoutes initializes the applications default routes.
//  Each route can be disabled in the webservices section of the config file.
func (app *App) initDefaultRoutes() {
	api := app.web.Group("/")
	if app.config.Webserver.Webservices["version"] {
		api.Get("/version", app.HandleVersion())
	}
	if app.config.Webserver.Webservices["health"] {
		api.Get("/health", app.HandleHealth())
	}
	if app.config.Webserver.Webservices["pins"] {
		api.Get("/pins", app.HandlePins())
	}
	if app.config.Webserver.Webservices["leds"] {
		api.Get("/leds", app.HandleLEDs())
	}
}
