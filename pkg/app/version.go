package app

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/womat/debug"
)

// VERSION is MAJOR.YEAR.MONTH+BUILDDATE. YEAR counts from 2026 (0), MONTH is
// the release month and BUILDDATE the first day of that month as YYYYMMDD.
// A new major number is only used when the command line or the config keys
// change incompatibly.
const (
	VERSION = "1.0.10+20261001"
	MODULE  = "stmcraft"
)

// HandleVersion is the get application version web handler.
func (app *App) HandleVersion() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		debug.InfoLog.Print("web request version")

		return ctx.JSON(fiber.Map{
			"version":     VERSION,
			"description": MODULE,
			"about":       Version(),
		})
	}
}

// Version is the get application version as string.
func Version() string {
	return strings.TrimSpace(MODULE + " V" + strings.Split(VERSION, "+")[0])
}
