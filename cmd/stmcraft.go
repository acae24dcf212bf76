package main

import (
	"os"
	"os/signal"
	"sort"
	"syscall"

	"stmcraft/pkg/app"
	"stmcraft/pkg/app/config"
	"stmcraft/pkg/ws2812"

	"github.com/urfave/cli/v2"
	"github.com/womat/debug"
)

const defaultConfigFile = app.MODULE + ".yaml"

func main() {
	exitCode := 1
	defer func() {
		os.Exit(exitCode)
	}()

	// cfg holds the application configuration
	cfg := config.NewConfig()

	cliApp := &cli.App{
		Name:    app.MODULE,
		Usage:   "STM32 toolbox: pin configuration summary and WS2812B capture analyzer",
		Version: app.VERSION,
		Description: "pinconfig  writes the [PinConfiguration] section of an STM32CubeMX .ioc file as markdown table" +
			"\nledcapture decodes a logic analyzer capture of a WS2812B data line into led colors",
		UsageText: "stmcraft [--config <file>] [--log standard|debug|trace] <command> [arguments]" +
			"\n\nEXAMPLE:" +
			"\n\twrite documentation/pin_config/PinConfigurationSummary.md" +
			"\n\t\tstmcraft pinconfig board.ioc" +
			"\n\tprint the led colors of a capture" +
			"\n\t\tstmcraft ledcapture logic_debug_output/digital.csv",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Destination: &cfg.Flag.ConfigFile, Value: defaultConfigFile, Usage: "load configuration from `FILE`"},
			&cli.StringFlag{Name: "log", Aliases: []string{"l"}, Destination: &cfg.Flag.Debug, Value: "", Usage: "`LEVEL` defines the log level (standard|debug|trace)"},
		},
		Before: func(ctx *cli.Context) error {
			cfg.Flag.ConfigRequired = ctx.IsSet("config")
			if err := cfg.LoadConfig(); err != nil {
				return err
			}

			debug.SetDebug(cfg.Debug.File, cfg.Debug.Flag)
			return nil
		},
		After: func(ctx *cli.Context) error {
			return cfg.Close()
		},
		Commands: []*cli.Command{
			{
				Name:      "pinconfig",
				Usage:     "write the pin configuration of an .ioc file as markdown table",
				ArgsUsage: "[IOC_FILE]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the summary to `FILE`"},
					&cli.StringFlag{Name: "html", Usage: "also render the summary as html to `FILE`"},
					&cli.BoolFlag{Name: "skip-malformed", Usage: "skip configuration lines without '=' instead of failing"},
				},
				Action: func(ctx *cli.Context) error {
					if ctx.IsSet("output") {
						cfg.PinConfig.Output = ctx.String("output")
					}
					if ctx.IsSet("html") {
						cfg.PinConfig.HTML = ctx.String("html")
					}
					if ctx.IsSet("skip-malformed") {
						cfg.PinConfig.SkipMalformed = ctx.Bool("skip-malformed")
					}

					source := ctx.Args().First()
					if source == "" {
						var err error
						if source, err = app.Prompt(ctx.App.Reader, ctx.App.Writer, "Enter the path to your STM32 .ioc file: "); err != nil {
							return err
						}
					}

					a := app.New(cfg, ctx.App.Writer)
					if _, err := a.PinConfig(source); err != nil && !app.Graceful(err) {
						return err
					}
					return nil
				},
			},
			{
				Name:      "ledcapture",
				Usage:     "decode a WS2812B capture into led colors",
				ArgsUsage: "[CSV_FILE]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "time-column", Usage: "`NAME` of the time column"},
					&cli.BoolFlag{Name: "high-only", Usage: "classify only the high phases of the line (needs a level column)"},
					&cli.IntFlag{Name: "gpio", Value: -1, Usage: "capture line `OFFSET` live instead of reading a file"},
					&cli.DurationFlag{Name: "window", Usage: "duration of a live capture"},
					&cli.BoolFlag{Name: "mqtt", Usage: "publish the led colors to the configured mqtt broker"},
				},
				Action: func(ctx *cli.Context) error {
					if ctx.IsSet("time-column") {
						cfg.LEDCapture.TimeColumn = ctx.String("time-column")
					}
					if ctx.IsSet("high-only") {
						cfg.LEDCapture.HighOnly = ctx.Bool("high-only")
					}
					if ctx.IsSet("gpio") {
						cfg.LEDCapture.GPIO = ctx.Int("gpio")
					}
					if ctx.IsSet("window") {
						cfg.LEDCapture.Window = ctx.Duration("window")
					}

					source := cfg.LEDCapture.File
					if ctx.Args().Present() {
						source = ctx.Args().First()
					}

					a := app.New(cfg, ctx.App.Writer)
					defer func() { _ = a.Close() }()

					if ctx.Bool("mqtt") {
						if err := a.ConnectMQTT(); err != nil {
							return err
						}
					}

					_, err := a.LEDCapture(source)
					return err
				},
			},
			{
				Name:  "synth",
				Usage: "write a synthetic WS2812B capture for the given colors (decode it with ledcapture --high-only)",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "color", Required: true, Usage: "led color as `G,R,B` (repeatable, wire order)"},
					&cli.BoolFlag{Name: "gamma", Usage: "apply the firmware gamma correction (2.2)"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "digital.csv", Usage: "write the capture to `FILE`"},
				},
				Action: func(ctx *cli.Context) error {
					var leds []ws2812.RGB
					for _, s := range ctx.StringSlice("color") {
						c, err := ws2812.ParseRGB(s)
						if err != nil {
							return err
						}
						leds = append(leds, c)
					}

					return app.New(cfg, ctx.App.Writer).Synth(leds, ctx.Bool("gamma"), ctx.String("output"))
				},
			},
			{
				Name:  "serve",
				Usage: "decode the configured sources and serve the results over http",
				Action: func(ctx *cli.Context) error {
					a := app.New(cfg, ctx.App.Writer)
					defer func() {
						debug.InfoLog.Printf("closing app %s", app.Version())
						_ = a.Close()
					}()

					debug.InfoLog.Printf("starting app %s", app.Version())
					if err := a.Serve(); err != nil {
						return err
					}

					// capture exit signals to ensure resources are released on exit.
					quit := make(chan os.Signal, 1)
					signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
					defer signal.Stop(quit)

					// wait for am os.Interrupt signal (CTRL C)
					sig := <-quit
					debug.InfoLog.Printf("Got %s signal. Aborting...", sig)
					return nil
				},
			},
		},
	}

	// we expect to have more command line flags in the future - sort them
	sort.Sort(cli.FlagsByName(cliApp.Flags))
	sort.Sort(cli.CommandsByName(cliApp.Commands))

	err := cliApp.Run(os.Args)
	if err != nil {
		debug.FatalLog.Print(err)
		exitCode = 1
		return
	}

	exitCode = 0
}
