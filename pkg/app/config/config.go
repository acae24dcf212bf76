package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/womat/debug"
	"gopkg.in/yaml.v2"
	"stmcraft/pkg/capture"
	"stmcraft/pkg/ioc"
	"stmcraft/pkg/pintable"
)

// Config defines the struct of global config and the struct of the configuration file
type Config struct {
	Flag       FlagConfig       `yaml:"-"`
	PinConfig  PinConfigConfig  `yaml:"pinconfig"`
	LEDCapture LEDCaptureConfig `yaml:"ledcapture"`
	Debug      DebugConfig      `yaml:"debug"`
	Webserver  WebserverConfig  `yaml:"webserver"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
}

// FlagConfig defines the configured flags (parameters)
type FlagConfig struct {
	Debug      string
	ConfigFile string
	// ConfigRequired is set if the config file was given explicitly.
	// A missing default config file is ignored.
	ConfigRequired bool
}

// PinConfigConfig defines the pin configuration summary.
type PinConfigConfig struct {
	Source        string `yaml:"source"`
	Section       string `yaml:"section"`
	Output        string `yaml:"output"`
	Title         string `yaml:"title"`
	HTML          string `yaml:"html"`
	SkipMalformed bool   `yaml:"skipmalformed"`
}

// LEDCaptureConfig defines the source of the led capture.
// A GPIO offset < 0 reads File, otherwise the line is captured live for Window.
type LEDCaptureConfig struct {
	File       string        `yaml:"file"`
	TimeColumn string        `yaml:"timecolumn"`
	HighOnly   bool          `yaml:"highonly"`
	Chip       string        `yaml:"chip"`
	GPIO       int           `yaml:"gpio"`
	WindowInt  int           `yaml:"window"`
	Window     time.Duration `yaml:"-"`
}

// WebserverConfig defines the struct of the webserver and webservice configuration and configuration file
type WebserverConfig struct {
	URL         string          `yaml:"url"`
	Webservices map[string]bool `yaml:"webservices"`
}

// MQTTConfig defines the struct of the mqtt client configuration and configuration file
type MQTTConfig struct {
	Connection string `yaml:"connection"`
	Topic      string `yaml:"topic"`
}

// DebugConfig defines the struct of the debug configuration and configuration file
type DebugConfig struct {
	File       io.WriteCloser `yaml:"-"`
	Flag       int            `yaml:"-"`
	FlagString string         `yaml:"flag"`
	FileString string         `yaml:"file"`
}

func NewConfig() *Config {
	return &Config{
		Flag: FlagConfig{},
		PinConfig: PinConfigConfig{
			Section: ioc.DefaultSection,
			Output:  "documentation/pin_config/PinConfigurationSummary.md",
			Title:   pintable.DefaultTitle,
		},
		LEDCapture: LEDCaptureConfig{
			File:       "logic_debug_output/digital.csv",
			TimeColumn: capture.DefaultTimeColumn,
			Chip:       "gpiochip0",
			GPIO:       -1,
			WindowInt:  100,
		},
		Debug: DebugConfig{
			FileString: "stderr",
			FlagString: "standard",
		},
		Webserver: WebserverConfig{
			URL: "http://0.0.0.0:4000",
			Webservices: map[string]bool{
				"version": true,
				"health":  true,
				"pins":    true,
				"leds":    true,
			},
		},
		MQTT: MQTTConfig{
			Topic: "stmcraft/leds",
		},
	}
}

func (c *Config) LoadConfig() error {
	if err := c.readConfigFile(); err != nil {
		return fmt.Errorf("error reading config file %q: %w", c.Flag.ConfigFile, err)
	}

	if c.Flag.Debug != "" {
		c.Debug.FlagString = c.Flag.Debug
	}
	if err := c.setDebugConfig(); err != nil {
		return fmt.Errorf("unable to open debug file %q: %w", c.Debug.FileString, err)
	}

	c.LEDCapture.Window = time.Duration(c.LEDCapture.WindowInt) * time.Millisecond

	return nil
}

func (c *Config) readConfigFile() error {
	if c.Flag.ConfigFile == "" {
		return nil
	}

	file, err := os.Open(c.Flag.ConfigFile)
	if errors.Is(err, fs.ErrNotExist) && !c.Flag.ConfigRequired {
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	decoder := yaml.NewDecoder(file)
	if err = decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func (c *Config) setDebugConfig() (err error) {
	// defines Debug section of global.Config
	switch c.Debug.FlagString {
	case "trace", "full":
		c.Debug.Flag = debug.Full
	case "debug":
		c.Debug.Flag = debug.Warning | debug.Info | debug.Error | debug.Fatal | debug.Debug
	default:
		c.Debug.Flag = debug.Standard
	}

	switch c.Debug.FileString {
	case "stderr":
		c.Debug.File = os.Stderr
	case "stdout":
		c.Debug.File = os.Stdout
	default:
		if c.Debug.File, err = os.OpenFile(c.Debug.FileString, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666); err != nil {
			return
		}
	}

	return
}

// Close closes the debug file unless it is stdout or stderr.
func (c *Config) Close() error {
	if c.Debug.File == nil || c.Debug.File == os.Stderr || c.Debug.File == os.Stdout {
		return nil
	}
	return c.Debug.File.Close()
}
