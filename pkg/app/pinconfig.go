package app

import (
	"errors"
	"fmt"

	"github.com/womat/debug"
	"stmcraft/pkg/ioc"
	"stmcraft/pkg/pintable"
)

// PinConfig extracts the pin configuration of an .ioc file and writes the markdown summary.
// A missing source or an empty section is reported to the user and returned as
// ioc.ErrSourceNotFound or ioc.ErrEmptySection; no output file is written then.
func (app *App) PinConfig(source string) ([]ioc.Row, error) {
	c := app.config.PinConfig

	lines, err := ioc.ExtractFile(source, c.Section)
	if errors.Is(err, ioc.ErrSourceNotFound) {
		fmt.Fprintf(app.out, "Error: File %s does not exist.\n", source)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		fmt.Fprintln(app.out, "No pin configurations found in the .ioc file.")
		return nil, fmt.Errorf("%w: %s", ioc.ErrEmptySection, source)
	}

	rows, err := ioc.ParseLines(lines, c.SkipMalformed)
	if err != nil {
		return nil, err
	}

	if err = pintable.WriteFile(c.Output, c.Title, rows); err != nil {
		return nil, err
	}
	fmt.Fprintf(app.out, "Markdown summary generated: %s\n", c.Output)

	if c.HTML != "" {
		if err = pintable.WriteHTMLFile(c.HTML, c.Title, rows); err != nil {
			return nil, err
		}
		fmt.Fprintf(app.out, "HTML summary generated: %s\n", c.HTML)
	}

	debug.InfoLog.Printf("%d pins of %s written to %s", len(rows), source, c.Output)
	app.rows = rows
	return rows, nil
}

// Graceful reports whether err ends a pipeline without being a failure.
func Graceful(err error) bool {
	return errors.Is(err, ioc.ErrSourceNotFound) || errors.Is(err, ioc.ErrEmptySection)
}
