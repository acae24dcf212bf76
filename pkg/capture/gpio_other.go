//go:build !linux

package capture

import (
	"time"

	"stmcraft/pkg/port"
)

// GPIO is only available on linux.
func GPIO(chip string, offset int, window time.Duration) ([]port.Event, error) {
	return nil, ErrUnsupported
}
