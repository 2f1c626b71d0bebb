package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// DebugFile is where --debug sends log output. Stdout belongs to the TUI.
const DebugFile = "citycsv-debug.log"

// New returns a logger writing JSON lines to path, or a no-op logger when
// path is empty. The returned close func is always safe to call.
func New(path string) (zerolog.Logger, func() error, error) {
	if path == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() error { return nil }, err
	}

	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(f).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()

	return logger, f.Close, nil
}
