package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the application logger. The TUI owns stdout, so events go to
// the given file path; with no path configured the logger discards.
func New(path string) (zerolog.Logger, func()) {
	if path == "" {
		return zerolog.New(io.Discard), func() {}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.New(io.Discard), func() {}
	}

	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }
}
