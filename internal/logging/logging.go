// Package logging builds the zerolog logger shared by the binary.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// New returns a JSON logger writing to w at the named level. An empty level
// means info.
func New(w io.Writer, level string) (zerolog.Logger, error) {
	if level == "" {
		level = zerolog.InfoLevel.String()
	}

	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(err, "invalid log level %q", level)
	}

	return zerolog.New(w).Level(parsed).With().Timestamp().Logger(), nil
}

// Open resolves the log destination. Stdout belongs to the screen, so logs go
// to stderr unless a file is named.
func Open(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open log file %s", path)
	}

	return f, func() { _ = f.Close() }, nil
}
