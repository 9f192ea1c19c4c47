package config

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger builds the process logger and sets the global level.
func (c Config) Logger(w io.Writer) zerolog.Logger {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if strings.EqualFold(c.LogFormat, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}
