// Package logging builds the zerolog loggers shared by every component
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config level name to zerolog; unknown names fall back to info
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Setup returns a console-format logger writing to w without colors
func Setup(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// SetupJSON returns a JSON-lines logger; extra writers receive the same records
func SetupJSON(level string, w io.Writer, extra ...io.Writer) zerolog.Logger {
	var out io.Writer = w
	if len(extra) > 0 {
		out = zerolog.MultiLevelWriter(append([]io.Writer{w}, extra...)...)
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Component derives a child logger tagged with the component name
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
