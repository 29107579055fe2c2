package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var logger = newLogger(os.Stderr)

func newLogger(out io.Writer) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(consoleWriter).With().Timestamp().Logger()
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	logger = newLogger(w)
}

// SetLevel sets the global log level. Unknown names fall back to info.
func SetLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Debugf logs a debug message with formatting
func Debugf(format string, v ...interface{}) {
	logger.Debug().Msgf(format, v...)
}

// Warnf logs a warning message with formatting
func Warnf(format string, v ...interface{}) {
	logger.Warn().Msgf(format, v...)
}
