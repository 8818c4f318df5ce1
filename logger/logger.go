// Package logger holds the zerolog logger shared by the babygiant packages.
//
// Library code only ever reads the logger; the command line front end is the
// one place that configures it.
package logger

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}
	logger = zerolog.New(output).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// SetOutput changes the output of the global logger, keeping its level.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// SetLevel changes the minimum level of the global logger.
func SetLevel(level zerolog.Level) {
	logger = logger.Level(level)
}

// Set replaces the global logger.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable discards all log output.
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	return logger
}
