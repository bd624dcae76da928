// Package logger builds the zerolog logger shared by the server, the CLI and
// the storage layer.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON in production and a console format
// everywhere else.
func New(level string, production bool) zerolog.Logger {
	return NewWithWriter(os.Stderr, level, production)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level string, production bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if !production {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "gazette").Logger()
}

// BadgerLogger adapts a zerolog logger to badger.Logger.
type BadgerLogger struct {
	log zerolog.Logger
}

// NewBadgerLogger tags every entry with component=badger.
func NewBadgerLogger(log zerolog.Logger) *BadgerLogger {
	return &BadgerLogger{log: log.With().Str("component", "badger").Logger()}
}

func (l *BadgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msg(trim(format, args))
}

func (l *BadgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msg(trim(format, args))
}

func (l *BadgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msg(trim(format, args))
}

func (l *BadgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msg(trim(format, args))
}

// badger terminates most of its messages with a newline
func trim(format string, args []interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
