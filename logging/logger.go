// Package logging defines the structured logger used across rowmapper.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the logging surface consumed by the mapper, the converter
// registry and the row-source adapters. keysAndValues are alternating
// key/value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// DefaultLevel is the level used when none is configured.
const DefaultLevel = "warn"

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	logger zerolog.Logger
}

// New returns a Logger writing JSON lines to w at the given level.
// Unknown levels fall back to DefaultLevel.
func New(w io.Writer, level string) *ZerologLogger {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}

	return &ZerologLogger{
		logger: zerolog.New(w).Level(lvl).With().Timestamp().Logger(),
	}
}

// Default returns the stderr logger at DefaultLevel.
func Default() *ZerologLogger {
	return New(os.Stderr, DefaultLevel)
}

// FromZerolog wraps an already configured zerolog logger.
func FromZerolog(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: l}
}

// Nop returns a Logger that discards everything.
func Nop() *ZerologLogger {
	return &ZerologLogger{logger: zerolog.Nop()}
}

func (l *ZerologLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(l.logger.Debug(), msg, keysAndValues...)
}

func (l *ZerologLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log(l.logger.Info(), msg, keysAndValues...)
}

func (l *ZerologLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(l.logger.Warn(), msg, keysAndValues...)
}

func (l *ZerologLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log(l.logger.Error(), msg, keysAndValues...)
}

func (l *ZerologLogger) log(event *zerolog.Event, msg string, keysAndValues ...interface{}) {
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}

		if i+1 >= len(keysAndValues) {
			event.Interface(key, nil)

			continue
		}

		switch v := keysAndValues[i+1].(type) {
		case error:
			event.AnErr(key, v)
		case string:
			event.Str(key, v)
		default:
			event.Interface(key, v)
		}
	}

	event.Msg(msg)
}

// OrDefault returns l, or Default() when l is nil.
func OrDefault(l Logger) Logger {
	if l == nil {
		return Default()
	}

	return l
}
