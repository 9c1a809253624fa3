package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output io.Writer
}

var base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// Init replaces the process logger. Safe to skip in tests.
func Init(cfg Config) {
	var out io.Writer = os.Stdout
	if cfg.Output != nil {
		out = cfg.Output
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	base = zerolog.New(out).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// L exposes the underlying logger for structured fields.
func L() *zerolog.Logger {
	return &base
}

func Info(format string, v ...interface{}) {
	base.Info().CallerSkipFrame(1).Caller().Msgf(format, v...)
}

func Warn(format string, v ...interface{}) {
	base.Warn().CallerSkipFrame(1).Caller().Msgf(format, v...)
}

func Error(format string, v ...interface{}) {
	base.Error().CallerSkipFrame(1).Caller().Msgf(format, v...)
}

func Debug(format string, v ...interface{}) {
	base.Debug().CallerSkipFrame(1).Caller().Msgf(format, v...)
}

// With returns a child logger carrying the given fields.
func With(fields map[string]interface{}) zerolog.Logger {
	return base.With().Fields(fields).Logger()
}

// LogLedgerError records a failed ledger step with the identifiers needed to repair it by hand.
func LogLedgerError(action, requestID string, err error) {
	base.Error().
		Str("action", action).
		Str("withdraw_request_id", requestID).
		Err(err).
		Msg(fmt.Sprintf("ledger %s failed", action))
}
