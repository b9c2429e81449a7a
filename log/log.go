package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "charm.land/log/v2"
)

// Handler is the slog.Handler produced by NewHandler / NewHandlerFromStrings.
type Handler = slog.Handler

// Level is a logging severity, parsed from or rendered as a lowercase
// string for CLI flags.
type Level string

const (
	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
)

// Format selects how a Handler renders log records.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs in logfmt format, with source location.
	FormatLogfmt Format = "logfmt"
	// FormatText outputs logs in logfmt-shaped format without source
	// location, for a quieter default.
	FormatText Format = "text"
	// FormatPretty outputs logs in a human-oriented, coloured form meant
	// for an interactive terminal rather than a log aggregator.
	FormatPretty Format = "pretty"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// ParseLevel parses a log level string, case-insensitively. "warning" is
// accepted as an alias for "warn".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case string(LevelError):
		return LevelError, nil
	case string(LevelWarn), "warning":
		return LevelWarn, nil
	case string(LevelInfo):
		return LevelInfo, nil
	case string(LevelDebug):
		return LevelDebug, nil
	}

	return "", ErrUnknownLogLevel
}

// ParseFormat parses a log format string, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))

	switch f {
	case FormatJSON, FormatLogfmt, FormatText, FormatPretty:
		return f, nil
	}

	return "", ErrUnknownLogFormat
}

// GetAllLevelStrings returns every accepted level string, for flag help text
// and shell completion.
func GetAllLevelStrings() []string {
	return []string{string(LevelDebug), string(LevelInfo), string(LevelWarn), string(LevelError)}
}

// GetAllFormatStrings returns every accepted format string, for flag help
// text and shell completion.
func GetAllFormatStrings() []string {
	return []string{string(FormatJSON), string(FormatLogfmt), string(FormatText), string(FormatPretty)}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func (l Level) charmLevel() charmlog.Level {
	switch l {
	case LevelError:
		return charmlog.ErrorLevel
	case LevelWarn:
		return charmlog.WarnLevel
	case LevelDebug:
		return charmlog.DebugLevel
	default:
		return charmlog.InfoLevel
	}
}

// NewHandlerFromStrings parses level and format, then builds a Handler via
// NewHandler.
func NewHandlerFromStrings(w io.Writer, level, format string) (Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	parsedFormat, err := ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, parsedFormat), nil
}

// NewHandler builds a Handler writing to w at the given level and format.
func NewHandler(w io.Writer, level Level, format Format) Handler {
	lvl := level.slogLevel()

	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     lvl,
		})

	case FormatLogfmt:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     lvl,
		})

	case FormatText:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: lvl,
		})

	case FormatPretty:
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:           level.charmLevel(),
			ReportTimestamp: true,
		})
	}

	return nil
}
