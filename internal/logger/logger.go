package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger defines the mapedcfg logging contract.
// Implementations should support standard log levels and be safe for concurrent use.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// Config captures where log output goes and how verbose it is.
// It mirrors the persisted logging settings group.
type Config struct {
	Level         string    // DEBUG, INFO, WARNING or ERROR; empty means INFO
	Console       bool      // human-readable lines on Out
	ConsoleColors bool      // colorize console lines
	File          string    // append JSON lines to this file when set
	Out           io.Writer // console destination (defaults to os.Stderr)
}

// ZeroLogger implements Logger on top of zerolog.
type ZeroLogger struct {
	zl   zerolog.Logger
	file io.Closer
}

// New builds a logger from cfg. With neither console nor file output
// enabled the logger discards everything.
func New(cfg Config) (*ZeroLogger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var writers []io.Writer
	if cfg.Console {
		out := cfg.Out
		if out == nil {
			out = os.Stderr
		}
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    !cfg.ConsoleColors,
			TimeFormat: time.Kitchen,
		})
	}

	var file *os.File
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, file)
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = zerolog.MultiLevelWriter(writers...)
	}

	l := &ZeroLogger{
		zl: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
	if file != nil {
		l.file = file
	}
	return l, nil
}

// Wrap adapts an existing zerolog logger.
func Wrap(zl zerolog.Logger) *ZeroLogger {
	return &ZeroLogger{zl: zl}
}

// Nop returns a logger that drops every entry.
func Nop() *ZeroLogger {
	return &ZeroLogger{zl: zerolog.Nop()}
}

// With returns a child logger annotated with the component name.
func (l *ZeroLogger) With(component string) *ZeroLogger {
	return &ZeroLogger{zl: l.zl.With().Str("component", component).Logger()}
}

// Close releases the log file, if any. Child loggers share the parent's file
// and must not be closed.
func (l *ZeroLogger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *ZeroLogger) Info(msg string, args ...any) {
	l.zl.Info().Msgf(msg, args...)
}

func (l *ZeroLogger) Warn(msg string, args ...any) {
	l.zl.Warn().Msgf(msg, args...)
}

func (l *ZeroLogger) Error(msg string, args ...any) {
	l.zl.Error().Msgf(msg, args...)
}

func (l *ZeroLogger) Debug(msg string, args ...any) {
	l.zl.Debug().Msgf(msg, args...)
}

// ParseLevel maps a settings level name to a zerolog level.
// Names are case-insensitive; an empty name means INFO.
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "":
		return zerolog.InfoLevel, nil
	case "DEBUG":
		return zerolog.DebugLevel, nil
	case "INFO":
		return zerolog.InfoLevel, nil
	case "WARNING", "WARN":
		return zerolog.WarnLevel, nil
	case "ERROR":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
}

// Default provides a global logger writing to stderr at INFO.
var Default Logger = Wrap(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	Level(zerolog.InfoLevel).With().Timestamp().Logger())
