package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the level, format and destination of new loggers.
type Options struct {
	// Level is a zerolog level name such as "debug" or "warn".
	Level string
	// Format is "json" or "console".
	Format string
	// Out defaults to os.Stdout.
	Out io.Writer
}

var (
	mu      sync.RWMutex
	current = settings{level: zerolog.InfoLevel, out: os.Stdout}
)

type settings struct {
	level   zerolog.Level
	console bool
	out     io.Writer
}

// Configure sets the options used by loggers created afterwards.
func Configure(o Options) error {
	s := settings{level: zerolog.InfoLevel, out: o.Out}
	if o.Level != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(o.Level))
		if err != nil {
			return fmt.Errorf("logging level %q: %w", o.Level, err)
		}
		s.level = lvl
	}
	switch strings.ToLower(o.Format) {
	case "", "json":
	case "console":
		s.console = true
	default:
		return fmt.Errorf("logging format %q: want json or console", o.Format)
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	mu.Lock()
	current = s
	mu.Unlock()
	return nil
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger from the configured options. All
// logs include the provided component field.
func NewZerologLogger(component string) Logger {
	mu.RLock()
	s := current
	mu.RUnlock()
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		s.console = true
	}
	return newZerolog(component, s)
}

func newZerolog(component string, s settings) *ZerologLogger {
	w := s.out
	if s.console {
		w = zerolog.ConsoleWriter{Out: s.out, TimeFormat: time.RFC3339}
	}
	z := zerolog.New(w).Level(s.level).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Warnw(msg string, fields map[string]any) {
	l.log.Warn().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
