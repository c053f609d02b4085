// Package log provides the leveled logging used by the warc-tracker-sheets commands.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var (
	guard  sync.RWMutex
	logger = zerolog.New(console(os.Stderr)).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// Init replaces the default logger. The format is one of 'console', 'json' or 'auto' (console
// if w is a terminal, JSON otherwise) and level is one of 'debug', 'info', 'warn' or 'error'.
func Init(w io.Writer, format string, level string) {
	var out io.Writer

	switch strings.ToLower(format) {
	case "json":
		out = w
	case "console":
		out = console(w)
	default:
		if isTerminal(w) {
			out = console(w)
		} else {
			out = w
		}
	}

	l := zerolog.New(out).With().Timestamp().Logger().Level(parseLevel(level))

	guard.Lock()
	logger = l
	guard.Unlock()
}

// SetDebug enables or disables debug logging without changing the output.
func SetDebug(debug bool) {
	guard.Lock()
	defer guard.Unlock()

	if debug {
		logger = logger.Level(zerolog.DebugLevel)
	} else if logger.GetLevel() == zerolog.DebugLevel {
		logger = logger.Level(zerolog.InfoLevel)
	}
}

func Debugf(format string, args ...any) {
	get().Debug().Msg(fmt.Sprintf(format, args...))
}

func Infof(format string, args ...any) {
	get().Info().Msg(fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...any) {
	get().Warn().Msg(fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...any) {
	get().Error().Msg(fmt.Sprintf(format, args...))
}

func get() *zerolog.Logger {
	guard.RLock()
	defer guard.RUnlock()

	l := logger

	return &l
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func console(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    !isTerminal(w),
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	return false
}
