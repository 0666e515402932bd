package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger provides leveled, colourised logging throughout the application.
// Loggers derived with With share the parent's outputs.
type Logger struct {
	info   *log.Logger
	warn   *log.Logger
	err    *log.Logger
	debug  *log.Logger
	prefix string
	debugs bool
}

// NewLogger creates a Logger writing to stdout/stderr with debug output enabled.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stdout, os.Stderr, true)
}

// NewLoggerTo creates a Logger writing info/warn/debug lines to out and
// errors to errOut. Debug lines are dropped unless debug is true.
func NewLoggerTo(out, errOut io.Writer, debug bool) *Logger {
	flags := 0
	return &Logger{
		info:   log.New(out, "", flags),
		warn:   log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
		debug:  log.New(out, "", flags),
		debugs: debug,
	}
}

// NewNopLogger discards everything; handy in tests.
func NewNopLogger() *Logger {
	return NewLoggerTo(io.Discard, io.Discard, false)
}

// With returns a logger that tags each line with [component].
func (l *Logger) With(component string) *Logger {
	child := *l
	child.prefix = "[" + component + "] "
	return &child
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) line(level, format string) string {
	return fmt.Sprintf("[%s] %s %s%s\n", l.timestamp(), level, l.prefix, format)
}

func (l *Logger) Info(format string, args ...any) {
	l.info.Printf(l.line("\033[32mINFO\033[0m ", format), args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.warn.Printf(l.line("\033[33mWARN\033[0m ", format), args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Printf(l.line("\033[31mERROR\033[0m", format), args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if !l.debugs {
		return
	}
	l.debug.Printf(l.line("\033[36mDEBUG\033[0m", format), args...)
}
