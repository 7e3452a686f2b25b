package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Option is a function that modifies the logger
type Option func(*Logger)

// WithName sets the logger name
func WithName(name string) Option {
	return func(l *Logger) {
		l.name = name
	}
}

// WithDebug enables debug level logging, debug output is also printed to console
func WithDebug(debug bool) Option {
	return func(l *Logger) {
		if debug {
			l.console = true
			l.level = zerolog.DebugLevel
			return
		}
		l.level = zerolog.InfoLevel
	}
}

// WithConsole enables (pretty) logging to console
func WithConsole(console bool) Option {
	return func(l *Logger) {
		l.console = console
	}
}

// WithOwnLogFile writes to the given file inside the logs directory
// instead of the default log file
func WithOwnLogFile(name string) Option {
	return func(l *Logger) {
		l.writer = newRotatingLogFile(logsDirectory, name)
	}
}

// WithWriter writes JSON log lines to w instead of a log file
func WithWriter(w io.Writer) Option {
	return func(l *Logger) {
		l.writer = w
	}
}

// Logger is a simple wrapper around zerolog
type Logger struct {
	name    string
	console bool
	level   zerolog.Level
	writer  io.Writer
	out     zerolog.Logger
}

// GetWriter returns the logger's writer
func (l *Logger) GetWriter() io.Writer {
	return l.out
}

// Debug logs a message to l.out if log level is debug
//
// Also (pretty) prints to os.Stdout if l.console is true
func (l *Logger) Debug(format string, args ...interface{}) {
	if e := l.out.Debug(); e.Enabled() {
		l.emit(e, color.WhiteString, os.Stdout, format, args...)
	}
}

// Info logs a message to l.out
//
// Also (pretty) prints to os.Stdout if l.console is true
func (l *Logger) Info(format string, args ...interface{}) {
	l.emit(l.out.Info(), color.BlueString, os.Stdout, format, args...)
}

// Warn logs a message to l.out
//
// Also (pretty) prints to os.Stdout if l.console is true
func (l *Logger) Warn(format string, args ...interface{}) {
	l.emit(l.out.Warn(), color.YellowString, os.Stdout, format, args...)
}

// Error logs a message to l.out
//
// Also (pretty) prints to stderr if l.console is true
func (l *Logger) Error(format string, args ...interface{}) {
	l.emit(l.out.Error(), color.RedString, color.Error, format, args...)
}

func (l *Logger) emit(
	e *zerolog.Event,
	nameColor func(format string, a ...interface{}) string,
	console io.Writer,
	format string,
	args ...interface{},
) {
	msg := fmt.Sprintf(format, args...)

	e.Str("caller", getCaller()).Msg(msg)

	if !l.console {
		return
	}

	_, err := fmt.Fprintf(
		console,
		"[%s] [%s] %s\n",
		color.GreenString(time.Now().Format("15:04:05")),
		nameColor(strings.ToUpper(l.name)),
		msg,
	)
	if err != nil {
		fmt.Println("could not print to console:", err)
	}
}

// NewLogger creates a new logger with the given options
func NewLogger(options ...Option) *Logger {
	l := &Logger{
		name:  "app",
		level: zerolog.InfoLevel,
	}

	for _, option := range options {
		option(l)
	}

	if l.writer == nil {
		l.writer = newRotatingLogFile(logsDirectory, logFileName)
	}

	l.out = zerolog.New(l.writer).
		Level(l.level).
		With().
		Timestamp().
		Str("logger", l.name).
		Logger()

	return l
}

// Sets the default logs directory, if empty or not set
// via this function, will use "./logs"
func SetDefaultLogsDirectory(dir string) {
	if dir == "" {
		return
	}
	logsDirectory = dir
}

// Sets the default log file name, if empty or not set
// via this function, will use "hostbridge.log"
func SetDefaultLogFileName(name string) {
	if name == "" {
		return
	}
	logFileName = name
}

const (
	defaultLogsDirectory = "./logs"
	defaultLogFilename   = "hostbridge.log"
)

var (
	logsDirectory string = defaultLogsDirectory
	logFileName   string = defaultLogFilename
)

func newRotatingLogFile(dir string, name string) io.Writer {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    25,
		MaxAge:     28,
		MaxBackups: 0,
		LocalTime:  true,
		Compress:   false,
	}
}

// Skips getCaller, emit and the exported level method
func getCaller() string {
	_, file, line, ok := runtime.Caller(3)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
