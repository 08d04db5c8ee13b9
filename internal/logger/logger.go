package logger

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

// LogLevel log level
type LogLevel int

const (
	// Silent silent log level
	Silent LogLevel = iota + 1
	// Error error log level
	Error
	// Warn warn log level
	Warn
	// Info info log level
	Info
	// Trace trace log level
	Trace
)

// Writer log writer interface
type Writer interface {
	Printf(string, ...interface{})
}

// Config logger config
type Config struct {
	Color    bool
	LogLevel LogLevel
}

// Logger logger interface
type Logger interface {
	LogMode(LogLevel) Logger
	WithPrefix(string) Logger
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Trace(string, ...interface{})
}

var (
	// Discard logger prints nothing
	Discard = New(log.New(io.Discard, "", log.Ltime), Config{})
	// Default logger prints info and above
	Default = New(log.New(os.Stderr, "", log.Ltime), Config{
		LogLevel: Info,
		Color:    true,
	})
	// Tracer prints everything
	Tracer = New(log.New(os.Stderr, "", log.Ltime), Config{
		LogLevel: Trace,
		Color:    true,
	})
)

var (
	infoTag  = color.New(color.FgGreen).SprintFunc()
	warnTag  = color.New(color.FgBlue, color.Bold).SprintFunc()
	errorTag = color.New(color.FgRed).SprintFunc()
	traceTag = color.New(color.FgYellow).SprintFunc()
)

// New initialize logger
func New(writer Writer, config Config) Logger {
	return &xlogger{
		Writer: writer,
		Config: config,
	}
}

type xlogger struct {
	Writer
	Config
	prefix string
}

// LogMode log mode
func (l *xlogger) LogMode(level LogLevel) Logger {
	newlogger := *l
	newlogger.LogLevel = level
	return &newlogger
}

// WithPrefix returns a logger that puts prefix in front of every message.
func (l *xlogger) WithPrefix(prefix string) Logger {
	newlogger := *l
	if newlogger.prefix != "" {
		newlogger.prefix += " "
	}
	newlogger.prefix += prefix
	return &newlogger
}

func (l *xlogger) print(level LogLevel, tag string, paint func(...interface{}) string, msg string, data ...interface{}) {
	if l.LogLevel < level {
		return
	}
	if l.Color {
		tag = paint(tag)
	}
	if l.prefix != "" {
		msg = l.prefix + " " + msg
	}
	l.Printf(tag+" "+msg+"\n", data...)
}

// Info print info
func (l *xlogger) Info(msg string, data ...interface{}) {
	l.print(Info, "[INFO]", infoTag, msg, data...)
}

// Warn print warn messages
func (l *xlogger) Warn(msg string, data ...interface{}) {
	l.print(Warn, "[WARN]", warnTag, msg, data...)
}

// Error print error messages
func (l *xlogger) Error(msg string, data ...interface{}) {
	l.print(Error, "[ERROR]", errorTag, msg, data...)
}

// Trace message
func (l *xlogger) Trace(msg string, data ...interface{}) {
	l.print(Trace, "[TRACE]", traceTag, msg, data...)
}
