package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// sink is the shared destination for a logger and all of its subloggers. It
// serializes writes so that lines from concurrent streams don't interleave.
type sink struct {
	// lock serializes writes to the destination.
	lock sync.Mutex
	// destination is the underlying writer.
	destination io.Writer
	// colorize indicates whether or not errors and warnings are colorized.
	colorize bool
}

// write emits a single line to the destination.
func (s *sink) write(line string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	io.WriteString(s.destination, line)
}

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything. It is safe for concurrent
// usage.
type Logger struct {
	// level is the maximum level that the logger emits.
	level Level
	// prefix is any prefix specified for the logger.
	prefix string
	// sink is the shared output destination.
	sink *sink
}

// NewLogger creates a new root logger that writes to the specified destination
// at the specified level. Errors and warnings are colorized only if the
// destination is a terminal.
func NewLogger(level Level, destination io.Writer) *Logger {
	// Determine whether or not the destination supports color.
	var colorize bool
	if file, ok := destination.(*os.File); ok {
		colorize = isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	}

	// Create the logger.
	return &Logger{
		level: level,
		sink: &sink{
			destination: destination,
			colorize:    colorize,
		},
	}
}

// Sublogger creates a new sublogger with the specified name.
func (l *Logger) Sublogger(name string) *Logger {
	// If the logger is nil, then the sublogger will be as well.
	if l == nil {
		return nil
	}

	// Compute the new prefix.
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}

	// Create the new logger.
	return &Logger{
		level:  l.level,
		prefix: prefix,
		sink:   l.sink,
	}
}

// Level returns the logger's level. A nil logger is always disabled.
func (l *Logger) Level() Level {
	if l == nil {
		return LevelDisabled
	}
	return l.level
}

// enabled returns whether or not the logger emits messages at the level.
func (l *Logger) enabled(level Level) bool {
	return l != nil && level <= l.level
}

// output formats and emits a line at the specified level.
func (l *Logger) output(level Level, message string) {
	// Colorize errors and warnings if supported.
	if l.sink.colorize {
		switch level {
		case LevelError:
			message = color.RedString("%s", message)
		case LevelWarn:
			message = color.YellowString("%s", message)
		}
	}

	// Format the line.
	timestamp := time.Now().Format("2006-01-02 15:04:05.000000")
	var line string
	if l.prefix != "" {
		line = fmt.Sprintf("%s %s [%s] %s\n", timestamp, level.abbreviation(), l.prefix, message)
	} else {
		line = fmt.Sprintf("%s %s %s\n", timestamp, level.abbreviation(), message)
	}

	// Write the line.
	l.sink.write(line)
}

// Error logs errors with semantics equivalent to fmt.Sprint.
func (l *Logger) Error(v ...interface{}) {
	if l.enabled(LevelError) {
		l.output(LevelError, fmt.Sprint(v...))
	}
}

// Errorf logs errors with semantics equivalent to fmt.Sprintf.
func (l *Logger) Errorf(format string, v ...interface{}) {
	if l.enabled(LevelError) {
		l.output(LevelError, fmt.Sprintf(format, v...))
	}
}

// Warn logs warnings with semantics equivalent to fmt.Sprint.
func (l *Logger) Warn(v ...interface{}) {
	if l.enabled(LevelWarn) {
		l.output(LevelWarn, fmt.Sprint(v...))
	}
}

// Warnf logs warnings with semantics equivalent to fmt.Sprintf.
func (l *Logger) Warnf(format string, v ...interface{}) {
	if l.enabled(LevelWarn) {
		l.output(LevelWarn, fmt.Sprintf(format, v...))
	}
}

// Info logs information with semantics equivalent to fmt.Sprint.
func (l *Logger) Info(v ...interface{}) {
	if l.enabled(LevelInfo) {
		l.output(LevelInfo, fmt.Sprint(v...))
	}
}

// Infof logs information with semantics equivalent to fmt.Sprintf.
func (l *Logger) Infof(format string, v ...interface{}) {
	if l.enabled(LevelInfo) {
		l.output(LevelInfo, fmt.Sprintf(format, v...))
	}
}

// Debug logs debug information with semantics equivalent to fmt.Sprint.
func (l *Logger) Debug(v ...interface{}) {
	if l.enabled(LevelDebug) {
		l.output(LevelDebug, fmt.Sprint(v...))
	}
}

// Debugf logs debug information with semantics equivalent to fmt.Sprintf.
func (l *Logger) Debugf(format string, v ...interface{}) {
	if l.enabled(LevelDebug) {
		l.output(LevelDebug, fmt.Sprintf(format, v...))
	}
}

// Trace logs low-level information with semantics equivalent to fmt.Sprint.
func (l *Logger) Trace(v ...interface{}) {
	if l.enabled(LevelTrace) {
		l.output(LevelTrace, fmt.Sprint(v...))
	}
}

// Tracef logs low-level information with semantics equivalent to fmt.Sprintf.
func (l *Logger) Tracef(format string, v ...interface{}) {
	if l.enabled(LevelTrace) {
		l.output(LevelTrace, fmt.Sprintf(format, v...))
	}
}

// Writer returns an io.Writer that logs each line written to it at the
// specified level.
func (l *Logger) Writer(level Level) io.Writer {
	// If the logger won't emit at this level, then we can just discard input.
	// This saves us the overhead of scanning lines.
	if !l.enabled(level) {
		return io.Discard
	}

	// Create the writer.
	return &writer{
		callback: func(line string) {
			l.output(level, line)
		},
	}
}
