// Package logging implements level-gated stderr diagnostics: a silent
// default, a DEBUG level that logs one line per completed file or
// directory, and a TRACE level that additionally logs worker-internal
// events. The output format is not meant to be machine-parsed, so a thin
// wrapper around the standard log package is enough.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level selects which diagnostic lines are emitted.
type Level int

const (
	// LevelSilent emits nothing beyond the final result.
	LevelSilent Level = iota
	// LevelDebug emits one line per file/directory completion.
	LevelDebug
	// LevelTrace additionally emits worker-internal events.
	LevelTrace
)

// Logger is the stderr diagnostic sink shared by the CLI and every
// traversal strategy.
type Logger struct {
	level Level
	out   *log.Logger
}

// New constructs a Logger writing to w at the given level.
func New(level Level, w io.Writer) *Logger {
	return &Logger{level: level, out: log.New(w, "", 0)}
}

// Default constructs a silent Logger writing to os.Stderr.
func Default() *Logger {
	return New(LevelSilent, os.Stderr)
}

// Entry logs a file or directory completion: "<relpath>\t<digest_hex>".
func (l *Logger) Entry(relpath, digestHex string) {
	if l == nil || l.level < LevelDebug {
		return
	}
	l.out.Printf("%s\t%s", relpath, digestHex)
}

// Trace logs a worker-internal event, only at LevelTrace.
func (l *Logger) Trace(format string, args ...any) {
	if l == nil || l.level < LevelTrace {
		return
	}
	l.out.Print(fmt.Sprintf(format, args...))
}

// Level reports the logger's configured level.
func (l *Logger) Level() Level {
	if l == nil {
		return LevelSilent
	}
	return l.level
}
