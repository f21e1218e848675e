// Package logger provides leveled logging for wortlens.
// Warnings are always shown; debug and info messages need --verbose.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	mu   sync.RWMutex
	base = newBase()
)

func newBase() *log.Logger {
	l := log.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(log.WarnLevel)
	l.SetFormatter(&plainFormatter{})
	return l
}

// plainFormatter renders "[LEVEL] message" followed by any fields as key=value.
type plainFormatter struct{}

func (f *plainFormatter) Format(e *log.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("[")
	b.WriteString(strings.ToUpper(levelName(e.Level)))
	b.WriteString("] ")
	b.WriteString(e.Message)
	for _, k := range sortedKeys(e.Data) {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelName(l log.Level) string {
	if l == log.WarnLevel {
		return "warn"
	}
	return l.String()
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	if v {
		base.SetLevel(log.DebugLevel)
	} else {
		base.SetLevel(log.WarnLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return base.IsLevelEnabled(log.DebugLevel)
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base.SetOutput(w)
}

// SetJSON switches to logrus' JSON formatter, used by the long-running servers.
func SetJSON(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	if enabled {
		base.SetFormatter(&log.JSONFormatter{})
	} else {
		base.SetFormatter(&plainFormatter{})
	}
}

// Logger returns the underlying logrus logger for adapters that take one.
func Logger() *log.Logger {
	return base
}

// WithFields returns an entry carrying structured fields.
func WithFields(fields map[string]any) *log.Entry {
	return base.WithFields(log.Fields(fields))
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	base.Debugf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if base.IsLevelEnabled(log.DebugLevel) {
		fmt.Fprintf(base.Out, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	base.Infof(format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	base.Warnf(format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	base.Errorf(format, args...)
}

func sortedKeys(data log.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
