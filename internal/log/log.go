// Package log provides context-aware diagnostic logging for gw.
//
// Everything written through a Logger goes to stderr in practice: stdout is
// reserved for the result payload consumed by the shell wrapper.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
)

type ctxKey struct{}

// Logger provides user-facing diagnostics, verbose command tracing and
// structured debug lines.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
	kv      *charmlog.Logger
}

// New creates a new logger. quiet suppresses all output, including warnings.
func New(out io.Writer, verbose, quiet bool) *Logger {
	kv := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: false,
		Level:           charmlog.WarnLevel,
	})
	if verbose {
		kv.SetLevel(charmlog.DebugLevel)
	}
	return &Logger{out: out, verbose: verbose, quiet: quiet, kv: kv}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a logger writing to io.Discard if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return New(io.Discard, false, true)
}

// Printf writes formatted output unless quiet.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output unless quiet.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Command logs an external command execution and returns a callback that
// records how long it took. Both are no-ops unless verbose.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	if !l.IsVerbose() {
		return func(time.Duration) {}
	}
	line := "$ " + strings.TrimSpace(name+" "+strings.Join(args, " "))
	if dir != "" {
		line = "[" + dir + "] " + line
	}
	return func(d time.Duration) {
		fmt.Fprintf(l.out, "%s (%s)\n", line, d.Round(time.Millisecond))
	}
}

// Debug writes a structured key=value line in verbose mode.
// A trailing key without a value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.IsVerbose() {
		return
	}
	l.kv.Debug(msg, evenPairs(keyvals)...)
}

// Warn writes a structured warning unless quiet.
func (l *Logger) Warn(msg string, keyvals ...any) {
	if l.quiet {
		return
	}
	l.kv.Warn(msg, evenPairs(keyvals)...)
}

// IsVerbose reports whether verbose output is active.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// IsQuiet reports whether output is suppressed.
func (l *Logger) IsQuiet() bool {
	return l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}

func evenPairs(keyvals []any) []any {
	if len(keyvals)%2 != 0 {
		return keyvals[:len(keyvals)-1]
	}
	return keyvals
}
