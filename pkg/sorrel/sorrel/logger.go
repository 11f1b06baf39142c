package sorrel

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sorrel-lang/sorrel/pkg/sorrel/evaluator"
)

// Logger is an alias for evaluator.Logger for convenience
type Logger = evaluator.Logger

// joinLogValues renders values space-separated, the way display output
// is expected to read
func joinLogValues(values ...any) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSuffix(fmt.Sprintln(values...), "\n")
}

// StdoutLogger returns a logger that writes to stdout (default for CLI/REPL)
func StdoutLogger() Logger {
	return evaluator.DefaultLogger
}

// writerLogger writes to an io.Writer
type writerLogger struct {
	w io.Writer
}

func (l *writerLogger) Log(values ...any)     { io.WriteString(l.w, joinLogValues(values...)) }
func (l *writerLogger) LogLine(values ...any) { io.WriteString(l.w, joinLogValues(values...)+"\n") }

// WriterLogger returns a logger that writes to an io.Writer
func WriterLogger(w io.Writer) Logger {
	return &writerLogger{w: w}
}

// BufferedLogger captures display output for later retrieval. Hosts use
// it to collect what a program wrote without touching stdout. Safe for
// concurrent use.
type BufferedLogger struct {
	mu      sync.Mutex
	lines   []string
	pending string
}

// NewBufferedLogger creates a new buffered logger
func NewBufferedLogger() *BufferedLogger {
	return &BufferedLogger{}
}

func (l *BufferedLogger) Log(values ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending += joinLogValues(values...)
}

func (l *BufferedLogger) LogLine(values ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, l.pending+joinLogValues(values...))
	l.pending = ""
}

// String returns all captured output as a single string, one line per
// LogLine call plus any unterminated Log output
func (l *BufferedLogger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var b strings.Builder
	for _, line := range l.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(l.pending)
	return b.String()
}

// Lines returns the completed lines captured so far
func (l *BufferedLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Reset clears all captured output
func (l *BufferedLogger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = nil
	l.pending = ""
}

// nullLogger discards all output
type nullLogger struct{}

func (l *nullLogger) Log(values ...any)     {}
func (l *nullLogger) LogLine(values ...any) {}

// NullLogger returns a logger that discards all output
func NullLogger() Logger {
	return &nullLogger{}
}
