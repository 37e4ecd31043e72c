// Package cli implements the teeplot command-line interface.
//
// The commands plot input files through the teeplot library, so every output
// follows the library's naming, format selection and collision rules. The CLI
// is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - line: Plot two columns of a CSV file as a line chart
//   - dot: Draw a Graphviz DOT file
//   - formats: Show the output formats and their state
//   - pack, unpack: Build and parse descriptive filenames
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// makes teeplot report every format it skips. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger writing to w at level.
// Timestamps use "HH:MM:SS.ms" (e.g., "14:32:01.45") and every line carries
// the app name as prefix, so library output is distinguishable in scripts.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          appName,
	})
}

// timer measures one command step.
type timer struct {
	logger *log.Logger
	start  time.Time
}

func startTimer(l *log.Logger) *timer {
	return &timer{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time and keyvals appended.
// Example output: "teeplot: Plotted input=signal.csv files=2 elapsed=12ms"
func (t *timer) done(msg string, keyvals ...any) {
	elapsed := time.Since(t.start).Round(time.Millisecond)
	t.logger.Info(msg, append(keyvals, "elapsed", elapsed)...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
