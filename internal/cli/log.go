package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level along with the elapsed time since progress
// was created, rounded to the millisecond.
// Example output: "Rendered basic (12ms)"
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Debug(msg, append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))...)
}

// logHooks reports pipeline, cache and converter activity at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnParseStart(context.Context, string) {}

func (h *logHooks) OnParseComplete(_ context.Context, doc string, nodes int, d time.Duration, err error) {
	h.stage("parsed", err, "doc", doc, "nodes", nodes, "elapsed", d.Round(time.Microsecond))
}

func (h *logHooks) OnLayoutStart(context.Context, string, int) {}

func (h *logHooks) OnLayoutComplete(_ context.Context, viz string, d time.Duration, err error) {
	h.stage("laid out", err, "viz", viz, "elapsed", d.Round(time.Microsecond))
}

func (h *logHooks) OnRenderStart(context.Context, []string) {}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.stage("rendered", err, "formats", strings.Join(formats, ","), "elapsed", d.Round(time.Millisecond))
}

// stage logs a completed pipeline stage, or its failure.
func (h *logHooks) stage(msg string, err error, keyvals ...any) {
	if err != nil {
		h.logger.Debug(msg+" with error", append(keyvals, "err", err)...)
		return
	}
	h.logger.Debug(msg, keyvals...)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache store", "type", keyType, "bytes", size)
}

func (h *logHooks) OnConvert(_ context.Context, tool, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("conversion failed", "tool", tool, "format", format, "err", err)
		return
	}
	h.logger.Debug("converted", "tool", tool, "format", format, "bytes", size, "elapsed", d.Round(time.Millisecond))
}
