package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// ConsoleHandler is a slog.Handler producing compact bracketed lines:
// [LEVEL] [SYSTEM] [HH:MM:SS] message key=value key=value
type ConsoleHandler struct {
	w         io.Writer
	level     slog.Level
	mu        *sync.Mutex
	system    string
	useColors bool
	attrs     []slog.Attr
}

// NewConsoleHandler creates a console handler writing to w.
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	h := &ConsoleHandler{
		w:         w,
		level:     slog.LevelInfo,
		mu:        &sync.Mutex{},
		useColors: isTerminal(w),
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level.Level()
	}
	return h
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Enabled reports whether the handler handles records at the given level.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes a log record.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder

	h.colorize(&buf, h.levelColor(r.Level), "["+levelString(r.Level)+"]")

	if h.system != "" {
		buf.WriteString(" [" + h.system + "]")
	}

	h.colorize(&buf, colorGray, " ["+r.Time.Format("15:04:05")+"]")

	buf.WriteString(" ")
	buf.WriteString(r.Message)

	for _, attr := range h.attrs {
		h.appendAttr(&buf, attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, a)
		return true
	})

	buf.WriteString("\n")
	_, err := h.w.Write([]byte(buf.String()))
	return err
}

// appendAttr appends a key=value pair. The "system" attr is skipped;
// it is already shown in brackets.
func (h *ConsoleHandler) appendAttr(buf *strings.Builder, a slog.Attr) {
	if a.Key == "system" {
		return
	}
	fmt.Fprintf(buf, " %s=%v", a.Key, a.Value.Any())
}

func (h *ConsoleHandler) colorize(buf *strings.Builder, color, s string) {
	if h.useColors {
		buf.WriteString(color)
		buf.WriteString(s)
		buf.WriteString(colorReset)
		return
	}
	buf.WriteString(s)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	for _, attr := range attrs {
		if attr.Key == "system" {
			clone.system = attr.Value.String()
		}
	}
	return &clone
}

// WithGroup returns the handler unchanged; groups are flattened into
// plain key=value output.
func (h *ConsoleHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *ConsoleHandler) levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorCyan
	default:
		return colorGray
	}
}

func levelString(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
