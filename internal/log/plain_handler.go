package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// PlainHandler is an slog.Handler that writes one "LEVEL: message" line per
// record, followed by " key=value" for each attribute. It omits the
// timestamp so output can be compared line by line in harness logs.
//
// Handlers derived through WithAttrs and WithGroup share the parent's
// mutex, so records from any of them never interleave on w.
type PlainHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	opts   slog.HandlerOptions
	prefix string
	attrs  []slog.Attr
}

// NewPlainHandler creates a PlainHandler writing to w.
// If opts is nil, records at Info and above are written.
func NewPlainHandler(w io.Writer, opts *slog.HandlerOptions) *PlainHandler {
	h := &PlainHandler{mu: &sync.Mutex{}, w: w}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *PlainHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle writes the record as a single line.
func (h *PlainHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(LevelName(r.Level))
	sb.WriteString(": ")
	sb.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.prefix, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

// WithAttrs returns a new handler with the given attributes added.
func (h *PlainHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := h.clone()
	for _, a := range attrs {
		nh.attrs = append(nh.attrs, prefixed(h.prefix, a))
	}
	return nh
}

// WithGroup returns a new handler that qualifies later keys with name.
func (h *PlainHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := h.clone()
	nh.prefix = h.prefix + name + "."
	return nh
}

func (h *PlainHandler) clone() *PlainHandler {
	return &PlainHandler{
		mu:     h.mu,
		w:      h.w,
		opts:   h.opts,
		prefix: h.prefix,
		attrs:  append([]slog.Attr(nil), h.attrs...),
	}
}

// prefixed qualifies the attribute key with the group prefix.
func prefixed(prefix string, a slog.Attr) slog.Attr {
	if prefix == "" {
		return a
	}
	return slog.Attr{Key: prefix + a.Key, Value: a.Value}
}

// writeAttr appends " key=value", flattening groups into dotted keys.
func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			writeAttr(sb, groupPrefix, ga)
		}
		return
	}
	fmt.Fprintf(sb, " %s%s=%s", prefix, a.Key, quoteIfNeeded(a.Value.String()))
}

// quoteIfNeeded quotes values containing spaces, quotes or control characters.
func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	for _, r := range s {
		if r <= ' ' || r == '"' || r == '=' || r == 0x7f {
			return fmt.Sprintf("%q", s)
		}
	}
	return s
}
