package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

const initialBufferCapacity = 256

// Handler writes one line per record:
//
//	2006-01-02T15:04:05-07:00 LEVEL msg key=value
//
// Attribute values spanning several lines (stack traces) are written after
// the record line, each line indented by a tab.
type Handler struct {
	writer io.Writer
	mu     *sync.Mutex
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewHandler creates a Handler writing records at or above level to w.
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	return &Handler{
		writer: w,
		mu:     &sync.Mutex{},
		level:  level,
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, initialBufferCapacity)

	buf = append(buf, r.Time.Local().Format("2006-01-02T15:04:05-07:00")...)
	buf = append(buf, ' ')
	buf = append(buf, r.Level.String()...)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	var trailer []string

	appendAttr := func(key string, v slog.Value) {
		if key == "" {
			return
		}

		val := v.Resolve().String()

		if strings.Contains(strings.TrimRight(val, "\n"), "\n") {
			trailer = append(trailer, key+":")
			for _, line := range strings.Split(strings.TrimRight(val, "\n"), "\n") {
				trailer = append(trailer, "\t"+line)
			}

			return
		}

		buf = append(buf, ' ')
		buf = append(buf, key...)
		buf = append(buf, '=')

		if needsQuoting(val) {
			buf = append(buf, quoteValue(val)...)
		} else {
			buf = append(buf, val...)
		}
	}

	for _, a := range h.attrs {
		appendAttr(a.Key, a.Value)
	}

	r.Attrs(func(a slog.Attr) bool {
		appendAttr(h.qualify(a.Key), a.Value)

		return true
	})

	buf = append(buf, '\n')

	for _, line := range trailer {
		buf = append(buf, line...)
		buf = append(buf, '\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.writer.Write(buf)

	return err
}

func (h *Handler) qualify(key string) string {
	if len(h.groups) == 0 {
		return key
	}

	return strings.Join(h.groups, ".") + "." + key
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)

	for _, a := range attrs {
		a.Key = h.qualify(a.Key)
		newAttrs = append(newAttrs, a)
	}

	return &Handler{
		writer: h.writer,
		mu:     h.mu,
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	newGroups := make([]string, len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups[len(h.groups)] = name

	return &Handler{
		writer: h.writer,
		mu:     h.mu,
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
	}
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}

	return strings.ContainsAny(s, " \t\n\r\"=")
}

func quoteValue(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")

	return "\"" + s + "\""
}
