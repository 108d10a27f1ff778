package logging

import (
	"context"
	"fmt"
	"log/slog"
	"log/syslog"
	"strings"
)

// SyslogHandler forwards slog records to the local syslog daemon, mapping
// Info/Warn/Error to the matching syslog severities.
type SyslogHandler struct {
	w     *syslog.Writer
	level slog.Level
	attrs []slog.Attr
}

func NewSyslogHandler(tag string, level slog.Level) (*SyslogHandler, error) {
	w, err := syslog.New(syslog.LOG_USER|syslog.LOG_INFO, tag)
	if err != nil {
		return nil, fmt.Errorf("open syslog: %w", err)
	}
	return &SyslogHandler{w: w, level: level}, nil
}

func (h *SyslogHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level
}

func (h *SyslogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})

	msg := b.String()
	switch {
	case r.Level >= slog.LevelError:
		return h.w.Err(msg)
	case r.Level >= slog.LevelWarn:
		return h.w.Warning(msg)
	case r.Level >= slog.LevelInfo:
		return h.w.Info(msg)
	default:
		return h.w.Debug(msg)
	}
}

func (h *SyslogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &nh
}

// WithGroup flattens groups; the tool never nests attributes.
func (h *SyslogHandler) WithGroup(string) slog.Handler {
	return h
}
