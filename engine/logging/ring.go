package logging

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
)

// Ring is an slog.Handler that keeps the last Cap formatted lines. The HUD
// console reads it once per frame.
type Ring struct {
	mu     sync.Mutex
	level  slog.Level
	lines  []string
	next   int
	full   bool
	serial uint64
}

func NewRing(capacity int, level slog.Level) *Ring {
	if capacity <= 0 {
		capacity = 32
	}
	return &Ring{level: level, lines: make([]string, capacity)}
}

func (r *Ring) Enabled(_ context.Context, l slog.Level) bool { return l >= r.level }

func (r *Ring) Handle(_ context.Context, rec slog.Record) error {
	var b strings.Builder
	b.WriteString(LevelName(rec.Level))
	b.WriteString(": ")
	b.WriteString(rec.Message)
	write := func(a slog.Attr) bool {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(a.Value.String())
		return true
	}
	rec.Attrs(write)

	r.mu.Lock()
	r.lines[r.next] = b.String()
	r.next = (r.next + 1) % len(r.lines)
	if r.next == 0 {
		r.full = true
	}
	r.serial++
	r.mu.Unlock()
	return nil
}

func (r *Ring) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ringView{Ring: r, attrs: append([]slog.Attr{}, attrs...)}
}

func (r *Ring) WithGroup(string) slog.Handler { return r }

// Lines returns the buffered lines, oldest first.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]string(nil), r.lines[:r.next]...)
	}
	out := make([]string, 0, len(r.lines))
	out = append(out, r.lines[r.next:]...)
	return append(out, r.lines[:r.next]...)
}

// Serial increments on every stored line.
func (r *Ring) Serial() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.serial
}

// ringView shares storage with its parent Ring but carries extra attrs.
type ringView struct {
	*Ring
	attrs []slog.Attr
}

func (v *ringView) Handle(ctx context.Context, rec slog.Record) error {
	rec = rec.Clone()
	rec.AddAttrs(v.attrs...)
	return v.Ring.Handle(ctx, rec)
}

func (v *ringView) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ringView{Ring: v.Ring, attrs: append(append([]slog.Attr{}, v.attrs...), attrs...)}
}

func (v *ringView) WithGroup(string) slog.Handler { return v }

type tee []slog.Handler

// Tee fans records out to every handler.
func Tee(hs ...slog.Handler) slog.Handler { return tee(hs) }

func (t tee) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (t tee) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, rec.Level) {
			errs = append(errs, h.Handle(ctx, rec.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(tee, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t tee) WithGroup(name string) slog.Handler {
	out := make(tee, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}
