package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Entry is one formatted record handed to a Sink.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
	// Attrs holds the record's attributes, groups nested as maps.
	Attrs map[string]any
	// Line is the record rendered as a single JSON object.
	Line string
}

// Sink receives batches of entries. It is called from the flushing
// goroutine, never concurrently with itself.
type Sink func(ctx context.Context, entries []Entry) error

// ForwardOption configures a ForwardHandler.
type ForwardOption func(*forwardBuffer)

// WithForwardLevel sets the minimum level that is forwarded.
func WithForwardLevel(level slog.Level) ForwardOption {
	return func(b *forwardBuffer) {
		b.level = level
	}
}

// WithBatchSize flushes as soon as size entries are buffered.
func WithBatchSize(size int) ForwardOption {
	return func(b *forwardBuffer) {
		if size > 0 {
			b.batchSize = size
		}
	}
}

// WithFlushInterval flushes buffered entries at least this often.
func WithFlushInterval(d time.Duration) ForwardOption {
	return func(b *forwardBuffer) {
		if d > 0 {
			b.interval = d
		}
	}
}

type forwardBuffer struct {
	sink      Sink
	level     slog.Level
	batchSize int
	interval  time.Duration

	mu      sync.Mutex
	flushMu sync.Mutex
	batch   []Entry
	timer   *time.Timer
	closed  bool
}

// ForwardHandler is a slog.Handler that buffers records and ships them to a
// Sink in batches. Handlers derived through WithAttrs and WithGroup share the
// same buffer.
type ForwardHandler struct {
	buf    *forwardBuffer
	preset []boundAttr
	groups []string
}

// boundAttr remembers how many groups were open when the attribute was added.
type boundAttr struct {
	depth int
	attr  slog.Attr
}

// NewForwardHandler creates a handler that delivers to sink.
func NewForwardHandler(sink Sink, opts ...ForwardOption) *ForwardHandler {
	b := &forwardBuffer{
		sink:      sink,
		level:     slog.LevelInfo,
		batchSize: 50,
		interval:  2 * time.Second,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.timer = time.AfterFunc(b.interval, b.tick)
	return &ForwardHandler{buf: b}
}

func (b *forwardBuffer) tick() {
	_ = b.flush(context.Background())
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.timer.Reset(b.interval)
	}
}

// Enabled implements slog.Handler.
func (h *ForwardHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.buf.level
}

// Handle implements slog.Handler.
func (h *ForwardHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := h.attrs(r)
	entry := Entry{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
		Line:    formatLine(r, attrs),
	}

	h.buf.mu.Lock()
	if h.buf.closed {
		h.buf.mu.Unlock()
		return nil
	}
	h.buf.batch = append(h.buf.batch, entry)
	full := len(h.buf.batch) >= h.buf.batchSize
	h.buf.mu.Unlock()

	if full {
		go func() { _ = h.buf.flush(context.Background()) }()
	}
	return nil
}

func (h *ForwardHandler) attrs(r slog.Record) map[string]any {
	root := map[string]any{}
	scope := func(depth int) map[string]any {
		m := root
		for _, g := range h.groups[:depth] {
			next, ok := m[g].(map[string]any)
			if !ok {
				next = map[string]any{}
				m[g] = next
			}
			m = next
		}
		return m
	}
	for _, b := range h.preset {
		scope(b.depth)[b.attr.Key] = b.attr.Value.Resolve().Any()
	}
	if r.NumAttrs() > 0 {
		target := scope(len(h.groups))
		r.Attrs(func(a slog.Attr) bool {
			target[a.Key] = a.Value.Resolve().Any()
			return true
		})
	}
	return root
}

func formatLine(r slog.Record, attrs map[string]any) string {
	data := make(map[string]any, len(attrs)+3)
	for k, v := range attrs {
		data[k] = v
	}
	data["level"] = r.Level.String()
	data["msg"] = r.Message
	data["time"] = r.Time.Format(time.RFC3339Nano)
	line, err := json.Marshal(data)
	if err != nil {
		return r.Message
	}
	return string(line)
}

// WithAttrs implements slog.Handler.
func (h *ForwardHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	preset := h.preset[:len(h.preset):len(h.preset)]
	for _, a := range attrs {
		preset = append(preset, boundAttr{depth: len(h.groups), attr: a})
	}
	return &ForwardHandler{buf: h.buf, preset: preset, groups: h.groups}
}

// WithGroup implements slog.Handler.
func (h *ForwardHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ForwardHandler{
		buf:    h.buf,
		preset: h.preset,
		groups: append(h.groups[:len(h.groups):len(h.groups)], name),
	}
}

// Flush delivers everything buffered so far.
func (h *ForwardHandler) Flush(ctx context.Context) error {
	return h.buf.flush(ctx)
}

func (b *forwardBuffer) flush(ctx context.Context) error {
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	b.mu.Lock()
	batch := b.batch
	b.batch = nil
	b.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	return b.sink(ctx, batch)
}

// Close stops the flush timer and delivers what is left. Records handled
// after Close are dropped.
func (h *ForwardHandler) Close(ctx context.Context) error {
	h.buf.mu.Lock()
	h.buf.closed = true
	h.buf.timer.Stop()
	h.buf.mu.Unlock()
	return h.buf.flush(ctx)
}
