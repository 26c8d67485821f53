package log

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// Тесты меняют slog.Default(), поэтому t.Parallel() не используем.

func newSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFrom_ReturnsDefault_WhenNoLoggerInContext(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	require.Equal(t, def, From(context.Background()))
}

func TestIntoAndFrom_RoundTrip(t *testing.T) {
	l := newSilent()
	ctx := Into(context.Background(), l)

	require.Equal(t, l, From(ctx))
}

func TestFrom_IgnoresWrongTypeAndNil(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	def := newSilent()
	slog.SetDefault(def)

	ctxWrong := context.WithValue(context.Background(), ctxKey{}, "not-a-logger")
	require.Equal(t, def, From(ctxWrong))

	var nilLogger *slog.Logger
	ctxNil := context.WithValue(context.Background(), ctxKey{}, nilLogger)
	require.Equal(t, def, From(ctxNil))
}

// capHandler копит атрибуты, пришедшие через Logger.With и запись.
type capHandler struct {
	base  []slog.Attr
	attrs map[string]any
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	h.attrs = make(map[string]any)
	for _, a := range h.base {
		h.attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		h.attrs[a.Key] = a.Value.Any()
		return true
	})
	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &capHandler{base: append(append([]slog.Attr{}, h.base...), attrs...)}
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func TestWith_EnrichesAndStoresLogger(t *testing.T) {
	root := &capHandler{}
	ctx := Into(context.Background(), slog.New(root))

	ctx, l := With(ctx, slog.String("op", "payment"))
	require.Equal(t, l, From(ctx))

	// Запись уходит в дочерний handler с базовым атрибутом op.
	child, ok := l.Handler().(*capHandler)
	require.True(t, ok)

	From(ctx).Info("probe", slog.Int("n", 1))
	require.Equal(t, "payment", child.attrs["op"])
	require.EqualValues(t, 1, child.attrs["n"])
}
