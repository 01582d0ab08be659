package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_ContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, true, slog.LevelDebug)

	ctx := AppendCtx(context.Background(), slog.String("build", "b1"))
	ctx = AppendCtx(ctx, slog.Int("worker", 3))
	log.InfoContext(ctx, "encoded", "key", "cards/a")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "encoded", rec["msg"])
	assert.Equal(t, "b1", rec["build"])
	assert.Equal(t, float64(3), rec["worker"])
	assert.Equal(t, "cards/a", rec["key"])
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, false, slog.LevelWarn)
	log.Info("hidden")
	assert.Zero(t, buf.Len())
	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestAppendCtx_DoesNotAlias(t *testing.T) {
	base := AppendCtx(context.Background(), slog.String("a", "1"))
	c1 := AppendCtx(base, slog.String("b", "2"))
	c2 := AppendCtx(base, slog.String("c", "3"))
	a1 := c1.Value(ctxKey{}).([]slog.Attr)
	a2 := c2.Value(ctxKey{}).([]slog.Attr)
	assert.Equal(t, "b", a1[1].Key)
	assert.Equal(t, "c", a2[1].Key)
}
