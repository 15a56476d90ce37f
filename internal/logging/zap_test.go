package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_WritesFieldsAndChildren(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewZapLogger(zap.New(core))
	ctx := context.Background()

	log.Info(ctx, "feed loaded", "posts", 3)
	log.With("module", "grpc_server").Warn(ctx, "slow call", "method", "GetFeed")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "feed loaded", entries[0].Message)
	assert.Equal(t, int64(3), entries[0].ContextMap()["posts"])

	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "grpc_server", entries[1].ContextMap()["module"])
	assert.Equal(t, "GetFeed", entries[1].ContextMap()["method"])
}

func TestNew_Formats(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(FormatJSON, &buf)
	require.NoError(t, err)
	l.Info(context.Background(), "hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)

	l, err = New(FormatZap, &buf)
	require.NoError(t, err)
	assert.IsType(t, &ZapLogger{}, l)

	_, err = New("xml", &buf)
	assert.Error(t, err)
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.With("a", 1).Error(context.TODO(), "ignored")
	})
}
