package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illustspace/gsr/internal/platform/config"
)

func TestDisabledProviderIsNoop(t *testing.T) {
	p, err := NewProvider(config.Tracing{Enabled: false}, nil)
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	_, span := p.Tracer("test").Start(context.Background(), "op")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestStdoutProviderExportsOnShutdown(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewProvider(config.Tracing{Enabled: true, Exporter: "stdout", ServiceName: "gsr-test"}, &buf)
	require.NoError(t, err)
	assert.True(t, p.Enabled())

	_, span := p.Tracer("test").Start(context.Background(), "registry.mint")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "registry.mint")
}

func TestUnknownExporter(t *testing.T) {
	_, err := NewProvider(config.Tracing{Enabled: true, Exporter: "jaeger"}, nil)
	assert.Error(t, err)
}
