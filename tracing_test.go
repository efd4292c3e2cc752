package docastest_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/viant/docastest"
)

func TestService_TracingExporter(t *testing.T) {
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()
	cfg := docastest.DefaultConfig()
	cfg.DocsRoot = filepath.Join(t.TempDir(), "docs")
	srv := docastest.New(docastest.WithConfig(cfg), docastest.WithTracingExporter("docastest", "test", exporter))
	defer srv.Shutdown(ctx)

	writeFile(t, filepath.Join(cfg.DocsRoot, "pkg", "TestA_approved.adoc"), "= A\n\nold")
	mismatched := srv.NewCase("a", "pkg::TestA")
	mismatched.Write("new")
	require.Error(t, mismatched.Approve(ctx))

	passed := srv.NewCase("a", "pkg::TestA")
	passed.Write("old")
	require.NoError(t, passed.Approve(ctx))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	attrs := func(i int) map[string]string {
		ret := map[string]string{}
		for _, kv := range spans[i].Attributes {
			ret[string(kv.Key)] = kv.Value.Emit()
		}
		return ret
	}

	assert.Equal(t, "docastest.approve", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	mismatch := attrs(0)
	assert.Equal(t, "pkg::TestA", mismatch["test.id"])
	assert.Equal(t, "mismatched", mismatch["state"])
	assert.Equal(t, "3", mismatch["divergence.line"])
	assert.Equal(t, filepath.Join(cfg.DocsRoot, "pkg", "TestA_received.adoc"), mismatch["path.received"])

	assert.Equal(t, codes.Ok, spans[1].Status.Code)
	pass := attrs(1)
	assert.Equal(t, "passed", pass["state"])
	_, hasLine := pass["divergence.line"]
	assert.False(t, hasLine)
}

func TestService_TracingOutputFile(t *testing.T) {
	ctx := context.Background()
	cfg := docastest.DefaultConfig()
	cfg.DocsRoot = filepath.Join(t.TempDir(), "docs")
	output := filepath.Join(t.TempDir(), "trace.json")
	srv := docastest.New(docastest.WithConfig(cfg), docastest.WithTracing("docastest", "test", output))

	c := srv.NewCase("b", "TestB")
	c.Write("body")
	require.Error(t, c.Approve(ctx))
	require.NoError(t, srv.Shutdown(ctx))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "docastest.approve")
	assert.Contains(t, string(data), "TestB")
}

func TestService_TracingSetupFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	cfg := docastest.DefaultConfig()
	cfg.DocsRoot = filepath.Join(t.TempDir(), "docs")
	output := filepath.Join(t.TempDir(), "missing", "trace.json")
	srv := docastest.New(docastest.WithConfig(cfg),
		docastest.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		docastest.WithTracing("docastest", "test", output))

	assert.Contains(t, buf.String(), "tracing disabled")
	assert.NoError(t, srv.Shutdown(context.Background()))

	c := srv.NewCase("c", "TestC")
	c.Write("body")
	assert.Error(t, c.Approve(context.Background()))
}
