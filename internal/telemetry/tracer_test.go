package telemetry

import (
	"context"
	"testing"
)

func TestInitTracerDisabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "polyglot-api", "test", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("Expected no-op shutdown, got %v", err)
	}
}

func TestInitTracerExporter(t *testing.T) {
	// the gRPC exporter dials lazily, so an unreachable collector is not an error here
	shutdown, err := InitTracer(context.Background(), "polyglot-api", "test", "127.0.0.1:4317")
	if err != nil {
		t.Fatalf("InitTracer failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	shutdown(ctx)
}
