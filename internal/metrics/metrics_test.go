package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/polyglot/api/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveGeneration(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveGeneration("go", models.SourceTemplate, 5*time.Millisecond)
	m.ObserveGeneration("go", models.SourceTemplate, 5*time.Millisecond)
	m.ObserveGeneration("python", models.SourceRemote, time.Second)
	m.ObserveRemoteFailure("timeout")

	if got := testutil.ToFloat64(m.Generations.WithLabelValues("go", "template")); got != 2 {
		t.Errorf("Expected 2 go/template generations, got %v", got)
	}
	if got := testutil.ToFloat64(m.Generations.WithLabelValues("python", "remote")); got != 1 {
		t.Errorf("Expected 1 python/remote generation, got %v", got)
	}
	if got := testutil.ToFloat64(m.RemoteFailures.WithLabelValues("timeout")); got != 1 {
		t.Errorf("Expected 1 timeout failure, got %v", got)
	}
}

func TestObserveGenerationBoundsLanguageLabel(t *testing.T) {
	m := New(prometheus.NewRegistry())

	for i := 0; i < 500; i++ {
		m.ObserveGeneration(fmt.Sprintf("lang-%d", i), models.SourceTemplate, time.Millisecond)
	}
	m.ObserveGeneration("rust", models.SourceTemplate, time.Millisecond)

	if got := testutil.CollectAndCount(m.Generations); got != 2 {
		t.Errorf("Expected 2 series, got %d", got)
	}
	if got := testutil.ToFloat64(m.Generations.WithLabelValues("other", "template")); got != 500 {
		t.Errorf("Expected 500 generations labelled other, got %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.Analyses.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "polyglot_analyses_total 1") {
		t.Errorf("Expected analyses counter in output, got:\n%s", rec.Body.String())
	}
}
