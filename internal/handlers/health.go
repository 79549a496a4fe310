package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency that can report its own health
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	version      string
	dependencies map[string]Pinger
	llmStatus    func() string
	now          func() time.Time
}

// NewHealthHandler creates a new health handler. llmStatus describes the
// remote model path ("disabled", "closed", "open", ...); it may be nil.
func NewHealthHandler(version string, dependencies map[string]Pinger, llmStatus func() string) *HealthHandler {
	return &HealthHandler{
		version:      version,
		dependencies: dependencies,
		llmStatus:    llmStatus,
		now:          time.Now,
	}
}

// HealthResponse represents the deep health check response
type HealthResponse struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Timestamp    time.Time         `json:"timestamp"`
	Dependencies map[string]string `json:"dependencies"`
}

// Health returns basic liveness
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": h.now().UTC(),
	})
}

// DeepHealth returns health status with dependency checks
func (h *HealthHandler) DeepHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	deps := make(map[string]string, len(h.dependencies)+1)
	allHealthy := true

	names := make([]string, 0, len(h.dependencies))
	for name := range h.dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		dep := h.dependencies[name]
		if dep == nil {
			deps[name] = "not configured"
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			deps[name] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			deps[name] = "healthy"
		}
	}

	// an open breaker is reported but not fatal: generation still answers from templates
	if h.llmStatus != nil {
		deps["llm"] = h.llmStatus()
	}

	status := "OK"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthResponse{
		Status:       status,
		Service:      "polyglot-api",
		Version:      h.version,
		Timestamp:    h.now().UTC(),
		Dependencies: deps,
	})
}
