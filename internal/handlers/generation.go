package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/polyglot/api/internal/analyzer"
	"github.com/polyglot/api/internal/history"
	"github.com/polyglot/api/internal/metrics"
	"github.com/polyglot/api/internal/middleware"
	"github.com/polyglot/api/internal/models"
	"go.uber.org/zap"
)

// maxLanguageLength bounds free-form language names accepted by Generate
const maxLanguageLength = 32

// Generator produces code for a prompt. It never fails.
type Generator interface {
	Generate(ctx context.Context, prompt, language string) models.GenerationResult
}

// GenerationHandler handles code generation endpoints
type GenerationHandler struct {
	generator Generator
	analyzer  *analyzer.Engine
	store     history.Store
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewGenerationHandler creates a new generation handler. m may be nil.
func NewGenerationHandler(generator Generator, engine *analyzer.Engine, store history.Store, m *metrics.Metrics, logger *zap.Logger) *GenerationHandler {
	return &GenerationHandler{
		generator: generator,
		analyzer:  engine,
		store:     store,
		metrics:   m,
		logger:    logger,
	}
}

// Generate godoc
// @Summary Generate code
// @Description Generates code for the prompt in the target language. Falls back to a template when the model is unavailable.
// @Tags generation
// @Accept json
// @Produce json
// @Param request body models.GenerationRequest true "Prompt and target language"
// @Success 200 {object} models.GenerationResult
// @Failure 400 {object} middleware.APIError
// @Failure 429 {object} middleware.APIError
// @Router /generate [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		middleware.BadRequest(c, "Prompt and language are required")
		return
	}

	// The prompt is generated from and echoed exactly as sent.
	req.Language = strings.TrimSpace(req.Language)
	if strings.TrimSpace(req.Prompt) == "" || req.Language == "" {
		middleware.BadRequest(c, "Prompt and language are required")
		return
	}
	if len(req.Language) > maxLanguageLength {
		middleware.BadRequest(c, "Language name is too long")
		return
	}

	ctx := c.Request.Context()
	result := h.generator.Generate(ctx, req.Prompt, req.Language)

	analysis := h.analyzer.Analyze(ctx, req.Prompt)
	if h.metrics != nil {
		h.metrics.Analyses.Inc()
	}

	owner := middleware.GetClientID(c)
	entry := models.HistoryEntry{GenerationResult: result, Analysis: &analysis}
	if err := h.store.Append(ctx, owner, entry); err != nil {
		h.logger.Error("failed to record history",
			zap.String("owner", owner),
			zap.String("id", result.ID),
			zap.Error(err),
		)
		h.countAppend("error")
	} else {
		h.countAppend("ok")
	}

	c.JSON(http.StatusOK, result)
}

func (h *GenerationHandler) countAppend(outcome string) {
	if h.metrics != nil {
		h.metrics.HistoryAppends.WithLabelValues(outcome).Inc()
	}
}
