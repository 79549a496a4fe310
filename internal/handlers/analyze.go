package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/polyglot/api/internal/analyzer"
	"github.com/polyglot/api/internal/metrics"
	"github.com/polyglot/api/internal/middleware"
	"github.com/polyglot/api/internal/models"
	"go.uber.org/zap"
)

type AnalyzeHandler struct {
	engine  *analyzer.Engine
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewAnalyzeHandler(engine *analyzer.Engine, m *metrics.Metrics, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		engine:  engine,
		metrics: m,
		logger:  logger,
	}
}

type AnalyzeRequest struct {
	Prompt string `json:"prompt"`
}

type AnalyzeResponse struct {
	Analysis       models.AnalysisResult `json:"analysis"`
	Frameworks     []string              `json:"frameworks"`
	EnhancedPrompt string                `json:"enhanced_prompt"`
}

// Analyze godoc
// @Summary Suggest a language for a prompt
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Prompt to analyze"
// @Success 200 {object} AnalyzeResponse
// @Failure 400 {object} middleware.APIError
// @Router /analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		middleware.BadRequest(c, "Request body must be JSON with a prompt field")
		return
	}

	result := h.engine.Analyze(c.Request.Context(), req.Prompt)
	if h.metrics != nil {
		h.metrics.Analyses.Inc()
	}

	frameworks := analyzer.FrameworkSuggestions(result.PrimarySuggestion, req.Prompt)

	c.JSON(http.StatusOK, AnalyzeResponse{
		Analysis:       result,
		Frameworks:     frameworks,
		EnhancedPrompt: analyzer.EnhancePrompt(req.Prompt, result.PrimarySuggestion, frameworks),
	})
}
