package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/polyglot/api/internal/analyzer"
	"github.com/polyglot/api/internal/history"
	"github.com/polyglot/api/internal/middleware"
	"github.com/polyglot/api/internal/models"
	"go.uber.org/zap"
)

// HistoryHandler exposes the caller's generation history
type HistoryHandler struct {
	store  history.Store
	logger *zap.Logger
}

func NewHistoryHandler(store history.Store, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{store: store, logger: logger}
}

type HistoryResponse struct {
	Entries []models.HistoryEntry `json:"entries"`
	Count   int                   `json:"count"`
}

// List godoc
// @Summary List generation history
// @Description Most recent first, at most 50 entries per client.
// @Tags history
// @Produce json
// @Param language query string false "Language filter, 'all' for any"
// @Param q query string false "Case-insensitive search over prompt and code"
// @Success 200 {object} HistoryResponse
// @Router /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	filter := history.Filter{
		Language: c.Query("language"),
		Query:    strings.TrimSpace(c.Query("q")),
	}

	entries, err := h.store.List(c.Request.Context(), middleware.GetClientID(c), filter)
	if err != nil {
		h.logger.Error("failed to list history", zap.Error(err))
		middleware.HistoryUnavailable(c, err)
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	c.JSON(http.StatusOK, HistoryResponse{Entries: entries, Count: len(entries)})
}

// Append stores a result produced elsewhere, such as a client-side fallback
func (h *HistoryHandler) Append(c *gin.Context) {
	var entry models.HistoryEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.Error(err)
		middleware.BadRequest(c, "Invalid history entry")
		return
	}
	if entry.ID == "" || entry.Language == "" || entry.Code == "" {
		middleware.BadRequest(c, "id, code and language are required")
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.Source == "" {
		entry.Source = models.SourceTemplate
	}
	if entry.Analysis == nil {
		analysis := analyzer.Analyze(entry.Prompt)
		entry.Analysis = &analysis
	}

	if err := h.store.Append(c.Request.Context(), middleware.GetClientID(c), entry); err != nil {
		h.logger.Error("failed to append history", zap.String("id", entry.ID), zap.Error(err))
		middleware.HistoryUnavailable(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *HistoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	err := h.store.Delete(c.Request.Context(), middleware.GetClientID(c), id)
	if errors.Is(err, history.ErrNotFound) {
		middleware.NotFound(c, "History entry not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete history entry", zap.String("id", id), zap.Error(err))
		middleware.HistoryUnavailable(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *HistoryHandler) Clear(c *gin.Context) {
	if err := h.store.Clear(c.Request.Context(), middleware.GetClientID(c)); err != nil {
		h.logger.Error("failed to clear history", zap.Error(err))
		middleware.HistoryUnavailable(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
