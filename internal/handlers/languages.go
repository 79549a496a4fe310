package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/polyglot/api/internal/languages"
)

// LanguagesHandler serves the static language catalog
type LanguagesHandler struct{}

func NewLanguagesHandler() *LanguagesHandler {
	return &LanguagesHandler{}
}

// List godoc
// @Summary List supported languages
// @Tags languages
// @Produce json
// @Success 200 {array} languages.Language
// @Router /languages [get]
func (h *LanguagesHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, languages.Languages())
}

// Hints returns authoring tips for one language; unknown languages get an empty list
func (h *LanguagesHandler) Hints(c *gin.Context) {
	language := c.Param("language")
	c.JSON(http.StatusOK, gin.H{
		"language": language,
		"hints":    languages.Hints(language),
	})
}
