// Package analyzer scores free-text prompts against a static table of
// languages and suggests which target language the prompt is asking for.
package analyzer

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/polyglot/api/internal/models"
	"go.uber.org/zap"
)

// Engine wraps Analyze with logging for use by request handlers
type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		logger: logger,
	}
}

// Analyze returns the ranked language suggestions for prompt
func (e *Engine) Analyze(ctx context.Context, prompt string) models.AnalysisResult {
	result := Analyze(prompt)

	e.logger.Debug("analyzed prompt",
		zap.Int("prompt_length", len(prompt)),
		zap.String("primary", result.PrimarySuggestion),
		zap.Float64("confidence", result.Confidence),
		zap.Int("suggestions", len(result.Suggestions)),
	)

	return result
}

// dottedCapitalI lowers U+0130 to "i" plus a combining dot, so the result
// never gains an ASCII "i" that the prompt did not contain.
var dottedCapitalI = strings.NewReplacer("\u0130", "i\u0307")

func lower(prompt string) string {
	return strings.ToLower(dottedCapitalI.Replace(prompt))
}

// Analyze scores every language in the table against prompt. It is a pure
// function of its input.
func Analyze(prompt string) models.AnalysisResult {
	normalized := lower(prompt)

	scores := make([]float64, len(scoreTable))
	matches := make([]models.Matches, len(scoreTable))
	index := make(map[string]int, len(scoreTable))

	for i, profile := range scoreTable {
		index[profile.Language] = i

		for _, keyword := range profile.Keywords {
			if strings.Contains(normalized, keyword) {
				scores[i] += profile.Weight * keywordFactor
				matches[i].Keywords = append(matches[i].Keywords, keyword)
			}
		}

		for _, pattern := range profile.Patterns {
			if pattern.MatchString(prompt) {
				scores[i] += profile.Weight * patternFactor
				matches[i].Patterns++
			}
		}

		for _, framework := range profile.Frameworks {
			if strings.Contains(normalized, framework) {
				scores[i] += profile.Weight * frameworkFactor
				matches[i].Frameworks = append(matches[i].Frameworks, framework)
			}
		}
	}

	for _, pt := range projectTypes {
		if !strings.Contains(normalized, pt.Phrase) {
			continue
		}
		for _, lang := range pt.Languages {
			if i, ok := index[lang]; ok {
				scores[i] += projectTypeBias
			}
		}
	}

	for _, cb := range contextBoosts {
		if !containsAny(normalized, cb.Triggers) {
			continue
		}
		for lang, boost := range cb.Boosts {
			scores[index[lang]] += boost
		}
	}

	suggestions := make([]models.Suggestion, 0, len(scoreTable))
	for i, profile := range scoreTable {
		if scores[i] <= 0 {
			continue
		}
		suggestions = append(suggestions, models.Suggestion{
			Language:   profile.Language,
			Score:      scores[i],
			Confidence: Confidence(scores[i]),
			Matches:    matches[i],
		})
	}

	sort.SliceStable(suggestions, func(a, b int) bool {
		return suggestions[a].Score > suggestions[b].Score
	})

	result := models.AnalysisResult{
		Suggestions:       suggestions,
		PrimarySuggestion: defaultLanguage,
	}
	if len(suggestions) > 0 {
		result.PrimarySuggestion = suggestions[0].Language
		result.Confidence = suggestions[0].Confidence
	}
	if len(suggestions) > maxSuggestions {
		result.Suggestions = suggestions[:maxSuggestions]
	}

	return result
}

// Confidence normalizes a raw score into [0, 1]
func Confidence(score float64) float64 {
	if score <= 0 {
		return 0
	}
	return math.Min(score/confidenceScale, 1)
}

// FrameworkSuggestions lists the frameworks of language that the prompt
// mentions, in table order.
func FrameworkSuggestions(language, prompt string) []string {
	normalized := lower(prompt)
	found := []string{}
	for _, profile := range scoreTable {
		if profile.Language != language {
			continue
		}
		for _, framework := range profile.Frameworks {
			if strings.Contains(normalized, framework) {
				found = append(found, framework)
			}
		}
	}
	return found
}

// EnhancePrompt appends a language directive to prompt when the analyzer is
// confident about it (confidence above 0.6).
func EnhancePrompt(prompt, language string, frameworks []string) string {
	if Analyze(prompt).Confidence <= 0.6 {
		return prompt
	}

	enhanced := prompt + "\n\n// Generate this in " + language
	if len(frameworks) > 0 {
		enhanced += " using " + strings.Join(frameworks, ", ")
	}
	return enhanced
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
