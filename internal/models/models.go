package models

import (
	"time"
)

// GenerationSource records which path produced a piece of code
type GenerationSource string

const (
	SourceRemote   GenerationSource = "remote"
	SourceTemplate GenerationSource = "template"
)

// GenerationRequest is the input to a generation
type GenerationRequest struct {
	Prompt   string `json:"prompt"`
	Language string `json:"language"`
}

// GenerationResult is the immutable output of a single generation
type GenerationResult struct {
	ID        string           `json:"id"`
	Code      string           `json:"code"`
	Language  string           `json:"language"`
	Prompt    string           `json:"prompt"`
	Timestamp time.Time        `json:"timestamp"`
	Source    GenerationSource `json:"source,omitempty"`
	Model     string           `json:"model,omitempty"`
}

// HistoryEntry is a stored generation plus the analysis of its prompt
type HistoryEntry struct {
	GenerationResult
	Analysis *AnalysisResult `json:"analysis,omitempty"`
}

// AnalysisResult is the ranked language guess for a prompt
type AnalysisResult struct {
	Suggestions       []Suggestion `json:"suggestions"`
	PrimarySuggestion string       `json:"primarySuggestion"`
	Confidence        float64      `json:"confidence"`
}

// Suggestion is one scored language
type Suggestion struct {
	Language   string  `json:"language"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
	Matches    Matches `json:"matches"`
}

// Matches explains where a suggestion's score came from
type Matches struct {
	Keywords   []string `json:"keywords,omitempty"`
	Frameworks []string `json:"frameworks,omitempty"`
	Patterns   int      `json:"patterns"`
}

// GenerationEvent is published on the event bus after every generation
type GenerationEvent struct {
	ID           string           `json:"id"`
	Language     string           `json:"language"`
	Source       GenerationSource `json:"source"`
	Model        string           `json:"model,omitempty"`
	PromptLength int              `json:"prompt_length"`
	CodeLength   int              `json:"code_length"`
	Timestamp    time.Time        `json:"timestamp"`
}

// NewGenerationEvent summarizes a result for publishing
func NewGenerationEvent(r GenerationResult) GenerationEvent {
	return GenerationEvent{
		ID:           r.ID,
		Language:     r.Language,
		Source:       r.Source,
		Model:        r.Model,
		PromptLength: len(r.Prompt),
		CodeLength:   len(r.Code),
		Timestamp:    r.Timestamp,
	}
}
