// Package generation turns a prompt and a target language into code,
// preferring a remote model and falling back to a local template.
package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/polyglot/api/internal/languages"
	"github.com/polyglot/api/internal/llm"
	"github.com/polyglot/api/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/polyglot/api/internal/generation")

const (
	maxOutputTokens = 1000
	temperature     = 0.7
)

// Publisher receives every generation result
type Publisher interface {
	Publish(ctx context.Context, result models.GenerationResult) error
}

// Recorder observes the outcome of each generation
type Recorder interface {
	ObserveGeneration(language string, source models.GenerationSource, elapsed time.Duration)
	ObserveRemoteFailure(reason string)
}

// Service generates code. The zero value is not usable; use NewService.
type Service struct {
	completer llm.Completer
	publisher Publisher
	recorder  Recorder
	logger    *zap.Logger
	timeout   time.Duration

	newID func() string
	now   func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithCompleter enables the remote model path
func WithCompleter(c llm.Completer) Option {
	return func(s *Service) { s.completer = c }
}

// WithPublisher sends each result to p after generation
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithRecorder reports outcomes to r
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithTimeout bounds the remote attempt
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithClock overrides the ID and time sources
func WithClock(newID func() string, now func() time.Time) Option {
	return func(s *Service) {
		s.newID = newID
		s.now = now
	}
}

func NewService(logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		logger:  logger,
		timeout: 30 * time.Second,
		newID:   func() string { return uuid.New().String() },
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RemoteEnabled reports whether a remote completer is configured
func (s *Service) RemoteEnabled() bool {
	return s.completer != nil
}

// Model names the remote model, or "" when generation is template-only
func (s *Service) Model() string {
	if s.completer == nil {
		return ""
	}
	return s.completer.Model()
}

// Generate produces code for prompt in language. It never fails: any remote
// error is logged and answered with the language's template.
func (s *Service) Generate(ctx context.Context, prompt, language string) models.GenerationResult {
	ctx, span := tracer.Start(ctx, "Generate")
	defer span.End()

	start := time.Now()
	code, source, model := s.generate(ctx, prompt, language)
	elapsed := time.Since(start)

	span.SetAttributes(
		attribute.String("language", language),
		attribute.String("source", string(source)),
	)

	result := models.GenerationResult{
		ID:        s.newID(),
		Code:      code,
		Language:  language,
		Prompt:    prompt,
		Timestamp: s.now().UTC(),
		Source:    source,
		Model:     model,
	}

	if s.recorder != nil {
		s.recorder.ObserveGeneration(language, source, elapsed)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, result); err != nil {
			s.logger.Warn("failed to publish generation event", zap.String("id", result.ID), zap.Error(err))
		}
	}

	s.logger.Info("generation completed",
		zap.String("id", result.ID),
		zap.String("language", language),
		zap.String("source", string(source)),
		zap.Duration("latency", elapsed),
	)

	return result
}

func (s *Service) generate(ctx context.Context, prompt, language string) (string, models.GenerationSource, string) {
	if s.completer != nil {
		code, err := s.complete(ctx, prompt, language)
		if err == nil {
			return code, models.SourceRemote, s.completer.Model()
		}

		s.logger.Warn("remote generation failed, using template",
			zap.String("language", language),
			zap.Error(err),
		)
		if s.recorder != nil {
			s.recorder.ObserveRemoteFailure(failureReason(err))
		}
	}

	return languages.Template(language, prompt), models.SourceTemplate, ""
}

func (s *Service) complete(ctx context.Context, prompt, language string) (code string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("completion panicked: %v", r)
		}
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.completer.Complete(ctx, llm.CompletionRequest{
		System:      SystemInstruction(language),
		Prompt:      UserInstruction(prompt, language),
		MaxTokens:   maxOutputTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	code = strings.TrimSpace(text)
	if code == "" {
		return "", llm.ErrEmptyResponse
	}
	return code, nil
}

// SystemInstruction is the system message sent with every remote request
func SystemInstruction(language string) string {
	return fmt.Sprintf("You are a professional software developer. Generate clean, well-commented, production-ready code in %s. Include proper error handling and best practices.", language)
}

// UserInstruction wraps the user's prompt for the remote model
func UserInstruction(prompt, language string) string {
	return fmt.Sprintf("Generate %s code for: %s", language, prompt)
}
