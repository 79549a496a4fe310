package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newFakeServer(t *testing.T, path string, status int, body string, captured *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, path) {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if captured != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, captured)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIComplete(t *testing.T) {
	var sent map[string]any
	srv := newFakeServer(t, "/chat/completions", http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1700000000,
		"model": "gpt-3.5-turbo",
		"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "print('hi')"}}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
	}`, &sent)

	c, err := New(Config{Provider: ProviderOpenAI, APIKey: "test-key", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	text, err := c.Complete(context.Background(), CompletionRequest{
		System:      "be helpful",
		Prompt:      "say hi",
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "print('hi')" {
		t.Errorf("Expected completion text, got %q", text)
	}

	if sent["model"] != "gpt-3.5-turbo" {
		t.Errorf("Expected model gpt-3.5-turbo, got %v", sent["model"])
	}
	if sent["temperature"] != 0.7 {
		t.Errorf("Expected temperature 0.7, got %v", sent["temperature"])
	}
	if messages, ok := sent["messages"].([]any); !ok || len(messages) != 2 {
		t.Errorf("Expected system and user messages, got %v", sent["messages"])
	}
}

func TestOpenAICompleteEmptyChoices(t *testing.T) {
	srv := newFakeServer(t, "/chat/completions", http.StatusOK, `{"id": "x", "object": "chat.completion", "created": 1, "model": "m", "choices": []}`, nil)

	c, _ := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/"})
	if _, err := c.Complete(context.Background(), CompletionRequest{Prompt: "p"}); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got %v", err)
	}
}

func TestOpenAICompleteAuthFailure(t *testing.T) {
	srv := newFakeServer(t, "/chat/completions", http.StatusUnauthorized, `{"error": {"message": "bad key", "type": "invalid_request_error"}}`, nil)

	c, _ := New(Config{APIKey: "bad-key", BaseURL: srv.URL + "/"})
	if _, err := c.Complete(context.Background(), CompletionRequest{Prompt: "p"}); err == nil {
		t.Error("Expected error on 401")
	}
}

func TestAnthropicComplete(t *testing.T) {
	var sent map[string]any
	srv := newFakeServer(t, "/messages", http.StatusOK, `{
		"id": "msg_1",
		"type": "message",
		"role": "assistant",
		"model": "claude-3-5-haiku-latest",
		"content": [{"type": "text", "text": "fn main() {}"}],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 10, "output_tokens": 5}
	}`, &sent)

	c, err := New(Config{Provider: ProviderAnthropic, APIKey: "test-key", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	text, err := c.Complete(context.Background(), CompletionRequest{System: "sys", Prompt: "rust main", MaxTokens: 1000, Temperature: 0.7})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "fn main() {}" {
		t.Errorf("Expected completion text, got %q", text)
	}
	if sent["max_tokens"] != float64(1000) {
		t.Errorf("Expected max_tokens 1000, got %v", sent["max_tokens"])
	}
}
