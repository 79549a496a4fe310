package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/polyglot/api/internal/middleware"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("NATS_URL", "")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	out, err := run(t, "generate", "-l", "python", "parse", "a", "csv")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(out, "parse a csv") {
		t.Errorf("Expected template to embed prompt, got:\n%s", out)
	}
}

func TestGenerateCommandPicksLanguage(t *testing.T) {
	out, err := run(t, "generate", "--json", "Build a webpage with a styled button")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(out, `"language": "html"`) {
		t.Errorf("Expected analyzer to choose html, got:\n%s", out)
	}
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := run(t, "analyze", "Create a REST API with SQL database and JOIN queries")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.HasPrefix(out, "Primary: sql") {
		t.Errorf("Expected sql as primary, got:\n%s", out)
	}
}

func TestLanguagesAndHintsCommands(t *testing.T) {
	out, err := run(t, "languages")
	if err != nil {
		t.Fatalf("languages failed: %v", err)
	}
	if strings.Count(out, "\n") != 11 || !strings.Contains(out, ".rs") {
		t.Errorf("Unexpected languages output:\n%s", out)
	}

	out, _ = run(t, "hints", "cobol")
	if !strings.Contains(out, "No hints for cobol") {
		t.Errorf("Unexpected hints output: %s", out)
	}
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	out, err := run(t, "token", "ci-bot")
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}

	subject, err := middleware.ParseClientToken("cli-secret", strings.TrimSpace(out))
	if err != nil || subject != "ci-bot" {
		t.Errorf("Expected valid token for ci-bot, got %q, %v", subject, err)
	}
}

func TestPingMemoryBackend(t *testing.T) {
	t.Setenv("HISTORY_BACKEND", "memory")
	out, err := run(t, "ping")
	if err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	if !strings.Contains(out, "history  memory") || !strings.Contains(out, "disabled") {
		t.Errorf("Unexpected ping output:\n%s", out)
	}
}
