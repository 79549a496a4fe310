package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/polyglot/api/internal/database"
	"github.com/polyglot/api/internal/models"
	"go.uber.org/zap"
)

func entry(i int, language, prompt, code string) models.HistoryEntry {
	return models.HistoryEntry{
		GenerationResult: models.GenerationResult{
			ID:        fmt.Sprintf("gen-%d", i),
			Code:      code,
			Language:  language,
			Prompt:    prompt,
			Timestamp: time.Date(2025, 1, 1, 0, 0, i, 0, time.UTC),
			Source:    models.SourceTemplate,
		},
	}
}

// runStoreSuite exercises the behavior every backend must share
func runStoreSuite(t *testing.T, open func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("caps at MaxEntries most recent first", func(t *testing.T) {
		s := open(t)
		for i := 0; i < 60; i++ {
			if err := s.Append(ctx, "alice", entry(i, "go", "p", "c")); err != nil {
				t.Fatalf("Append %d failed: %v", i, err)
			}
		}

		got, err := s.List(ctx, "alice", Filter{})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(got) != MaxEntries {
			t.Fatalf("Expected %d entries, got %d", MaxEntries, len(got))
		}
		if got[0].ID != "gen-59" || got[len(got)-1].ID != "gen-10" {
			t.Errorf("Expected gen-59..gen-10, got %s..%s", got[0].ID, got[len(got)-1].ID)
		}
	})

	t.Run("owners are isolated", func(t *testing.T) {
		s := open(t)
		s.Append(ctx, "alice", entry(1, "go", "a", "a"))
		s.Append(ctx, "bob", entry(2, "go", "b", "b"))

		got, _ := s.List(ctx, "bob", Filter{})
		if len(got) != 1 || got[0].ID != "gen-2" {
			t.Errorf("Expected only bob's entry, got %v", got)
		}

		s.Clear(ctx, "alice")
		got, _ = s.List(ctx, "bob", Filter{})
		if len(got) != 1 {
			t.Errorf("Expected clearing alice to leave bob alone, got %d entries", len(got))
		}
	})

	t.Run("filters by language and query", func(t *testing.T) {
		s := open(t)
		s.Append(ctx, "alice", entry(1, "python", "Parse CSV files", "import csv"))
		s.Append(ctx, "alice", entry(2, "go", "http server", "package main"))
		s.Append(ctx, "alice", entry(3, "python", "web scraper", "import requests"))

		got, _ := s.List(ctx, "alice", Filter{Language: "python"})
		if len(got) != 2 {
			t.Errorf("Expected 2 python entries, got %d", len(got))
		}

		got, _ = s.List(ctx, "alice", Filter{Language: "all", Query: "csv"})
		if len(got) != 1 || got[0].ID != "gen-1" {
			t.Errorf("Expected case-insensitive prompt/code match, got %v", got)
		}

		got, _ = s.List(ctx, "alice", Filter{Query: "PACKAGE"})
		if len(got) != 1 || got[0].ID != "gen-2" {
			t.Errorf("Expected code match, got %v", got)
		}
	})

	t.Run("delete and clear", func(t *testing.T) {
		s := open(t)
		s.Append(ctx, "alice", entry(1, "go", "a", "a"))
		s.Append(ctx, "alice", entry(2, "go", "b", "b"))

		if err := s.Delete(ctx, "alice", "gen-1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := s.Delete(ctx, "alice", "gen-1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
		if err := s.Delete(ctx, "bob", "gen-2"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound for another owner's entry, got %v", err)
		}

		if err := s.Clear(ctx, "alice"); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		got, _ := s.List(ctx, "alice", Filter{})
		if len(got) != 0 {
			t.Errorf("Expected empty history after clear, got %d", len(got))
		}
	})

	t.Run("re-append moves entry to front", func(t *testing.T) {
		s := open(t)
		s.Append(ctx, "alice", entry(1, "go", "a", "a"))
		s.Append(ctx, "alice", entry(2, "go", "b", "b"))
		s.Append(ctx, "alice", entry(1, "go", "a", "a2"))

		got, _ := s.List(ctx, "alice", Filter{})
		if len(got) != 2 || got[0].ID != "gen-1" || got[0].Code != "a2" {
			t.Errorf("Expected replaced gen-1 at front, got %v", got)
		}
	})

	t.Run("concurrent re-append keeps one copy", func(t *testing.T) {
		s := open(t)
		s.Append(ctx, "alice", entry(2, "go", "b", "b"))

		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs <- s.Append(ctx, "alice", entry(1, "go", "a", fmt.Sprintf("v%d", i)))
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("Append failed: %v", err)
			}
		}

		got, _ := s.List(ctx, "alice", Filter{})
		if len(got) != 2 || got[0].ID != "gen-1" || got[1].ID != "gen-2" {
			t.Errorf("Expected a single gen-1 ahead of gen-2, got %v", got)
		}
	})

	t.Run("analysis round trips", func(t *testing.T) {
		s := open(t)
		e := entry(1, "sql", "select rows", "SELECT 1")
		e.Analysis = &models.AnalysisResult{PrimarySuggestion: "sql", Confidence: 0.9}
		s.Append(ctx, "alice", e)

		got, _ := s.List(ctx, "alice", Filter{})
		if len(got) != 1 || got[0].Analysis == nil || got[0].Analysis.PrimarySuggestion != "sql" {
			t.Errorf("Expected analysis to be stored, got %+v", got)
		}
		if err := s.Ping(ctx); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store { return NewMemoryStore() })
}

func TestSQLiteStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		db, err := database.NewSQLite(filepath.Join(t.TempDir(), "history.db"))
		if err != nil {
			t.Fatalf("NewSQLite failed: %v", err)
		}
		s := NewSQLiteStore(db)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if err := database.RunMigrations(url, zap.NewNop()); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	runStoreSuite(t, func(t *testing.T) Store {
		db, err := database.NewPostgres(url)
		if err != nil {
			t.Fatalf("NewPostgres failed: %v", err)
		}
		db.Pool().Exec(context.Background(), "TRUNCATE history_entries")
		s := NewPostgresStore(db)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	runStoreSuite(t, func(t *testing.T) Store {
		rdb, err := database.NewRedis(url)
		if err != nil {
			t.Fatalf("NewRedis failed: %v", err)
		}
		rdb.Client().Del(context.Background(), historyKey("alice"), historyKey("bob"))
		s := NewRedisStore(rdb)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestFilterMatch(t *testing.T) {
	e := entry(1, "Python", "Parse JSON", "json.loads(x)")

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty", Filter{}, true},
		{"all", Filter{Language: "all"}, true},
		{"language case-insensitive", Filter{Language: "python"}, true},
		{"other language", Filter{Language: "go"}, false},
		{"prompt query", Filter{Query: "parse"}, true},
		{"code query", Filter{Query: "LOADS"}, true},
		{"miss", Filter{Query: "yaml"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(e); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}
