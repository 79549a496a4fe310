// Package history keeps the most recent generations for each client.
package history

import (
	"context"
	"errors"
	"strings"

	"github.com/polyglot/api/internal/models"
)

// MaxEntries is the per-owner cap. Appending beyond it evicts the oldest entry.
const MaxEntries = 50

// ErrNotFound is returned when deleting an entry the owner does not have
var ErrNotFound = errors.New("history entry not found")

// Store persists history entries partitioned by owner. List returns entries
// most recent first. Appending an ID the owner already has replaces that entry
// and moves it to the front.
type Store interface {
	Append(ctx context.Context, owner string, entry models.HistoryEntry) error
	List(ctx context.Context, owner string, filter Filter) ([]models.HistoryEntry, error)
	Delete(ctx context.Context, owner, id string) error
	Clear(ctx context.Context, owner string) error
	Ping(ctx context.Context) error
	Close() error
}

// Filter narrows a listing. Empty fields match everything.
type Filter struct {
	Language string
	Query    string
}

// Match reports whether e passes the filter
func (f Filter) Match(e models.HistoryEntry) bool {
	if f.Language != "" && f.Language != "all" && !strings.EqualFold(e.Language, f.Language) {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(e.Prompt), q) ||
		strings.Contains(strings.ToLower(e.Code), q)
}

func apply(entries []models.HistoryEntry, f Filter) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
