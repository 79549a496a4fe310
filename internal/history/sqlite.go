package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/polyglot/api/internal/database"
	"github.com/polyglot/api/internal/models"
)

// SQLiteStore keeps history in a local SQLite file
type SQLiteStore struct {
	db *database.SQLite
}

func NewSQLiteStore(db *database.SQLite) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Append(ctx context.Context, owner string, entry models.HistoryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	tx, err := s.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM history_entries WHERE owner = ? AND entry_id = ?`, owner, entry.ID)
	if err != nil {
		return fmt.Errorf("replace entry: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO history_entries (owner, entry_id, language, payload, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		owner, entry.ID, entry.Language, string(payload), entry.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM history_entries
		WHERE owner = ? AND seq NOT IN (
			SELECT seq FROM history_entries WHERE owner = ? ORDER BY seq DESC LIMIT ?
		)`, owner, owner, MaxEntries)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) List(ctx context.Context, owner string, filter Filter) ([]models.HistoryEntry, error) {
	rows, err := s.db.DB().QueryContext(ctx,
		`SELECT payload FROM history_entries WHERE owner = ? ORDER BY seq DESC LIMIT ?`,
		owner, MaxEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := scanPayloads(rows)
	if err != nil {
		return nil, err
	}
	return apply(entries, filter), nil
}

func (s *SQLiteStore) Delete(ctx context.Context, owner, id string) error {
	res, err := s.db.DB().ExecContext(ctx,
		`DELETE FROM history_entries WHERE owner = ? AND entry_id = ?`, owner, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, owner string) error {
	_, err := s.db.DB().ExecContext(ctx, `DELETE FROM history_entries WHERE owner = ?`, owner)
	return err
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanPayloads(rows *sql.Rows) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var e models.HistoryEntry
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
