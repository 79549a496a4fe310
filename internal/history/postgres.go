package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/polyglot/api/internal/database"
	"github.com/polyglot/api/internal/models"
)

// PostgresStore keeps history in the history_entries table created by
// database.RunMigrations.
type PostgresStore struct {
	db *database.Postgres
}

func NewPostgresStore(db *database.Postgres) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, owner string, entry models.HistoryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	return pgx.BeginFunc(ctx, s.db.Pool(), func(tx pgx.Tx) error {
		// A re-appended ID takes a fresh seq so it sorts first.
		_, err := tx.Exec(ctx, `
			INSERT INTO history_entries (owner, entry_id, language, payload, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (owner, entry_id) DO UPDATE SET
				seq        = nextval(pg_get_serial_sequence('history_entries', 'seq')),
				language   = EXCLUDED.language,
				payload    = EXCLUDED.payload,
				created_at = EXCLUDED.created_at`,
			owner, entry.ID, entry.Language, payload, entry.Timestamp)
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}

		_, err = tx.Exec(ctx, `
			DELETE FROM history_entries
			WHERE owner = $1 AND seq NOT IN (
				SELECT seq FROM history_entries WHERE owner = $1 ORDER BY seq DESC LIMIT $2
			)`, owner, MaxEntries)
		if err != nil {
			return fmt.Errorf("trim history: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) List(ctx context.Context, owner string, filter Filter) ([]models.HistoryEntry, error) {
	rows, err := s.db.Pool().Query(ctx,
		`SELECT payload FROM history_entries WHERE owner = $1 ORDER BY seq DESC LIMIT $2`,
		owner, MaxEntries)
	if err != nil {
		return nil, err
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.HistoryEntry, error) {
		var payload []byte
		var e models.HistoryEntry
		if err := row.Scan(&payload); err != nil {
			return e, err
		}
		if err := json.Unmarshal(payload, &e); err != nil {
			return e, fmt.Errorf("decode entry: %w", err)
		}
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return apply(entries, filter), nil
}

func (s *PostgresStore) Delete(ctx context.Context, owner, id string) error {
	tag, err := s.db.Pool().Exec(ctx,
		`DELETE FROM history_entries WHERE owner = $1 AND entry_id = $2`, owner, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context, owner string) error {
	_, err := s.db.Pool().Exec(ctx, `DELETE FROM history_entries WHERE owner = $1`, owner)
	return err
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
