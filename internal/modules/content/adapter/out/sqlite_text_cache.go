package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jornada/internal/modules/content/domain"
	contentout "jornada/internal/modules/content/port/out"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteTextCache keeps downloaded passages in offline_texts and their
// registry in offline_index. Both tables change in the same transaction.
type SQLiteTextCache struct {
	db *sql.DB
}

func NewSQLiteTextCache(dbPath string) (*SQLiteTextCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	cache := &SQLiteTextCache{db: db}
	if err := cache.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

var _ contentout.TextCache = (*SQLiteTextCache)(nil)

func (s *SQLiteTextCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS offline_texts (
  key TEXT PRIMARY KEY,
  text TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS offline_index (
  key TEXT PRIMARY KEY,
  edition TEXT NOT NULL,
  reference TEXT NOT NULL,
  saved_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create offline tables: %w", err)
	}
	return nil
}

func (s *SQLiteTextCache) Close() error {
	return s.db.Close()
}

func (s *SQLiteTextCache) Get(ctx context.Context, key string) (domain.CachedText, bool, error) {
	const query = `
SELECT i.key, i.edition, i.reference, i.saved_at, t.text
FROM offline_index i
JOIN offline_texts t ON t.key = i.key
WHERE i.key = ?;
`
	var (
		item    domain.CachedText
		savedAt string
	)
	err := s.db.QueryRowContext(ctx, query, key).Scan(&item.Key, &item.Edition, &item.Reference, &savedAt, &item.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CachedText{}, false, nil
	}
	if err != nil {
		return domain.CachedText{}, false, fmt.Errorf("get offline text: %w", err)
	}
	item.SavedAt = parseTime(savedAt)
	return item, true, nil
}

func (s *SQLiteTextCache) Put(ctx context.Context, text domain.CachedText) error {
	if text.Key == "" {
		text.Key = domain.OfflineKey(text.Edition, text.Reference)
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		const putText = `
INSERT INTO offline_texts (key, text) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET text=excluded.text;
`
		if _, err := tx.ExecContext(ctx, putText, text.Key, text.Text); err != nil {
			return fmt.Errorf("upsert offline text: %w", err)
		}
		const putIndex = `
INSERT INTO offline_index (key, edition, reference, saved_at) VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  edition=excluded.edition,
  reference=excluded.reference,
  saved_at=excluded.saved_at;
`
		if _, err := tx.ExecContext(ctx, putIndex, text.Key, text.Edition, text.Reference, text.SavedAt.UTC().Format(timeLayout)); err != nil {
			return fmt.Errorf("upsert offline index: %w", err)
		}
		return nil
	})
}

func (s *SQLiteTextCache) Remove(ctx context.Context, key string) (bool, error) {
	removed := false
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM offline_index WHERE key = ?`, key)
		if err != nil {
			return fmt.Errorf("delete offline index: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			removed = true
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM offline_texts WHERE key = ?`, key); err != nil {
			return fmt.Errorf("delete offline text: %w", err)
		}
		return nil
	})
	return removed, err
}

func (s *SQLiteTextCache) List(ctx context.Context) ([]domain.CachedText, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, edition, reference, saved_at FROM offline_index ORDER BY saved_at, key`)
	if err != nil {
		return nil, fmt.Errorf("list offline index: %w", err)
	}
	defer rows.Close()

	out := []domain.CachedText{}
	for rows.Next() {
		var (
			item    domain.CachedText
			savedAt string
		)
		if err := rows.Scan(&item.Key, &item.Edition, &item.Reference, &savedAt); err != nil {
			return nil, fmt.Errorf("scan offline index: %w", err)
		}
		item.SavedAt = parseTime(savedAt)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate offline index: %w", err)
	}
	return out, nil
}

func (s *SQLiteTextCache) Clear(ctx context.Context) (int, error) {
	cleared := 0
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM offline_index`)
		if err != nil {
			return fmt.Errorf("clear offline index: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			cleared = int(n)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM offline_texts`); err != nil {
			return fmt.Errorf("clear offline texts: %w", err)
		}
		return nil
	})
	return cleared, err
}

func (s *SQLiteTextCache) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func parseTime(raw string) time.Time {
	parsed, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
