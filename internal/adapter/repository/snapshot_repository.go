package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eslsoft/vocnote/internal/entity"
	"github.com/eslsoft/vocnote/internal/infrastructure/database"
	"github.com/eslsoft/vocnote/internal/repository"
)

const snapshotTable = "kv_store"

var migrationsSQL = `
CREATE TABLE IF NOT EXISTS kv_store (
	store_key  TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

type snapshotRepository struct {
	db    *database.DB
	key   string
	clock func() time.Time
}

// NewSnapshotRepository constructs a SQL-backed key-value snapshot store and ensures its table exists.
func NewSnapshotRepository(ctx context.Context, db *database.DB, key string) (repository.SnapshotRepository, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("snapshot store: key is required")
	}
	if err := migrate(ctx, db); err != nil {
		return nil, err
	}
	return &snapshotRepository{db: db, key: key, clock: time.Now}, nil
}

func migrate(ctx context.Context, db *database.DB) error {
	for _, stmt := range strings.Split(migrationsSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", snapshotTable, err)
		}
	}
	return nil
}

func (r *snapshotRepository) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT payload FROM %s WHERE store_key = %s", snapshotTable, placeholder(r.db.Dialect, 1))
	var payload string
	err := r.db.QueryRowContext(ctx, query, r.key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: load %s: %w", entity.ErrPersistence, r.key, err)
	}
	return []byte(payload), nil
}

func (r *snapshotRepository) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", entity.ErrPersistence, err)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (store_key, payload, updated_at) VALUES (%s, %s, %s) ON CONFLICT (store_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at",
		snapshotTable,
		placeholder(r.db.Dialect, 1),
		placeholder(r.db.Dialect, 2),
		placeholder(r.db.Dialect, 3),
	)
	if _, err := r.db.ExecContext(ctx, query, r.key, string(data), r.clock().UTC()); err != nil {
		return fmt.Errorf("%w: save %s: %w", entity.ErrPersistence, r.key, err)
	}
	return nil
}

func (r *snapshotRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", entity.ErrPersistence, err)
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE store_key = %s", snapshotTable, placeholder(r.db.Dialect, 1))
	if _, err := r.db.ExecContext(ctx, query, r.key); err != nil {
		return fmt.Errorf("%w: clear %s: %w", entity.ErrPersistence, r.key, err)
	}
	return nil
}

func placeholder(dialect database.Dialect, n int) string {
	if dialect == database.DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
