package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/vocnote/internal/infrastructure/config"
)

// Dialect identifies the SQL flavour behind a connection.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// DB bundles a connection with its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// NewConnection opens the configured database and verifies it answers.
func NewConnection(cfg *config.Config, logger logrus.FieldLogger) (*DB, func(), error) {
	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return nil, nil, fmt.Errorf("determine database driver: %w", err)
	}
	dsn, err := cfg.DatabaseURL()
	if err != nil {
		return nil, nil, fmt.Errorf("determine database dsn: %w", err)
	}

	var db *DB
	switch driver {
	case "sqlite3":
		db, err = openSQLite(dsn)
	case "postgres", "pgx":
		db, err = openPostgres(driver, dsn)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, nil, err
	}
	if cfg.Storage.LogSQL {
		logger.WithFields(logrus.Fields{"driver": driver, "dialect": db.Dialect}).Debug("database connected")
	}

	return db, func() {
		_ = db.Close()
	}, nil
}

// OpenSQLite opens a sqlite database, creating the parent directory of file DSNs.
func OpenSQLite(dsn string) (*DB, error) {
	return openSQLite(dsn)
}

func openSQLite(dsn string) (*DB, error) {
	if path := sqliteFilePath(dsn); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	rawDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	rawDB.SetMaxOpenConns(1)
	rawDB.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rawDB.PingContext(ctx); err != nil {
		rawDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &DB{DB: rawDB, Dialect: DialectSQLite}, nil
}

func openPostgres(driver, dsn string) (*DB, error) {
	rawDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", driver, err)
	}
	rawDB.SetMaxOpenConns(4)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rawDB.PingContext(ctx); err != nil {
		rawDB.Close()
		return nil, fmt.Errorf("ping %s db: %w", driver, err)
	}
	return &DB{DB: rawDB, Dialect: DialectPostgres}, nil
}

// sqliteFilePath extracts the file path of a sqlite DSN, or "" for in-memory databases.
func sqliteFilePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || strings.HasPrefix(path, ":memory:") {
		return ""
	}
	return path
}
