package store

import (
	"context"
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/agentstation/gpumap/pkg/errors"
	"github.com/agentstation/gpumap/pkg/logging"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS gpus (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	model_name       TEXT NOT NULL,
	manufacturer     TEXT,
	vram_capacity_gb REAL NOT NULL,
	architecture     TEXT,
	release_year     INTEGER,
	import_id        TEXT NOT NULL,
	created_at       TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);
CREATE INDEX IF NOT EXISTS gpus_import_id_idx ON gpus (import_id);
`

var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout = 5000",
}

// sqliteStore writes rows to a SQLite database file.
type sqliteStore struct {
	db *sql.DB
}

func openSQLite(ctx context.Context, dsn string) (Store, error) {
	if dsn == "" {
		return nil, errors.NewConfigError("database", "sqlite path is required", nil)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewConfigError("database", "invalid sqlite path", err)
	}
	// A single connection keeps in-memory databases visible to every query.
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	for _, pragma := range sqlitePragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, errors.NewDependencyError("sqlite", err)
		}
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return errors.WrapResource("migrate", "table", "gpus", err)
	}
	logging.FromContext(ctx).Debug().Str("driver", "sqlite").Msg("Table gpus ready")
	return nil
}

func (s *sqliteStore) InsertGPUs(ctx context.Context, rows []Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.WrapResource("begin", "transaction", "gpus", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO gpus (`+strings.Join(columns, ", ")+`) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, errors.WrapResource("prepare", "insert", "gpus", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			r.ModelName, r.Manufacturer, r.VRAMCapacityGB, r.Architecture, r.ReleaseYear, r.ImportID.String(),
		); err != nil {
			return 0, errors.WrapResource("insert", "gpu", r.ModelName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.WrapResource("commit", "transaction", "gpus", err)
	}
	return len(rows), nil
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
