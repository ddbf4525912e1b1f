package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agentstation/gpumap/pkg/errors"
	"github.com/agentstation/gpumap/pkg/logging"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS gpus (
	id               BIGSERIAL PRIMARY KEY,
	model_name       VARCHAR(255) NOT NULL,
	manufacturer     VARCHAR(100),
	vram_capacity_gb DOUBLE PRECISION NOT NULL,
	architecture     VARCHAR(100),
	release_year     INTEGER,
	import_id        UUID NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS gpus_import_id_idx ON gpus (import_id);
`

// postgresStore writes rows to PostgreSQL.
type postgresStore struct {
	pool *pgxpool.Pool
}

func openPostgres(ctx context.Context, url string) (Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, errors.NewConfigError("database", "invalid postgres url", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewDependencyError("postgres", err)
	}
	return &postgresStore{pool: pool}, nil
}

func (s *postgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return errors.WrapResource("migrate", "table", "gpus", err)
	}
	logging.FromContext(ctx).Debug().Str("driver", "postgres").Msg("Table gpus ready")
	return nil
}

// InsertGPUs loads rows with a single COPY, which either writes every row or none.
func (s *postgresStore) InsertGPUs(ctx context.Context, rows []Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	n, err := s.pool.CopyFrom(ctx, pgx.Identifier{"gpus"}, columns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.ModelName, r.Manufacturer, r.VRAMCapacityGB, r.Architecture, r.ReleaseYear, r.ImportID}, nil
		}))
	if err != nil {
		return 0, errors.WrapResource("insert", "gpus", rows[0].ImportID.String(), err)
	}
	return int(n), nil
}

func (s *postgresStore) Close() error {
	s.pool.Close()
	return nil
}
