package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// The id column is BIGSERIAL: identifier allocation is part of the atomic
// insert, so ids are unique and strictly increasing with no in-process
// counter involved.
var steps = []migrationStep{
	{
		Name: "create_table_revisions",
		SQL: `CREATE TABLE IF NOT EXISTS revisions (
  id             BIGSERIAL   PRIMARY KEY,
  storage_path   TEXT        NOT NULL UNIQUE,
  display_name   TEXT        NOT NULL,
  extracted_text TEXT        NOT NULL DEFAULT '',
  memo           TEXT,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_revisions_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_revisions_created_at ON revisions (created_at DESC);`,
	},
}

// EnsureMigrated checks if the 'revisions' table exists and runs the schema
// steps if it doesn't. Safe to call on every startup.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	start := time.Now()

	var exists bool
	query := "SELECT to_regclass('public.revisions') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("migration sentinel check failed", zap.Error(err))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("schema already exists, skipping migration",
			zap.Duration("elapsed", time.Since(start)))
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("migration step failed",
				zap.String("step", step.Name),
				zap.Error(err))
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Info("migration step applied",
			zap.String("step", step.Name),
			zap.Duration("elapsed", time.Since(stepStart)))
	}

	log.Info("migration complete", zap.Duration("elapsed", time.Since(start)))
	return nil
}
