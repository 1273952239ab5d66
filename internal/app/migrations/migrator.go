package migrations

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekindev/coursesearch/internal/pkg/logger"
)

// migration is a single versioned schema change.
type migration struct {
	Version string
	Name    string
	SQL     string
}

// Migrator manages database migrations
type Migrator struct {
	db        *pgxpool.Pool
	dimension int
}

// NewMigrator creates a new migrator. The dimension fixes the width of the
// embedding vector column and must match the embedding service's output.
func NewMigrator(db *pgxpool.Pool, dimension int) *Migrator {
	return &Migrator{
		db:        db,
		dimension: dimension,
	}
}

// migrations returns the ordered schema changes. All DDL uses IF NOT EXISTS
// so a partially recorded run is still safe to repeat.
func (m *Migrator) migrations() []migration {
	return []migration{
		{
			Version: "001",
			Name:    "enable_pgvector",
			SQL:     `CREATE EXTENSION IF NOT EXISTS vector;`,
		},
		{
			Version: "002",
			Name:    "create_courses",
			SQL: `
			CREATE TABLE IF NOT EXISTS courses (
				id SERIAL PRIMARY KEY,
				school TEXT NOT NULL,
				subject TEXT NOT NULL,
				number TEXT NOT NULL,
				name TEXT NOT NULL,
				description TEXT NOT NULL,
				credit_hours TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_courses_school ON courses (school);`,
		},
		{
			Version: "003",
			Name:    "create_course_embeddings",
			SQL: fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS course_embeddings (
				id SERIAL PRIMARY KEY,
				description TEXT NOT NULL,
				embedding VECTOR(%d) NOT NULL,
				course_id INTEGER REFERENCES courses(id) ON DELETE CASCADE
			);
			CREATE INDEX IF NOT EXISTS idx_course_embeddings_course_id ON course_embeddings (course_id);
			CREATE UNIQUE INDEX IF NOT EXISTS uq_course_embeddings_course_id ON course_embeddings (course_id);`, m.dimension),
		},
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := m.db.Exec(ctx, createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1);`
	err := m.db.QueryRow(ctx, query, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// apply executes a single migration inside a transaction.
func (m *Migrator) apply(ctx context.Context, mig migration) error {
	applied, err := m.isMigrationApplied(ctx, mig.Version)
	if err != nil {
		return err
	}

	if applied {
		logger.Debug().Str("version", mig.Version).Str("name", mig.Name).Msg("Migration already applied, skipping")
		return nil
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, mig.SQL); err != nil {
		return fmt.Errorf("error applying migration %s (%s): %w", mig.Version, mig.Name, err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
		mig.Version, time.Now()); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info().Str("version", mig.Version).Str("name", mig.Name).Msg("Migration applied")
	return nil
}

// Run applies all pending migrations in order. Safe to call repeatedly: it is
// a no-op when the schema is already current, and it must run before any
// load, index, or search operation.
func (m *Migrator) Run(ctx context.Context) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	for _, mig := range m.migrations() {
		if err := m.apply(ctx, mig); err != nil {
			return err
		}
	}

	return nil
}
