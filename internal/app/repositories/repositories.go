package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ekindev/coursesearch/internal/db"
)

// Querier is the subset of pgx operations shared by pgxpool.Pool and pgx.Tx,
// so repository helpers can run inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository    *CourseRepository
	EmbeddingRepository *EmbeddingRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		CourseRepository:    NewCourseRepository(database),
		EmbeddingRepository: NewEmbeddingRepository(database),
	}
}
