package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"

	"github.com/ekindev/coursesearch/internal/app/models"
	"github.com/ekindev/coursesearch/internal/db"
	"github.com/ekindev/coursesearch/internal/pkg/apperrors"
	"github.com/ekindev/coursesearch/internal/pkg/dberrors"
	"github.com/ekindev/coursesearch/internal/pkg/logger"
)

// EmbeddingRepository handles vector table operations
type EmbeddingRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewEmbeddingRepository creates a new EmbeddingRepository
func NewEmbeddingRepository(database *db.PostgresDB) *EmbeddingRepository {
	return &EmbeddingRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// DeleteByCourseIDs removes embeddings for exactly the given course ids.
// Used before a rebuild so re-inserts cannot hit the unique constraint.
func (r *EmbeddingRepository) DeleteByCourseIDs(ctx context.Context, courseIDs []int64) error {
	if len(courseIDs) == 0 {
		return nil
	}

	_, err := r.db.Pool.Exec(ctx, `DELETE FROM course_embeddings WHERE course_id = ANY($1)`, courseIDs)
	if err != nil {
		return r.wrapDatabaseError(err, "error deleting embeddings for courses")
	}
	return nil
}

// Insert persists one embedding for one course. The insert is atomic per
// course: either the whole row lands or nothing does. A second embedding for
// the same course surfaces as apperrors.ErrEmbeddingExists.
func (r *EmbeddingRepository) Insert(ctx context.Context, emb *models.CourseEmbedding) error {
	sql, args, err := r.sb.Insert("course_embeddings").
		Columns("description", "embedding", "course_id").
		Values(emb.Description, emb.Embedding, emb.CourseID).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert embedding SQL")
		return fmt.Errorf("failed to build insert embedding query: %w", err)
	}

	if _, err := r.db.Pool.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("%w: course %d", apperrors.ErrEmbeddingExists, emb.CourseID)
		}
		return r.wrapDatabaseError(err, "error inserting embedding")
	}
	return nil
}

// SearchSimilar ranks all stored embeddings by cosine similarity to the query
// vector, optionally filtered to one school, best match first. Equal scores
// keep the store's natural row order.
func (r *EmbeddingRepository) SearchSimilar(ctx context.Context, queryVector pgvector.Vector, school string, limit int) ([]models.SimilarCourse, error) {
	builder := r.sb.Select(
		"c.school",
		"c.subject",
		"c.number",
		"c.name",
		"c.description",
		"c.credit_hours",
	).
		Column(squirrel.Expr("1 - (ce.embedding <=> ?) AS cosine_similarity", queryVector)).
		From("course_embeddings AS ce").
		Join("courses AS c ON ce.course_id = c.id").
		OrderBy("cosine_similarity DESC").
		Limit(uint64(limit))

	if school != "" {
		builder = builder.Where(squirrel.Eq{"c.school": school})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building similarity search SQL")
		return nil, fmt.Errorf("failed to build similarity search query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, r.wrapDatabaseError(err, "error executing similarity search")
	}
	defer rows.Close()

	results := []models.SimilarCourse{}
	for rows.Next() {
		var result models.SimilarCourse
		if err := rows.Scan(&result.School, &result.Subject, &result.Number, &result.Name, &result.Description, &result.CreditHours, &result.Similarity); err != nil {
			logger.Error().Err(err).Msg("Error scanning similarity row")
			return nil, fmt.Errorf("error scanning similarity row: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating similarity rows")
		return nil, fmt.Errorf("error iterating similarity rows: %w", err)
	}

	return results, nil
}

func (r *EmbeddingRepository) wrapDatabaseError(err error, message string) error {
	if dberrors.IsUndefinedTable(err) {
		return fmt.Errorf("%w: %s", apperrors.ErrSchemaNotInitialized, message)
	}
	logger.Error().Err(err).Msg(message)
	return fmt.Errorf("%w: %s: %w", apperrors.ErrDatabase, message, err)
}
