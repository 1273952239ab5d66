package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ekindev/coursesearch/internal/app/models"
	"github.com/ekindev/coursesearch/internal/db"
	"github.com/ekindev/coursesearch/internal/pkg/apperrors"
	"github.com/ekindev/coursesearch/internal/pkg/dberrors"
	"github.com/ekindev/coursesearch/internal/pkg/logger"
)

// insertBatchSize caps the rows per multi-row INSERT. At 6 bind parameters
// per row this stays well under pgx's 65535 parameter ceiling, so large
// catalogs load without hitting the protocol limit.
const insertBatchSize = 1000

// CourseRepository handles catalog table operations
type CourseRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(database *db.PostgresDB) *CourseRepository {
	return &CourseRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ReplaceForSchool inserts the given courses for one school inside a single
// transaction. With dropExisting, all current rows for that school are
// deleted first (full replace); otherwise the insert is purely additive.
// Returns the number of rows inserted.
func (r *CourseRepository) ReplaceForSchool(ctx context.Context, school string, courses []models.Course, dropExisting bool) (int, error) {
	inserted := 0

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if dropExisting {
			if err := r.deleteBySchool(ctx, tx, school); err != nil {
				return err
			}
		}

		for _, batch := range courseBatches(courses, insertBatchSize) {
			builder := r.sb.Insert("courses").
				Columns("school", "subject", "number", "name", "description", "credit_hours")
			for _, course := range batch {
				builder = builder.Values(school, course.Subject, course.Number, course.Name, course.Description, course.CreditHours)
			}

			sql, args, err := builder.ToSql()
			if err != nil {
				logger.Error().Err(err).Msg("Error building insert courses SQL")
				return fmt.Errorf("failed to build insert courses query: %w", err)
			}

			tag, err := tx.Exec(ctx, sql, args...)
			if err != nil {
				return r.wrapDatabaseError(err, "error inserting courses")
			}

			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// courseBatches splits courses into insert batches of at most size rows,
// preserving order.
func courseBatches(courses []models.Course, size int) [][]models.Course {
	var batches [][]models.Course
	for start := 0; start < len(courses); start += size {
		end := min(start+size, len(courses))
		batches = append(batches, courses[start:end])
	}
	return batches
}

// deleteBySchool removes every catalog row for one school.
func (r *CourseRepository) deleteBySchool(ctx context.Context, q Querier, school string) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"school": school}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete courses SQL")
		return fmt.Errorf("failed to build delete courses query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return r.wrapDatabaseError(err, "error deleting courses for school")
	}
	return nil
}

// ListBySchool returns the school's courses ordered by id. A non-positive
// limit means no cap.
func (r *CourseRepository) ListBySchool(ctx context.Context, school string, limit int) ([]models.Course, error) {
	builder := r.sb.Select("id", "school", "subject", "number", "name", "description", "credit_hours").
		From("courses").
		Where(squirrel.Eq{"school": school}).
		OrderBy("id ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, r.wrapDatabaseError(err, "error querying courses")
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.School, &course.Subject, &course.Number, &course.Name, &course.Description, &course.CreditHours); err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// wrapDatabaseError classifies store failures: a missing relation means the
// schema has not been initialized, everything else is a stage-fatal database
// error.
func (r *CourseRepository) wrapDatabaseError(err error, message string) error {
	if dberrors.IsUndefinedTable(err) {
		return fmt.Errorf("%w: %s", apperrors.ErrSchemaNotInitialized, message)
	}
	logger.Error().Err(err).Msg(message)
	// Both the taxonomy sentinel and the pg error stay in the chain so the
	// API layer can classify and extract a safe detail message.
	return fmt.Errorf("%w: %s: %w", apperrors.ErrDatabase, message, err)
}
