package services

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/ekindev/coursesearch/internal/app/models"
)

// CourseStore is the catalog persistence surface the services depend on.
// Satisfied by repositories.CourseRepository.
type CourseStore interface {
	ReplaceForSchool(ctx context.Context, school string, courses []models.Course, dropExisting bool) (int, error)
	ListBySchool(ctx context.Context, school string, limit int) ([]models.Course, error)
}

// EmbeddingStore is the vector persistence surface the services depend on.
// Satisfied by repositories.EmbeddingRepository.
type EmbeddingStore interface {
	DeleteByCourseIDs(ctx context.Context, courseIDs []int64) error
	Insert(ctx context.Context, emb *models.CourseEmbedding) error
	SearchSimilar(ctx context.Context, queryVector pgvector.Vector, school string, limit int) ([]models.SimilarCourse, error)
}

// ConfirmFunc answers whether a destructive operation may proceed. The CLI
// wires an interactive prompt; automation and tests supply a fixed answer.
type ConfirmFunc func(prompt string) bool
