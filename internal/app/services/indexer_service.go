package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"

	"github.com/ekindev/coursesearch/internal/app/models"
	"github.com/ekindev/coursesearch/internal/pkg/embedding"
	"github.com/ekindev/coursesearch/internal/pkg/logger"
)

// IndexerService defines the interface for embedding generation
type IndexerService interface {
	// IndexEmbeddings generates and stores one embedding per course for the
	// school, ordered by course id, optionally capped at limit (non-positive
	// means no cap). With dropExisting the selected courses' current
	// embeddings are deleted first; without it an existing embedding fails
	// the insert so callers choose explicitly between replace and skip.
	// Returns the number of embeddings generated; on a mid-batch failure the
	// count completed so far is returned alongside the error.
	IndexEmbeddings(ctx context.Context, school string, dropExisting bool, limit int) (int, error)
}

// indexerServiceImpl implements the IndexerService interface
type indexerServiceImpl struct {
	courseStore    CourseStore
	embeddingStore EmbeddingStore
	embedder       embedding.Service
}

// NewIndexerService creates a new indexer service instance
func NewIndexerService(courseStore CourseStore, embeddingStore EmbeddingStore, embedder embedding.Service) IndexerService {
	return &indexerServiceImpl{
		courseStore:    courseStore,
		embeddingStore: embeddingStore,
		embedder:       embedder,
	}
}

// IndexEmbeddings generates embeddings for a school's catalog
func (s *indexerServiceImpl) IndexEmbeddings(ctx context.Context, school string, dropExisting bool, limit int) (int, error) {
	schoolKey := strings.ToUpper(strings.TrimSpace(school))

	courses, err := s.courseStore.ListBySchool(ctx, schoolKey, limit)
	if err != nil {
		return 0, fmt.Errorf("error selecting courses for %s: %w", schoolKey, err)
	}

	if len(courses) == 0 {
		logger.Info().Str("school", schoolKey).Msg("No courses to index")
		return 0, nil
	}

	if dropExisting {
		courseIDs := make([]int64, len(courses))
		for i, course := range courses {
			courseIDs[i] = course.ID
		}
		if err := s.embeddingStore.DeleteByCourseIDs(ctx, courseIDs); err != nil {
			return 0, fmt.Errorf("error dropping embeddings for %s: %w", schoolKey, err)
		}
	}

	// One embedding call in flight at a time: the model state is not safe
	// for concurrent invocation.
	generated := 0
	total := len(courses)
	for _, course := range courses {
		prompt := buildPrompt(course)

		vector, err := s.embedder.Embed(ctx, prompt)
		if err != nil {
			return generated, fmt.Errorf("error embedding course %d: %w", course.ID, err)
		}

		emb := &models.CourseEmbedding{
			Description: course.Description,
			Embedding:   pgvector.NewVector(vector),
			CourseID:    course.ID,
		}
		if err := s.embeddingStore.Insert(ctx, emb); err != nil {
			return generated, fmt.Errorf("error storing embedding for course %d: %w", course.ID, err)
		}

		generated++
		logger.Info().Str("school", schoolKey).Int("count", generated).Int("total", total).Msg("Embedded course")
	}

	return generated, nil
}

// buildPrompt joins subject, number, name and description with single spaces,
// skipping empty parts. This is the canonical text the vector represents.
func buildPrompt(course models.Course) string {
	parts := []string{
		course.Subject,
		course.Number,
		course.Name,
		course.Description,
	}

	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}

	return strings.Join(nonEmpty, " ")
}
