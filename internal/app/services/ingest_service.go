package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ekindev/coursesearch/internal/pkg/apperrors"
	"github.com/ekindev/coursesearch/internal/pkg/logger"
)

// BootstrapOptions controls one ingestion run.
type BootstrapOptions struct {
	// DropCourses replaces each school's catalog rows instead of appending.
	DropCourses bool
	// DropEmbeddings rebuilds each school's embeddings instead of failing on
	// existing ones.
	DropEmbeddings bool
	// EmbeddingLimit caps how many courses per school get embedded;
	// non-positive means no cap.
	EmbeddingLimit int
}

// BootstrapResult aggregates counts across all schools in one run.
type BootstrapResult struct {
	CoursesLoaded       int
	EmbeddingsGenerated int
}

// IngestService sequences catalog loading and embedding generation.
type IngestService interface {
	// Bootstrap processes the schools in the given order: load catalog,
	// commit, index embeddings, commit. Stages commit independently; a later
	// failure leaves earlier committed work standing, and re-running the
	// pipeline is the recovery mechanism. Destructive options require the
	// confirmation capability to agree before any side effect.
	Bootstrap(ctx context.Context, schools []string, opts BootstrapOptions) (BootstrapResult, error)
}

// ingestServiceImpl implements the IngestService interface
type ingestServiceImpl struct {
	catalogService CatalogService
	indexerService IndexerService
	confirm        ConfirmFunc
}

// NewIngestService creates a new ingest service instance
func NewIngestService(catalogService CatalogService, indexerService IndexerService, confirm ConfirmFunc) IngestService {
	return &ingestServiceImpl{
		catalogService: catalogService,
		indexerService: indexerService,
		confirm:        confirm,
	}
}

// Bootstrap runs the full ingestion pipeline for each school in order
func (s *ingestServiceImpl) Bootstrap(ctx context.Context, schools []string, opts BootstrapOptions) (BootstrapResult, error) {
	var result BootstrapResult

	cleaned := make([]string, 0, len(schools))
	for _, school := range schools {
		if trimmed := strings.TrimSpace(school); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return result, apperrors.NewInvalidArgumentError("at least one school is required")
	}

	if opts.DropCourses || opts.DropEmbeddings {
		codes := make([]string, len(cleaned))
		for i, school := range cleaned {
			codes[i] = strings.ToUpper(school)
		}
		prompt := fmt.Sprintf("This will rebuild course and embedding data for %s.", strings.Join(codes, ", "))
		if !s.confirm(prompt) {
			return result, fmt.Errorf("%w: confirmation refused", apperrors.ErrAborted)
		}
	}

	for _, school := range cleaned {
		schoolKey := strings.ToUpper(school)
		logger.Info().Str("school", schoolKey).Msg("Preparing data")

		loaded, err := s.catalogService.LoadCatalogFromFile(ctx, school, "", opts.DropCourses)
		if err != nil {
			return result, fmt.Errorf("catalog stage failed for %s: %w", schoolKey, err)
		}
		result.CoursesLoaded += loaded
		logger.Info().Str("school", schoolKey).Int("courses", loaded).Msg("Catalog stage complete")

		generated, err := s.indexerService.IndexEmbeddings(ctx, school, opts.DropEmbeddings, opts.EmbeddingLimit)
		// Partial completion still counts: per-course inserts are committed.
		result.EmbeddingsGenerated += generated
		if err != nil {
			return result, fmt.Errorf("embedding stage failed for %s: %w", schoolKey, err)
		}
		logger.Info().Str("school", schoolKey).Int("embeddings", generated).Msg("Embedding stage complete")
	}

	return result, nil
}
