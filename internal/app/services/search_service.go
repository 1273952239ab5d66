package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"

	"github.com/ekindev/coursesearch/internal/app/models/dto"
	"github.com/ekindev/coursesearch/internal/pkg/apperrors"
	"github.com/ekindev/coursesearch/internal/pkg/embedding"
)

// Search limits. A requested limit is clamped into [MinSearchLimit,
// MaxSearchLimit]; DefaultSearchLimit applies when the caller sent none.
const (
	MinSearchLimit     = 1
	MaxSearchLimit     = 50
	DefaultSearchLimit = 10
)

// schoolFilterWildcards are school values that mean "no filter".
var schoolFilterWildcards = map[string]bool{
	"":    true,
	"ALL": true,
	"*":   true,
}

// SearchService defines the interface for similarity search
type SearchService interface {
	// Search embeds the query text and returns catalog entries ranked by
	// cosine similarity, best match first, at most limit rows. An empty
	// school (or "ALL"/"*") searches every institution.
	Search(ctx context.Context, query, school string, limit int) ([]dto.SearchResultItem, error)
}

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct {
	embeddingStore EmbeddingStore
	embedder       embedding.Service
}

// NewSearchService creates a new search service instance
func NewSearchService(embeddingStore EmbeddingStore, embedder embedding.Service) SearchService {
	return &searchServiceImpl{
		embeddingStore: embeddingStore,
		embedder:       embedder,
	}
}

// Search runs one similarity query
func (s *searchServiceImpl) Search(ctx context.Context, query, school string, limit int) ([]dto.SearchResultItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewInvalidArgumentError("query must not be empty")
	}

	limit = clampLimit(limit)
	school = resolveSchoolFilter(school)

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error embedding query: %w", err)
	}

	rows, err := s.embeddingStore.SearchSimilar(ctx, pgvector.NewVector(vector), school, limit)
	if err != nil {
		return nil, err
	}

	results := make([]dto.SearchResultItem, 0, len(rows))
	for _, row := range rows {
		results = append(results, dto.SearchResultItem{
			School:      row.School,
			Subject:     row.Subject,
			Number:      row.Number,
			Name:        row.Name,
			Description: row.Description,
			CreditHours: normalizeCreditHours(row.CreditHours),
			Similarity:  row.Similarity,
		})
	}

	return results, nil
}

// clampLimit forces the requested limit into the allowed range.
func clampLimit(limit int) int {
	if limit < MinSearchLimit {
		return MinSearchLimit
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}

// resolveSchoolFilter uppercases the school code and collapses the wildcard
// values to "" (no filter).
func resolveSchoolFilter(school string) string {
	school = strings.ToUpper(strings.TrimSpace(school))
	if schoolFilterWildcards[school] {
		return ""
	}
	return school
}

// normalizeCreditHours strips a trailing "hours." or "hour." from the stored
// credit text; anything else passes through unchanged. NULL normalizes to "".
func normalizeCreditHours(value *string) string {
	if value == nil {
		return ""
	}

	text := strings.TrimSpace(*value)
	if trimmed, ok := strings.CutSuffix(text, "hours."); ok {
		return strings.TrimSpace(trimmed)
	}
	if trimmed, ok := strings.CutSuffix(text, "hour."); ok {
		return strings.TrimSpace(trimmed)
	}
	return *value
}
