package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ekindev/coursesearch/internal/app/models"
	"github.com/ekindev/coursesearch/internal/pkg/catalog"
	"github.com/ekindev/coursesearch/internal/pkg/logger"
)

// CatalogService defines the interface for catalog loading operations
type CatalogService interface {
	// LoadCatalog stores validated course records for one school and returns
	// the number of rows inserted. With dropExisting the school's current
	// rows are replaced wholesale; without it the insert is additive and
	// duplicate checking is the caller's responsibility.
	LoadCatalog(ctx context.Context, school string, records []catalog.Record, dropExisting bool) (int, error)

	// LoadCatalogFromFile parses the CSV at sourcePath (or the conventional
	// per-school path when sourcePath is empty) and loads it.
	LoadCatalogFromFile(ctx context.Context, school, sourcePath string, dropExisting bool) (int, error)
}

// catalogServiceImpl implements the CatalogService interface
type catalogServiceImpl struct {
	courseStore CourseStore
	dataRoot    string
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(courseStore CourseStore, dataRoot string) CatalogService {
	return &catalogServiceImpl{
		courseStore: courseStore,
		dataRoot:    dataRoot,
	}
}

// LoadCatalog stores course records for one school
func (s *catalogServiceImpl) LoadCatalog(ctx context.Context, school string, records []catalog.Record, dropExisting bool) (int, error) {
	schoolKey := strings.ToUpper(strings.TrimSpace(school))

	courses := make([]models.Course, 0, len(records))
	for _, record := range records {
		courses = append(courses, models.Course{
			School:      schoolKey,
			Subject:     record.Subject,
			Number:      record.Number,
			Name:        record.Name,
			Description: record.Description,
			CreditHours: record.CreditHours,
		})
	}

	inserted, err := s.courseStore.ReplaceForSchool(ctx, schoolKey, courses, dropExisting)
	if err != nil {
		return 0, fmt.Errorf("error loading catalog for %s: %w", schoolKey, err)
	}

	logger.Info().Str("school", schoolKey).Int("inserted", inserted).Bool("dropExisting", dropExisting).Msg("Catalog loaded")
	return inserted, nil
}

// LoadCatalogFromFile parses a CSV source and loads it
func (s *catalogServiceImpl) LoadCatalogFromFile(ctx context.Context, school, sourcePath string, dropExisting bool) (int, error) {
	if sourcePath == "" {
		sourcePath = catalog.DefaultPath(s.dataRoot, school)
	}

	records, err := catalog.LoadFile(sourcePath)
	if err != nil {
		return 0, err
	}

	return s.LoadCatalog(ctx, school, records, dropExisting)
}
