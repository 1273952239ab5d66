package services

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/ekindev/coursesearch/internal/app/models"
)

// fakeCourseStore records calls and serves canned data.
type fakeCourseStore struct {
	replacedSchool string
	replacedRows   []models.Course
	replacedDrop   bool
	replaceErr     error

	courses     []models.Course
	listErr     error
	listedLimit int
}

func (f *fakeCourseStore) ReplaceForSchool(_ context.Context, school string, courses []models.Course, dropExisting bool) (int, error) {
	f.replacedSchool = school
	f.replacedRows = courses
	f.replacedDrop = dropExisting
	if f.replaceErr != nil {
		return 0, f.replaceErr
	}
	return len(courses), nil
}

func (f *fakeCourseStore) ListBySchool(_ context.Context, school string, limit int) ([]models.Course, error) {
	f.listedLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.courses, nil
}

// fakeEmbeddingStore records calls and serves canned rows. failInsertAt fails
// the Nth Insert call (1-based); zero never fails.
type fakeEmbeddingStore struct {
	deletedIDs []int64
	deleteErr  error

	inserted     []*models.CourseEmbedding
	insertErr    error
	failInsertAt int
	insertCalls  int

	rows         []models.SimilarCourse
	searchErr    error
	searchVector pgvector.Vector
	searchSchool string
	searchLimit  int
}

func (f *fakeEmbeddingStore) DeleteByCourseIDs(_ context.Context, courseIDs []int64) error {
	f.deletedIDs = courseIDs
	return f.deleteErr
}

func (f *fakeEmbeddingStore) Insert(_ context.Context, emb *models.CourseEmbedding) error {
	f.insertCalls++
	if f.failInsertAt > 0 && f.insertCalls == f.failInsertAt {
		return f.insertErr
	}
	f.inserted = append(f.inserted, emb)
	return nil
}

func (f *fakeEmbeddingStore) SearchSimilar(_ context.Context, queryVector pgvector.Vector, school string, limit int) ([]models.SimilarCourse, error) {
	f.searchVector = queryVector
	f.searchSchool = school
	f.searchLimit = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.rows, nil
}

// fakeEmbedder returns a fixed vector. failAt fails the Nth Embed call
// (1-based); zero never fails.
type fakeEmbedder struct {
	vector []float32
	err    error
	failAt int
	texts  []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.texts = append(f.texts, text)
	if f.failAt > 0 && len(f.texts) == f.failAt {
		return nil, f.err
	}
	if f.vector != nil {
		return f.vector, nil
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeEmbedder) Dimension() int {
	if f.vector != nil {
		return len(f.vector)
	}
	return 3
}

func ptrString(s string) *string { return &s }

func ptrFloat64(v float64) *float64 { return &v }
