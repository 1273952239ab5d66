package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekindev/coursesearch/internal/app/models"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name   string
		course models.Course
		want   string
	}{
		{
			"all fields",
			models.Course{Subject: "CS", Number: "101", Name: "Intro", Description: "Basics."},
			"CS 101 Intro Basics.",
		},
		{
			"missing description",
			models.Course{Subject: "CS", Number: "101", Name: "Intro"},
			"CS 101 Intro",
		},
		{
			"missing middle field",
			models.Course{Subject: "CS", Name: "Intro", Description: "Basics."},
			"CS Intro Basics.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, buildPrompt(tc.course))
		})
	}
}

func TestIndexEmbeddingsGeneratesAll(t *testing.T) {
	courseStore := &fakeCourseStore{courses: []models.Course{
		{ID: 1, School: "MSU", Subject: "CS", Number: "101", Name: "Intro", Description: "Basics."},
		{ID: 2, School: "MSU", Subject: "CS", Number: "225", Name: "Data Structures", Description: "Trees."},
	}}
	embStore := &fakeEmbeddingStore{}
	embedder := &fakeEmbedder{}
	svc := NewIndexerService(courseStore, embStore, embedder)

	count, err := svc.IndexEmbeddings(context.Background(), "msu", false, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// No drop requested, nothing deleted.
	assert.Nil(t, embStore.deletedIDs)

	require.Len(t, embStore.inserted, 2)
	assert.Equal(t, int64(1), embStore.inserted[0].CourseID)
	assert.Equal(t, "Basics.", embStore.inserted[0].Description)
	assert.Equal(t, int64(2), embStore.inserted[1].CourseID)

	require.Len(t, embedder.texts, 2)
	assert.Equal(t, "CS 101 Intro Basics.", embedder.texts[0])
}

func TestIndexEmbeddingsDropExisting(t *testing.T) {
	courseStore := &fakeCourseStore{courses: []models.Course{
		{ID: 7, Subject: "CS", Number: "101", Name: "Intro"},
		{ID: 9, Subject: "CS", Number: "102", Name: "More"},
	}}
	embStore := &fakeEmbeddingStore{}
	svc := NewIndexerService(courseStore, embStore, &fakeEmbedder{})

	count, err := svc.IndexEmbeddings(context.Background(), "MSU", true, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []int64{7, 9}, embStore.deletedIDs)
}

func TestIndexEmbeddingsEmptySelection(t *testing.T) {
	courseStore := &fakeCourseStore{}
	embStore := &fakeEmbeddingStore{}
	embedder := &fakeEmbedder{}
	svc := NewIndexerService(courseStore, embStore, embedder)

	count, err := svc.IndexEmbeddings(context.Background(), "MSU", true, 0)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, embedder.texts)
	assert.Nil(t, embStore.deletedIDs)
}

func TestIndexEmbeddingsPassesLimit(t *testing.T) {
	courseStore := &fakeCourseStore{}
	svc := NewIndexerService(courseStore, &fakeEmbeddingStore{}, &fakeEmbedder{})

	_, err := svc.IndexEmbeddings(context.Background(), "MSU", false, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, courseStore.listedLimit)
}

func TestIndexEmbeddingsPartialFailureOnEmbed(t *testing.T) {
	courseStore := &fakeCourseStore{courses: []models.Course{
		{ID: 1, Subject: "CS", Number: "101", Name: "A"},
		{ID: 2, Subject: "CS", Number: "102", Name: "B"},
		{ID: 3, Subject: "CS", Number: "103", Name: "C"},
	}}
	embStore := &fakeEmbeddingStore{}
	embedder := &fakeEmbedder{err: errors.New("model unavailable"), failAt: 3}
	svc := NewIndexerService(courseStore, embStore, embedder)

	count, err := svc.IndexEmbeddings(context.Background(), "MSU", false, 0)
	require.Error(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, embStore.inserted, 2)
}

func TestIndexEmbeddingsPartialFailureOnInsert(t *testing.T) {
	courseStore := &fakeCourseStore{courses: []models.Course{
		{ID: 1, Subject: "CS", Number: "101", Name: "A"},
		{ID: 2, Subject: "CS", Number: "102", Name: "B"},
	}}
	embStore := &fakeEmbeddingStore{insertErr: errors.New("duplicate"), failInsertAt: 2}
	svc := NewIndexerService(courseStore, embStore, &fakeEmbedder{})

	count, err := svc.IndexEmbeddings(context.Background(), "MSU", false, 0)
	require.Error(t, err)
	assert.Equal(t, 1, count)
}
