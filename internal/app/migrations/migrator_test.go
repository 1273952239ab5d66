package migrations

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreOrdered(t *testing.T) {
	m := NewMigrator(nil, 768)
	migs := m.migrations()

	require.Len(t, migs, 3)
	assert.Equal(t, "001", migs[0].Version)
	assert.Equal(t, "002", migs[1].Version)
	assert.Equal(t, "003", migs[2].Version)

	for _, mig := range migs {
		assert.NotEmpty(t, mig.Name)
		assert.NotEmpty(t, mig.SQL)
	}
}

func TestMigrationEnablesVectorExtension(t *testing.T) {
	m := NewMigrator(nil, 768)
	sql := m.migrations()[0].SQL

	assert.Contains(t, sql, "CREATE EXTENSION IF NOT EXISTS vector")
}

func TestMigrationCreatesCoursesTable(t *testing.T) {
	m := NewMigrator(nil, 768)
	sql := m.migrations()[1].SQL

	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS courses")
	for _, column := range []string{
		"id SERIAL PRIMARY KEY",
		"school TEXT NOT NULL",
		"subject TEXT NOT NULL",
		"number TEXT NOT NULL",
		"name TEXT NOT NULL",
		"description TEXT NOT NULL",
		"credit_hours TEXT NOT NULL",
	} {
		assert.Contains(t, sql, column)
	}
	assert.Contains(t, sql, "CREATE INDEX IF NOT EXISTS idx_courses_school ON courses (school)")
}

func TestMigrationCreatesEmbeddingsTable(t *testing.T) {
	m := NewMigrator(nil, 768)
	sql := m.migrations()[2].SQL

	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS course_embeddings")
	assert.Contains(t, sql, "embedding VECTOR(768) NOT NULL")
	assert.Contains(t, sql, "course_id INTEGER REFERENCES courses(id) ON DELETE CASCADE")
	assert.Contains(t, sql, "CREATE INDEX IF NOT EXISTS idx_course_embeddings_course_id ON course_embeddings (course_id)")
	assert.Contains(t, sql, "CREATE UNIQUE INDEX IF NOT EXISTS uq_course_embeddings_course_id ON course_embeddings (course_id)")
}

func TestMigrationVectorWidthTracksDimension(t *testing.T) {
	for _, dim := range []int{384, 768, 1024} {
		m := NewMigrator(nil, dim)
		sql := m.migrations()[2].SQL
		assert.Contains(t, sql, fmt.Sprintf("VECTOR(%d)", dim))
	}
}
