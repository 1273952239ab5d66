package models

import "github.com/pgvector/pgvector-go"

// Course represents one catalog entry for an institution. Identity is the
// surrogate id; uniqueness per institution is enforced by wholesale
// replacement during a destructive reload, not by a natural key.
type Course struct {
	ID          int64  `json:"id" db:"id"`
	School      string `json:"school" db:"school"`
	Subject     string `json:"subject" db:"subject"`
	Number      string `json:"number" db:"number"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	CreditHours string `json:"creditHours" db:"credit_hours"`
}

// CourseEmbedding holds the semantic vector for exactly one course, plus a
// snapshot of the text that was embedded for auditability. At most one
// embedding exists per course; deleting the course cascades to it.
type CourseEmbedding struct {
	ID          int64           `json:"id" db:"id"`
	Description string          `json:"description" db:"description"`
	Embedding   pgvector.Vector `json:"-" db:"embedding"`
	CourseID    int64           `json:"courseId" db:"course_id"`
}

// SimilarCourse is one ranked row from a similarity search: a course joined
// with its cosine similarity to the query vector. Similarity is nil when the
// store returns NULL for the score.
type SimilarCourse struct {
	School      string
	Subject     string
	Number      string
	Name        string
	Description string
	CreditHours *string
	Similarity  *float64
}
