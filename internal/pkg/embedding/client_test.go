package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string, dimension int) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: url, Dimension: dimension, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c
}

func TestEmbedOpenAIShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body struct {
			Input string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "CS 101 Intro", body.Input)

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{0.1, 0.2, 0.3}}},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	vec, err := c.Embed(context.Background(), "CS 101 Intro")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbedBareShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{1, 0}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2)
	vec, err := c.Embed(context.Background(), "query")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vec)
}

func TestEmbedDimensionMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{1, 0}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 768)
	_, err := c.Embed(context.Background(), "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 768")
}

func TestEmbedRetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{0.5}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 1)
	vec, err := c.Embed(context.Background(), "query")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5}, vec)
	assert.Equal(t, 3, calls)
}

func TestEmbedClientErrorDoesNotRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 1)
	_, err := c.Embed(context.Background(), "query")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestEmbedHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(t, srv.URL, 1)
	_, err := c.Embed(ctx, "query")
	require.Error(t, err)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{Dimension: 768})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "http://localhost:8081"})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "http://localhost:8081", Dimension: 768, APIKeyEnv: "COURSESEARCH_TEST_MISSING_KEY"})
	assert.Error(t, err)
}
