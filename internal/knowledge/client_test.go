package knowledge_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forge-ai/backend/internal/knowledge"
)

func TestHTTPSearcher_Available(t *testing.T) {
	t.Run("no url configured", func(t *testing.T) {
		searcher := knowledge.NewHTTPSearcher("")
		assert.False(t, searcher.Available(context.Background()))
	})

	t.Run("healthy backend", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		searcher := knowledge.NewHTTPSearcher(server.URL)
		assert.True(t, searcher.Available(context.Background()))
	})

	t.Run("unhealthy backend", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		searcher := knowledge.NewHTTPSearcher(server.URL)
		assert.False(t, searcher.Available(context.Background()))
	})
}

func TestHTTPSearcher_Search(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req knowledge.SearchRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "deployment", req.Query)
			assert.Equal(t, []string{"ops"}, req.Tags)

			json.NewEncoder(w).Encode(map[string]any{
				"results": []map[string]any{
					{"title": "Runbook", "content": "Switch traffic.", "score": 0.91, "tags": []string{"ops"}},
				},
			})
		}))
		defer server.Close()

		searcher := knowledge.NewHTTPSearcher(server.URL)
		results, err := searcher.Search(context.Background(), &knowledge.SearchRequest{
			Query: "deployment",
			Tags:  []string{"ops"},
		})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Runbook", results[0].Title)
		assert.Equal(t, 0.91, results[0].Score)
	})

	t.Run("non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "index rebuilding", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		searcher := knowledge.NewHTTPSearcher(server.URL)
		_, err := searcher.Search(context.Background(), &knowledge.SearchRequest{Query: "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})
}
