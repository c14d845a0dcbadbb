package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/models"
)

var baseTime = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// newTestServer mounts routes on a chi router and returns a client pointed at it
func newTestServer(t *testing.T, tokens TokenSource, routes func(r chi.Router)) *Client {
	t.Helper()
	r := chi.NewRouter()
	routes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return New(server.URL, tokens, WithTimeout(2*time.Second))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message, "status": "error"})
}

func makePosts(prefix string, n int) []models.BlogPost {
	posts := make([]models.BlogPost, n)
	for i := range posts {
		title := fmt.Sprintf("%s %d", prefix, i+1)
		posts[i] = models.BlogPost{
			ID:        uuid.New(),
			Title:     title,
			Slug:      fmt.Sprintf("%s-%d", prefix, i+1),
			Content:   "body",
			Tags:      []models.BlogTag{{Value: "go"}},
			CreatedAt: baseTime.Add(-time.Duration(i) * time.Minute),
		}
	}
	return posts
}

func titles(posts []models.BlogPost) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}

type staticToken string

func (s staticToken) Token() string { return string(s) }
