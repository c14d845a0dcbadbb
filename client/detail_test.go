package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostDetailRecordsView(t *testing.T) {
	post := makePosts("detail", 1)[0]
	var views atomic.Int32
	c := newTestServer(t, nil, func(r chi.Router) {
		r.Get("/posts/slug/{slug}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, post)
		})
		r.Post("/posts/{id}/view", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, post.ID.String(), chi.URLParam(r, "id"))
			views.Add(1)
			writeJSON(w, http.StatusOK, map[string]int64{"views": 42})
		})
	})
	detail := NewPostDetail(c)

	loaded, err := detail.Load(context.Background(), post.Slug)
	require.NoError(t, err)
	assert.Equal(t, post.ID, loaded.ID)

	require.True(t, detail.Wait(time.Second))
	assert.Equal(t, int32(1), views.Load())
	assert.Equal(t, int64(42), detail.Post().Views)
}

func TestPostDetailSurvivesFailedView(t *testing.T) {
	post := makePosts("detail", 1)[0]
	post.Views = 7
	c := newTestServer(t, nil, func(r chi.Router) {
		r.Get("/posts/slug/{slug}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, post)
		})
		r.Post("/posts/{id}/view", func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusInternalServerError, "internal server error")
		})
	})
	detail := NewPostDetail(c)

	loaded, err := detail.Load(context.Background(), post.Slug)
	require.NoError(t, err)
	assert.Equal(t, post.Title, loaded.Title)

	require.True(t, detail.Wait(time.Second))
	assert.Empty(t, detail.Error())
	assert.Equal(t, int64(7), detail.Post().Views)
}

func TestPostDetailNotFound(t *testing.T) {
	c := newTestServer(t, nil, func(r chi.Router) {
		r.Get("/posts/slug/{slug}", func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "blog post not found")
		})
	})
	detail := NewPostDetail(c)

	_, err := detail.Load(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.Contains(t, detail.Error(), "blog post not found")
	assert.Nil(t, detail.Post())
	assert.True(t, detail.Wait(time.Second))
}
