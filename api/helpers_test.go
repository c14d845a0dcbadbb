package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rpupo63/blog-platform-backend/services"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testAdminToken = "letmein"

type testAPI struct {
	t       *testing.T
	handler http.Handler
	db      *gorm.DB
}

func newTestAPI(t *testing.T, writer *services.Writer) *testAPI {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	router, err := newRouter(database.New(db),
		withConfig(map[string]string{
			"JWT_SECRET":         "test-secret",
			"ADMIN_ACCESS_TOKEN": testAdminToken,
			"MAX_COMMENT_DEPTH":  "3",
			"ACCEPTED_ORIGINS":   "http://localhost:5173",
		}),
		withWriter(writer),
	)
	require.NoError(t, err)

	return &testAPI{t: t, handler: router, db: db}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else if raw, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(raw))
	} else {
		payload, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, APIPrefix+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type account struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
	Token string    `json:"token"`
}

func (a *testAPI) register(name string, admin bool) account {
	a.t.Helper()
	body := map[string]any{
		"name":     name,
		"email":    name + "@example.com",
		"password": "secret123",
	}
	if admin {
		body["adminAccessToken"] = testAdminToken
	}
	rec := a.do(http.MethodPost, "/auth/register", "", body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[account](a.t, rec)
}

type postBody struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Slug    string    `json:"slug"`
	Tags    []string  `json:"tags"`
	IsDraft bool      `json:"isDraft"`
	Views   int64     `json:"views"`
	Likes   int64     `json:"likes"`
	Author  *struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	} `json:"author"`
}

func (a *testAPI) createPost(token, title string, draft bool, tags ...string) postBody {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/posts", token, map[string]any{
		"title":   title,
		"content": "Content of " + title,
		"isDraft": draft,
		"tags":    tags,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[postBody](a.t, rec)
}

type commentBody struct {
	ID            uuid.UUID     `json:"id"`
	Content       string        `json:"content"`
	ParentComment *uuid.UUID    `json:"parentComment"`
	Replies       []commentBody `json:"replies"`
}

func (a *testAPI) comment(token string, postID uuid.UUID, content string, parent *uuid.UUID) *httptest.ResponseRecorder {
	a.t.Helper()
	body := map[string]any{"content": content}
	if parent != nil {
		body["parentComment"] = parent.String()
	}
	return a.do(http.MethodPost, "/comments/"+postID.String(), token, body)
}

// fakeGenerator answers every prompt with the same text or error
type fakeGenerator struct {
	response string
	err      error
}

func (g fakeGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return g.response, g.err
}

var errGeneratorDown = errors.New("generator down")
