package api

import (
	"net/http"
	"testing"

	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIUnavailableWithoutWriter(t *testing.T) {
	api := newTestAPI(t, nil)
	member := api.register("ana", false)

	rec := api.do(http.MethodPost, "/ai/generate-summary", "", map[string]any{"content": "text"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = api.do(http.MethodPost, "/ai/generate", member.Token, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAIRequiresAuthExceptSummary(t *testing.T) {
	api := newTestAPI(t, services.NewWriter(fakeGenerator{response: `{"summary": "s"}`}))

	for _, path := range []string{"/ai/generate", "/ai/generate-ideas", "/ai/generate-reply"} {
		assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, path, "", map[string]any{}).Code, path)
	}
	assert.Equal(t, http.StatusOK, api.do(http.MethodPost, "/ai/generate-summary", "", map[string]any{"content": "c"}).Code)
}

func TestGenerateBlogPostEndpoint(t *testing.T) {
	gen := fakeGenerator{response: `{"title": "Why Go", "content": "# Why Go", "tags": ["go"]}`}
	api := newTestAPI(t, services.NewWriter(gen))
	member := api.register("ana", false)

	rec := api.do(http.MethodPost, "/ai/generate", member.Token, map[string]any{"title": "Why Go", "tone": "casual"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody[struct {
		Content services.GeneratedPost `json:"content"`
	}](t, rec)
	assert.Equal(t, "why-go", body.Content.Slug)
	assert.Equal(t, []string{"go"}, body.Content.Tags)

	rec = api.do(http.MethodPost, "/ai/generate", member.Token, map[string]any{"tone": "casual"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateIdeasEndpoint(t *testing.T) {
	gen := fakeGenerator{response: `[{"title": "One", "tags": ["a"], "tone": "fun", "summary": "s"}]`}
	api := newTestAPI(t, services.NewWriter(gen))
	member := api.register("ana", false)

	rec := api.do(http.MethodPost, "/ai/generate-ideas", member.Token, map[string]any{"topics": "go"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[struct {
		Content []services.PostIdea `json:"content"`
	}](t, rec)
	require.Len(t, body.Content, 1)
	assert.Equal(t, "One", body.Content[0].Title)
}

func TestGenerateReplyEndpoint(t *testing.T) {
	api := newTestAPI(t, services.NewWriter(fakeGenerator{response: `{"reply": "Glad it helped!"}`}))
	member := api.register("ana", false)

	rec := api.do(http.MethodPost, "/ai/generate-reply", member.Token, map[string]any{"content": "Helpful", "author": "cy"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"content": {"reply": "Glad it helped!"}}`, rec.Body.String())
}

func TestAIUpstreamFailures(t *testing.T) {
	t.Run("unusable shape", func(t *testing.T) {
		api := newTestAPI(t, services.NewWriter(fakeGenerator{response: `{"unexpected": true}`}))
		rec := api.do(http.MethodPost, "/ai/generate-summary", "", map[string]any{"content": "c"})
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("generator error", func(t *testing.T) {
		api := newTestAPI(t, services.NewWriter(fakeGenerator{err: errGeneratorDown}))
		rec := api.do(http.MethodPost, "/ai/generate-summary", "", map[string]any{"content": "c"})
		require.Equal(t, http.StatusBadGateway, rec.Code)
		assert.NotContains(t, rec.Body.String(), "generator down")
	})
}

func TestRequireWriter(t *testing.T) {
	err := aiHandler{}.requireWriter()
	assert.True(t, errs.IsServiceUnavailableError(err))
	assert.Equal(t, http.StatusServiceUnavailable, errs.StatusCode(err))

	h := aiHandler{writer: services.NewWriter(fakeGenerator{})}
	assert.NoError(t, h.requireWriter())
}
