package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostRequiresAdmin(t *testing.T) {
	api := newTestAPI(t, nil)
	member := api.register("ana", false)
	body := map[string]any{"title": "Hi", "content": "x"}

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/posts", "", body).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/posts", member.Token, body).Code)
}

func TestCreatePost(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)

	post := api.createPost(admin.Token, "  Go: Channels & Select!  ", false, "go", " go ", "concurrency")

	assert.Equal(t, "Go: Channels & Select!", post.Title)
	assert.Equal(t, "go-channels-select", post.Slug)
	assert.ElementsMatch(t, []string{"go", "concurrency"}, post.Tags)
	require.NotNil(t, post.Author)
	assert.Equal(t, admin.ID, post.Author.ID)
}

func TestCreatePostValidation(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)

	rec := api.do(http.MethodPost, "/posts", admin.Token, map[string]any{"title": "   ", "content": "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title", decodeBody[ErrorResponse](t, rec).Field)

	rec = api.do(http.MethodPost, "/posts", admin.Token, map[string]any{"title": "!!!", "content": "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title", decodeBody[ErrorResponse](t, rec).Field)
}

func TestCreatePostSlugConflict(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)
	api.createPost(admin.Token, "Same Title", false)

	rec := api.do(http.MethodPost, "/posts", admin.Token, map[string]any{"title": "same title!", "content": "x"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListPostsPagination(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)
	for i := 0; i < 23; i++ {
		api.createPost(admin.Token, fmt.Sprintf("Post %02d", i), i >= 18)
	}
	wantCounts := services.StatusCounts{All: 23, Draft: 5, Published: 18}

	rec := api.do(http.MethodGet, "/posts?status=published&page=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeBody[struct {
		Posts      []postBody            `json:"posts"`
		Page       int                   `json:"page"`
		TotalPages int                   `json:"totalPages"`
		TotalCount int64                 `json:"totalCount"`
		Counts     services.StatusCounts `json:"counts"`
	}](t, rec)
	assert.Len(t, page.Posts, 10)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, int64(18), page.TotalCount)
	assert.Equal(t, wantCounts, page.Counts)

	for _, query := range []string{"?status=draft", "?status=all", "", "?status=bogus&page=zero"} {
		rec := api.do(http.MethodGet, "/posts"+query, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		counts := decodeBody[struct {
			Counts services.StatusCounts `json:"counts"`
		}](t, rec).Counts
		assert.Equal(t, wantCounts, counts, query)
	}
}

func TestGetPostBySlug(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)
	created := api.createPost(admin.Token, "Hello World", false)

	rec := api.do(http.MethodGet, "/posts/slug/hello-world", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decodeBody[postBody](t, rec).ID)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/posts/slug/missing", "", nil).Code)
}

func TestPostsByTagAndSearch(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)
	api.createPost(admin.Token, "Intro to Go", false, "go")
	api.createPost(admin.Token, "Go Drafts", true, "go")
	api.createPost(admin.Token, "Rust Notes", false, "rust")

	rec := api.do(http.MethodGet, "/posts/tag/go", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tagged := decodeBody[[]postBody](t, rec)
	require.Len(t, tagged, 1)
	assert.Equal(t, "Intro to Go", tagged[0].Title)

	rec = api.do(http.MethodGet, "/posts/search?q=NOTES", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	found := decodeBody[[]postBody](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, "Rust Notes", found[0].Title)

	rec = api.do(http.MethodGet, "/posts/search?q=%20", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "q", decodeBody[ErrorResponse](t, rec).Field)
}

func TestTrendingEndpoint(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)
	a := api.createPost(admin.Token, "A", false)
	b := api.createPost(admin.Token, "B", false)
	api.createPost(admin.Token, "C", false)

	api.do(http.MethodPost, "/posts/"+b.ID.String()+"/view", "", nil)
	api.do(http.MethodPost, "/posts/"+b.ID.String()+"/view", "", nil)
	api.do(http.MethodPost, "/posts/"+a.ID.String()+"/view", "", nil)

	rec := api.do(http.MethodGet, "/posts/trending", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	trending := decodeBody[[]postBody](t, rec)
	require.Len(t, trending, 3)
	assert.Equal(t, []string{"B", "A", "C"}, []string{trending[0].Title, trending[1].Title, trending[2].Title})
}

func TestViewAndLike(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)
	reader := api.register("ana", false)
	post := api.createPost(admin.Token, "Counted", false)
	path := "/posts/" + post.ID.String()

	rec := api.do(http.MethodPost, path+"/view", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decodeBody[viewsResponse](t, rec).Views)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, path+"/like", "", nil).Code)

	for want := int64(1); want <= 2; want++ {
		rec = api.do(http.MethodPost, path+"/like", reader.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, decodeBody[likesResponse](t, rec).Likes)
	}

	missing := "/posts/" + uuid.NewString()
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, missing+"/view", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, missing+"/like", reader.Token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/posts/not-a-uuid/view", "", nil).Code)
}

func TestUpdatePost(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)
	member := api.register("ana", false)
	post := api.createPost(admin.Token, "Before", false, "old")
	path := "/posts/" + post.ID.String()
	body := map[string]any{"title": "After Edit", "content": "new", "isDraft": true, "tags": []string{"new"}}

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPut, path, member.Token, body).Code)

	rec := api.do(http.MethodPut, path, admin.Token, body)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[postBody](t, rec)
	assert.Equal(t, "after-edit", updated.Slug)
	assert.True(t, updated.IsDraft)
	assert.Equal(t, []string{"new"}, updated.Tags)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPut, "/posts/"+uuid.NewString(), admin.Token, body).Code)
}

func TestDeletePost(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)
	member := api.register("ana", false)
	post := api.createPost(admin.Token, "Doomed", false)
	path := "/posts/" + post.ID.String()
	require.Equal(t, http.StatusCreated, api.comment(member.Token, post.ID, "first", nil).Code)

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodDelete, path, member.Token, nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodDelete, path, admin.Token, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/posts/slug/doomed", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, path, admin.Token, nil).Code)

	rec := api.do(http.MethodGet, "/comments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]commentBody](t, rec))
}
