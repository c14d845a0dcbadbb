package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentAndTree(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)
	reader := api.register("ana", false)
	post := api.createPost(admin.Token, "Discussed", false)

	rec := api.comment(reader.Token, post.ID, "  first!  ", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	root := decodeBody[commentBody](t, rec)
	assert.Equal(t, "first!", root.Content)
	assert.Nil(t, root.ParentComment)

	rec = api.comment(admin.Token, post.ID, "thanks", &root.ID)
	require.Equal(t, http.StatusCreated, rec.Code)
	reply := decodeBody[commentBody](t, rec)
	require.NotNil(t, reply.ParentComment)
	assert.Equal(t, root.ID, *reply.ParentComment)

	rec = api.do(http.MethodGet, "/comments/"+post.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tree := decodeBody[[]commentBody](t, rec)
	require.Len(t, tree, 1)
	assert.Equal(t, root.ID, tree[0].ID)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, reply.ID, tree[0].Replies[0].ID)
	assert.NotNil(t, tree[0].Replies[0].Replies)
}

func TestAddCommentRejections(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)
	reader := api.register("ana", false)
	post := api.createPost(admin.Token, "Here", false)
	other := api.createPost(admin.Token, "There", false)
	elsewhere := decodeBody[commentBody](t, api.comment(reader.Token, other.ID, "on another post", nil))

	assert.Equal(t, http.StatusUnauthorized, api.comment("", post.ID, "anon", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.comment(reader.Token, uuid.New(), "lost", nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.comment(reader.Token, post.ID, "   ", nil).Code)

	rec := api.comment(reader.Token, post.ID, "cross-post reply", &elsewhere.ID)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "parentComment", decodeBody[ErrorResponse](t, rec).Field)

	unknown := uuid.New()
	assert.Equal(t, http.StatusBadRequest, api.comment(reader.Token, post.ID, "ghost parent", &unknown).Code)
}

func TestCommentDepthLimit(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)
	post := api.createPost(admin.Token, "Deep", false)

	var parent *uuid.UUID
	for depth := 1; depth <= 3; depth++ {
		rec := api.comment(admin.Token, post.ID, "level", parent)
		require.Equal(t, http.StatusCreated, rec.Code, "depth %d", depth)
		id := decodeBody[commentBody](t, rec).ID
		parent = &id
	}

	rec := api.comment(admin.Token, post.ID, "too deep", parent)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "parentComment", decodeBody[ErrorResponse](t, rec).Field)
}

func TestDeleteComment(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)
	ana := api.register("ana", false)
	cy := api.register("cy", false)
	post := api.createPost(admin.Token, "Thread", false)

	root := decodeBody[commentBody](t, api.comment(ana.Token, post.ID, "root", nil))
	reply := decodeBody[commentBody](t, api.comment(cy.Token, post.ID, "reply", &root.ID))
	decodeBody[commentBody](t, api.comment(ana.Token, post.ID, "nested", &reply.ID))
	other := decodeBody[commentBody](t, api.comment(cy.Token, post.ID, "other root", nil))

	path := "/comments/" + root.ID.String()
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodDelete, path, cy.Token, nil).Code)

	rec := api.do(http.MethodDelete, path, ana.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decodeBody[deleteCommentResponse](t, rec).RemovedReplies)

	// the nested reply outlives its deleted parent and is listed as a root
	rec = api.do(http.MethodGet, "/comments/"+post.ID.String(), "", nil)
	tree := decodeBody[[]commentBody](t, rec)
	require.Len(t, tree, 2)
	assert.Equal(t, "nested", tree[0].Content)

	assert.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/comments/"+other.ID.String(), admin.Token, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, path, admin.Token, nil).Code)
}

func TestAllCommentsInbox(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)
	a := api.createPost(admin.Token, "A", false)
	b := api.createPost(admin.Token, "B", false)
	api.comment(admin.Token, a.ID, "on a", nil)
	api.comment(admin.Token, b.ID, "on b", nil)

	rec := api.do(http.MethodGet, "/comments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]commentBody](t, rec), 2)
	assert.Contains(t, rec.Body.String(), `"title":"A"`)
}

func TestCommentCreateErrorMapsMissingPost(t *testing.T) {
	err := commentCreateError(errors.New("FOREIGN KEY constraint failed"))
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, http.StatusNotFound, errs.StatusCode(err))

	err = commentCreateError(errors.New("disk I/O error"))
	assert.False(t, errs.IsNotFound(err))
}
