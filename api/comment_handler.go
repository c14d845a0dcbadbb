package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rpupo63/blog-platform-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type commentHandler struct {
	responder    Responder
	logger       zerolog.Logger
	commentRepo  *database.CommentRepo
	blogPostRepo *database.BlogPostRepo
	maxDepth     int
}

// newCommentHandler builds the comment handler. A maxDepth of 0 allows unlimited nesting.
func newCommentHandler(commentRepo *database.CommentRepo, blogPostRepo *database.BlogPostRepo, maxDepth int) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		commentRepo:  commentRepo,
		blogPostRepo: blogPostRepo,
		maxDepth:     maxDepth,
	}
}

// addComment creates a comment on a post, or a reply when parentComment is set
// @Summary Add comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path string true "Blog Post ID" format(uuid)
// @Param comment body commentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} ErrorResponse "Invalid parent or nesting too deep"
// @Failure 404 {object} ErrorResponse "Post not found"
// @Router /comments/{id} [post]
func (h commentHandler) addComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		postID, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		req, err := decodeRequest(w, r, "comment", func(req *commentRequest) {
			req.Content = strings.TrimSpace(req.Content)
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		exists, err := h.blogPostRepo.Exists(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if !exists {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		if req.ParentComment != nil {
			if err := h.checkParent(r, postID, *req.ParentComment); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		comment := models.Comment{
			Content:         req.Content,
			PostID:          postID,
			AuthorID:        user.ID,
			ParentCommentID: req.ParentComment,
		}
		if err := h.commentRepo.Add(r.Context(), &comment); err != nil {
			h.responder.WriteError(w, commentCreateError(err))
			return
		}

		created, err := h.commentRepo.FindByID(r.Context(), comment.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "comment", err))
			return
		}

		h.responder.WriteCreated(w, created)
	}
}

// checkParent requires the parent to be a comment on the same post with room below it
func (h commentHandler) checkParent(r *http.Request, postID, parentID uuid.UUID) error {
	parents, err := h.commentRepo.ParentsForPost(r.Context(), postID)
	if err != nil {
		return wrapDatabaseError("find", "comments", err)
	}
	if _, ok := parents[parentID]; !ok {
		return errs.NewInvalidFieldError("parentComment", "must reference a comment on the same post")
	}

	if h.maxDepth <= 0 {
		return nil
	}
	depth := services.Depth(parentID, func(id uuid.UUID) (*uuid.UUID, bool) {
		parent, ok := parents[id]
		return parent, ok
	})
	if depth >= h.maxDepth {
		h.logger.Debug().Str("parentComment", parentID.String()).Int("depth", depth).Msg("Rejecting reply past depth limit")
		return errs.NewInvalidFieldError("parentComment", "replies are limited to the configured nesting depth")
	}
	return nil
}

// getCommentsByPost returns the comment tree of one post
// @Summary List comments of a post
// @Tags Comments
// @Produce json
// @Param id path string true "Blog Post ID" format(uuid)
// @Success 200 {array} services.CommentNode
// @Router /comments/{id} [get]
func (h commentHandler) getCommentsByPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comments, err := h.commentRepo.FindByPost(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comments", err))
			return
		}

		h.responder.WriteJSON(w, services.BuildCommentTree(comments))
	}
}

func (h commentHandler) getAllComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comments, err := h.commentRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comments", err))
			return
		}

		h.responder.WriteJSON(w, services.BuildCommentTree(comments))
	}
}

// deleteComment removes a comment and its direct replies. Only its author or an admin may do so.
// @Summary Delete comment
// @Tags Comments
// @Produce json
// @Param id path string true "Comment ID" format(uuid)
// @Success 200 {object} deleteCommentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /comments/{id} [delete]
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		commentID, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.commentRepo.FindByID(r.Context(), commentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comment", err))
			return
		}
		if !canModify(user, comment.AuthorID) {
			h.responder.WriteError(w, errs.NewNotOwnerError("comment"))
			return
		}

		removed, err := h.commentRepo.DeleteWithDirectReplies(r.Context(), commentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "comment", err))
			return
		}

		h.logger.Info().Str("commentID", commentID.String()).Int64("removedReplies", removed).Msg("Comment deleted")
		h.responder.WriteJSON(w, deleteCommentResponse{
			Message:        "Comment deleted",
			RemovedReplies: removed,
		})
	}
}

// commentCreateError maps a post deleted between the existence check and the insert to 404
func commentCreateError(cause error) error {
	err := wrapDatabaseError("create", "comment", cause)
	if errs.IsForeignKeyConstraintError(err) {
		return errs.NewNotFoundError("blog post not found")
	}
	return err
}
