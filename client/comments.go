package client

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MaxReplyDepth is the deepest level at which the thread offers a reply action
const MaxReplyDepth = 3

// ErrLoginRequired is returned when a signed-out user tries to comment. The auth form is opened.
var ErrLoginRequired = errors.New("login required")

// CommentThread holds the comment tree of one post, newest first at every level
type CommentThread struct {
	client  *Client
	session Session
	postID  uuid.UUID
	logger  zerolog.Logger

	mu        sync.Mutex
	comments  []*services.CommentNode
	lastError string
}

func NewCommentThread(client *Client, session Session, postID uuid.UUID) *CommentThread {
	return &CommentThread{
		client:  client,
		session: session,
		postID:  postID,
		logger:  log.With().Str("unit", "commentThread").Str("postID", postID.String()).Logger(),
	}
}

// Load fetches the tree. A failure keeps the previous tree.
func (t *CommentThread) Load(ctx context.Context) error {
	tree, err := t.client.Comments(ctx, t.postID)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.lastError = "Failed to fetch comments"
		t.logger.Error().Err(err).Msg("error fetching comments")
		return err
	}
	services.SortNewestFirst(tree)
	t.comments = tree
	t.lastError = ""
	return nil
}

// Add posts a comment, or a reply to parentID, then reloads the tree
func (t *CommentThread) Add(ctx context.Context, content string, parentID *uuid.UUID) error {
	if t.session.Token() == "" {
		t.session.SetAuthFormOpen(true)
		return ErrLoginRequired
	}
	if _, err := t.client.AddComment(ctx, t.postID, content, parentID); err != nil {
		t.logger.Error().Err(err).Msg("error adding comment")
		return err
	}
	return t.Load(ctx)
}

// Delete removes a comment with its direct replies, then reloads the tree
func (t *CommentThread) Delete(ctx context.Context, commentID uuid.UUID) error {
	if _, err := t.client.DeleteComment(ctx, commentID); err != nil {
		t.logger.Error().Err(err).Msg("error deleting comment")
		return err
	}
	return t.Load(ctx)
}

// DraftReply asks for a suggested reply. Any failure yields an empty draft.
func (t *CommentThread) DraftReply(ctx context.Context, node *services.CommentNode) string {
	author := ""
	if node.Author != nil {
		author = node.Author.Name
	}
	reply, err := t.client.GenerateReply(ctx, node.Content, author)
	if err != nil {
		t.logger.Warn().Err(err).Msg("error drafting reply")
		return ""
	}
	return reply
}

// CanReply reports whether a comment at depth (1 for top level) offers a reply action
func CanReply(depth int) bool {
	return depth < MaxReplyDepth
}

func (t *CommentThread) Comments() []*services.CommentNode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.comments
}

func (t *CommentThread) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return services.CountNodes(t.comments)
}

func (t *CommentThread) Error() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastError
}
