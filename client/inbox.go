package client

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CommentInbox is the moderation view over every comment on the site
type CommentInbox struct {
	client *Client
	logger zerolog.Logger

	mu        sync.Mutex
	comments  []*services.CommentNode
	selected  uuid.UUID
	loading   bool
	lastError string
}

func NewCommentInbox(client *Client) *CommentInbox {
	return &CommentInbox{
		client: client,
		logger: log.With().Str("unit", "commentInbox").Logger(),
	}
}

// Load fetches the nested comments, newest first. A failure keeps the last good tree.
// The first root is selected when nothing is.
func (b *CommentInbox) Load(ctx context.Context) error {
	b.mu.Lock()
	b.loading = true
	b.mu.Unlock()

	tree, err := b.client.AllComments(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading = false
	if err != nil {
		b.lastError = "Failed to load comments"
		b.logger.Error().Err(err).Msg("error fetching comments")
		return err
	}
	services.SortNewestFirst(tree)
	b.comments = tree
	b.lastError = ""
	if b.selected != uuid.Nil && findNode(tree, b.selected) == nil {
		b.selected = uuid.Nil
	}
	if b.selected == uuid.Nil && len(tree) > 0 {
		b.selected = tree[0].ID
	}
	return nil
}

// Delete removes a comment and reloads the inbox. A deleted selection is cleared first.
func (b *CommentInbox) Delete(ctx context.Context, commentID uuid.UUID) error {
	result, err := b.client.DeleteComment(ctx, commentID)
	if err != nil {
		b.mu.Lock()
		b.lastError = "Failed to delete comment"
		b.mu.Unlock()
		b.logger.Error().Err(err).Str("commentID", commentID.String()).Msg("error deleting comment")
		return err
	}
	b.logger.Info().Str("commentID", commentID.String()).Int64("removedReplies", result.RemovedReplies).Msg("comment deleted")

	b.mu.Lock()
	if b.selected == commentID {
		b.selected = uuid.Nil
	}
	b.mu.Unlock()

	return b.Load(ctx)
}

// Select marks a comment as the one being read. uuid.Nil clears the selection.
func (b *CommentInbox) Select(commentID uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = commentID
}

// Selected returns the selected comment, or nil
func (b *CommentInbox) Selected() *services.CommentNode {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selected == uuid.Nil {
		return nil
	}
	return findNode(b.comments, b.selected)
}

func (b *CommentInbox) Comments() []*services.CommentNode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.comments
}

func (b *CommentInbox) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return services.CountNodes(b.comments)
}

func (b *CommentInbox) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

func (b *CommentInbox) Error() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastError
}

func findNode(nodes []*services.CommentNode, id uuid.UUID) *services.CommentNode {
	for _, node := range nodes {
		if node.ID == id {
			return node
		}
		if found := findNode(node.Replies, id); found != nil {
			return found
		}
	}
	return nil
}
