package client

import (
	"context"
	"sync"
	"time"

	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PostDetail loads a single post by slug and records a view for it
type PostDetail struct {
	client *Client
	logger zerolog.Logger

	mu        sync.Mutex
	post      *models.BlogPost
	lastError string

	views sync.WaitGroup
}

func NewPostDetail(client *Client) *PostDetail {
	return &PostDetail{
		client: client,
		logger: log.With().Str("unit", "postDetail").Logger(),
	}
}

// Load fetches the post. On success a view is recorded in the background;
// a failed view is logged and does not affect the result.
func (d *PostDetail) Load(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := d.client.PostBySlug(ctx, slug)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.lastError = err.Error()
		return nil, err
	}
	d.post = post
	d.lastError = ""

	d.views.Add(1)
	go d.recordView(post)
	return post, nil
}

func (d *PostDetail) recordView(post *models.BlogPost) {
	defer d.views.Done()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	views, err := d.client.ViewPost(ctx, post.ID)
	if err != nil {
		d.logger.Warn().Err(err).Str("slug", post.Slug).Msg("error recording view")
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.post != nil && d.post.ID == post.ID {
		d.post.Views = views
	}
}

// Post returns the last loaded post, or nil
func (d *PostDetail) Post() *models.BlogPost {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.post == nil {
		return nil
	}
	post := *d.post
	return &post
}

// Error is the message of the last failed load
func (d *PostDetail) Error() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastError
}

// Wait blocks until pending view updates finish or timeout passes. It reports whether they finished.
func (d *PostDetail) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		d.views.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
