package client

import (
	"context"
	"sync"

	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rpupo63/blog-platform-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PostFeed accumulates listing pages for one status filter.
// Page 1 replaces the list, later pages append to it.
type PostFeed struct {
	client *Client
	logger zerolog.Logger

	mu         sync.Mutex
	status     services.PostStatus
	posts      []models.BlogPost
	page       int
	totalPages int
	counts     services.StatusCounts
	loading    bool
	lastError  string
	// seq numbers requests, only the latest one may update the feed
	seq uint64
}

// FeedSnapshot is a consistent copy of the feed state
type FeedSnapshot struct {
	Status     services.PostStatus
	Posts      []models.BlogPost
	Page       int
	TotalPages int
	Counts     services.StatusCounts
	Loading    bool
	Error      string
}

func NewPostFeed(client *Client, status services.PostStatus) *PostFeed {
	return &PostFeed{
		client: client,
		status: status,
		logger: log.With().Str("unit", "postFeed").Logger(),
	}
}

// Fetch loads page of the current status
func (f *PostFeed) Fetch(ctx context.Context, page int) error {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	status := f.status
	f.loading = true
	f.mu.Unlock()

	result, err := f.client.Posts(ctx, status, page)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seq != seq {
		// a newer request was issued while this one was in flight
		f.logger.Debug().Str("status", string(status)).Int("page", page).Msg("discarding stale page")
		return nil
	}
	f.loading = false
	if err != nil {
		f.lastError = err.Error()
		f.logger.Error().Err(err).Str("status", string(status)).Int("page", page).Msg("error fetching posts")
		return err
	}

	if page == 1 {
		f.posts = append([]models.BlogPost{}, result.Posts...)
	} else {
		f.posts = append(f.posts, result.Posts...)
	}
	f.page = page
	f.totalPages = result.TotalPages
	f.counts = result.Counts
	f.lastError = ""
	return nil
}

// LoadMore fetches the next page. It does nothing on the last page or while a fetch is running.
func (f *PostFeed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.loading || f.page >= f.totalPages {
		f.mu.Unlock()
		return nil
	}
	next := f.page + 1
	f.mu.Unlock()

	return f.Fetch(ctx, next)
}

func (f *PostFeed) Refresh(ctx context.Context) error {
	return f.Fetch(ctx, 1)
}

// SetStatus switches the filter and reloads from page 1. Responses to earlier requests still in flight are discarded.
func (f *PostFeed) SetStatus(ctx context.Context, status services.PostStatus) error {
	f.mu.Lock()
	f.status = status
	f.mu.Unlock()

	return f.Fetch(ctx, 1)
}

// HasMore reports whether a later page exists
func (f *PostFeed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page < f.totalPages
}

func (f *PostFeed) Snapshot() FeedSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FeedSnapshot{
		Status:     f.status,
		Posts:      append([]models.BlogPost{}, f.posts...),
		Page:       f.page,
		TotalPages: f.totalPages,
		Counts:     f.counts,
		Loading:    f.loading,
		Error:      f.lastError,
	}
}
