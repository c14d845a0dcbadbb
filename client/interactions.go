package client

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrLikeInFlight is returned when a like is already being sent
var ErrLikeInFlight = errors.New("like already in progress")

// Likes shows a post's like count, applying each like before the server confirms it
type Likes struct {
	client *Client
	postID uuid.UUID
	logger zerolog.Logger

	mu     sync.Mutex
	count  int64
	liking bool
}

func NewLikes(client *Client, postID uuid.UUID, initial int64) *Likes {
	return &Likes{
		client: client,
		postID: postID,
		count:  initial,
		logger: log.With().Str("unit", "likes").Str("postID", postID.String()).Logger(),
	}
}

// Like bumps the count at once and reverts it if the server rejects the like
func (l *Likes) Like(ctx context.Context) error {
	l.mu.Lock()
	if l.liking {
		l.mu.Unlock()
		return ErrLikeInFlight
	}
	l.liking = true
	l.count++
	l.mu.Unlock()

	likes, err := l.client.LikePost(ctx, l.postID)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.liking = false
	if err != nil {
		l.count--
		l.logger.Error().Err(err).Msg("error liking post")
		return err
	}
	l.count = likes
	return nil
}

func (l *Likes) Count() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
