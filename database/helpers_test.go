package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		Password: "hash",
		Role:     models.RoleMember,
	}
	require.NoError(t, NewUserRepo(db).Add(context.Background(), user))
	return user
}

type postSeed struct {
	title   string
	content string
	draft   bool
	views   int64
	likes   int64
	minute  int
	tags    []string
	byAI    bool
}

func seedPost(t *testing.T, db *gorm.DB, author *models.User, seed postSeed) *models.BlogPost {
	t.Helper()
	if seed.title == "" {
		seed.title = "Post " + uuid.NewString()[:8]
	}
	if seed.content == "" {
		seed.content = "body"
	}
	post := &models.BlogPost{
		Title:         seed.title,
		Slug:          uuid.NewString(),
		Content:       seed.content,
		AuthorID:      author.ID,
		IsDraft:       seed.draft,
		Views:         seed.views,
		Likes:         seed.likes,
		GeneratedByAI: seed.byAI,
		CreatedAt:     baseTime.Add(time.Duration(seed.minute) * time.Minute),
	}
	require.NoError(t, NewBlogPostRepo(db).Add(context.Background(), post, seed.tags))
	return post
}

func seedComment(t *testing.T, db *gorm.DB, post *models.BlogPost, author *models.User, parent *models.Comment, minute int) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Content:   fmt.Sprintf("comment at %d", minute),
		PostID:    post.ID,
		AuthorID:  author.ID,
		CreatedAt: baseTime.Add(time.Duration(minute) * time.Minute),
	}
	if parent != nil {
		comment.ParentCommentID = &parent.ID
	}
	require.NoError(t, NewCommentRepo(db).Add(context.Background(), comment))
	return comment
}

func titles(posts []models.BlogPost) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}
