package database

import (
	"context"
	"testing"

	"github.com/rpupo63/blog-platform-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummary(t *testing.T) {
	db := setupTestDB(t)
	author := seedUser(t, db, "ana")
	top := seedPost(t, db, author, postSeed{title: "top", views: 90, likes: 3, tags: []string{"go", "db"}, byAI: true})
	seedPost(t, db, author, postSeed{title: "mid", views: 40, likes: 2, tags: []string{"go"}})
	seedPost(t, db, author, postSeed{title: "draft", views: 500, draft: true, tags: []string{"rust"}})
	for i := 0; i < 6; i++ {
		seedComment(t, db, top, author, nil, i)
	}

	dashboard, err := NewDashboardRepo(db).Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, services.DashboardStatus{
		TotalPosts:       3,
		DraftPosts:       1,
		PublishedPosts:   2,
		AIGeneratedPosts: 1,
		TotalComments:    6,
		TotalViews:       630,
		TotalLikes:       5,
	}, dashboard.Status)
	assert.Equal(t, []string{"top", "mid"}, titles(dashboard.TopPosts))
	require.Len(t, dashboard.RecentComments, 5)
	assert.Equal(t, "comment at 5", dashboard.RecentComments[0].Content)
	require.NotNil(t, dashboard.RecentComments[0].Post)
	assert.Equal(t, "top", dashboard.RecentComments[0].Post.Title)
	assert.Equal(t, []services.TagCount{{Tag: "go", Count: 2}, {Tag: "db", Count: 1}, {Tag: "rust", Count: 1}}, dashboard.TagUsage)
}

func TestDashboardSummaryEmpty(t *testing.T) {
	db := setupTestDB(t)

	dashboard, err := NewDashboardRepo(db).Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, services.DashboardStatus{}, dashboard.Status)
	assert.Empty(t, dashboard.TopPosts)
	assert.Empty(t, dashboard.RecentComments)
	assert.Empty(t, dashboard.TagUsage)
}
