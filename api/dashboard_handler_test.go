package api

import (
	"net/http"
	"testing"

	"github.com/rpupo63/blog-platform-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.register("bo", true)
	member := api.register("ana", false)
	post := api.createPost(admin.Token, "Stats", false, "go")
	api.createPost(admin.Token, "Hidden", true, "go", "wip")
	api.comment(member.Token, post.ID, "nice", nil)
	api.do(http.MethodPost, "/posts/"+post.ID.String()+"/view", "", nil)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/dashboard", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/dashboard", member.Token, nil).Code)

	rec := api.do(http.MethodGet, "/dashboard", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dashboard := decodeBody[struct {
		Status         services.DashboardStatus `json:"status"`
		TopPosts       []postBody               `json:"topPosts"`
		RecentComments []commentBody            `json:"recentComments"`
		TagUsage       []services.TagCount      `json:"tagUsage"`
	}](t, rec)

	assert.Equal(t, services.DashboardStatus{
		TotalPosts:     2,
		DraftPosts:     1,
		PublishedPosts: 1,
		TotalComments:  1,
		TotalViews:     1,
	}, dashboard.Status)
	require.Len(t, dashboard.TopPosts, 1)
	assert.Equal(t, "Stats", dashboard.TopPosts[0].Title)
	require.Len(t, dashboard.RecentComments, 1)
	assert.Equal(t, []services.TagCount{{Tag: "go", Count: 2}, {Tag: "wip", Count: 1}}, dashboard.TagUsage)
}
