package services

import "github.com/rpupo63/blog-platform-backend/models"

// DashboardStatus holds the headline totals
type DashboardStatus struct {
	TotalPosts       int64 `json:"totalPosts"`
	DraftPosts       int64 `json:"draftPosts"`
	PublishedPosts   int64 `json:"publishedPosts"`
	AIGeneratedPosts int64 `json:"aiGeneratedPosts"`
	TotalComments    int64 `json:"totalComments"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
}

// TagCount is the number of posts carrying one tag
type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// Dashboard is the admin overview
type Dashboard struct {
	Status         DashboardStatus   `json:"status"`
	TopPosts       []models.BlogPost `json:"topPosts"`
	RecentComments []models.Comment  `json:"recentComments"`
	TagUsage       []TagCount        `json:"tagUsage"`
}
