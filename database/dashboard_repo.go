package database

import (
	"context"

	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rpupo63/blog-platform-backend/services"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	dashboardTopPosts       = 5
	dashboardRecentComments = 5
)

type DashboardRepo struct {
	db       *gorm.DB
	posts    *BlogPostRepo
	tags     *BlogTagRepo
	comments *CommentRepo
}

func NewDashboardRepo(db *gorm.DB) *DashboardRepo {
	return &DashboardRepo{
		db:       db,
		posts:    NewBlogPostRepo(db),
		tags:     NewBlogTagRepo(db),
		comments: NewCommentRepo(db),
	}
}

// Summary gathers every dashboard figure concurrently
func (r *DashboardRepo) Summary(ctx context.Context) (*services.Dashboard, error) {
	dashboard := &services.Dashboard{}
	status := &dashboard.Status

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := r.posts.CountByStatus(gctx)
		if err != nil {
			return err
		}
		status.TotalPosts = counts.All
		status.DraftPosts = counts.Draft
		status.PublishedPosts = counts.Published
		return nil
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).
			Model(&models.BlogPost{}).
			Where("generated_by_ai = ?", true).
			Count(&status.AIGeneratedPosts).Error
	})
	g.Go(func() error {
		var err error
		status.TotalComments, err = r.comments.Count(gctx)
		return err
	})
	g.Go(func() error {
		var totals struct {
			Views int64
			Likes int64
		}
		err := r.db.WithContext(gctx).
			Model(&models.BlogPost{}).
			Select("COALESCE(SUM(views), 0) AS views, COALESCE(SUM(likes), 0) AS likes").
			Scan(&totals).Error
		status.TotalViews, status.TotalLikes = totals.Views, totals.Likes
		return err
	})
	g.Go(func() error {
		dashboard.TopPosts = []models.BlogPost{}
		return r.posts.listing(gctx).
			Scopes(published).
			Order("views DESC").
			Limit(dashboardTopPosts).
			Find(&dashboard.TopPosts).Error
	})
	g.Go(func() error {
		var err error
		dashboard.RecentComments, err = r.comments.Recent(gctx, dashboardRecentComments)
		return err
	})
	g.Go(func() error {
		var err error
		dashboard.TagUsage, err = r.tags.Usage(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dashboard, nil
}
