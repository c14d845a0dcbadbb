package database

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rpupo63/blog-platform-backend/services"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// TrendingLimit is the number of posts in the trending list
const TrendingLimit = 10

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// listing preloads the public author profile and tags
func (r *BlogPostRepo) listing(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author", authorColumns).
		Preload("Tags")
}

func published(db *gorm.DB) *gorm.DB {
	return db.Where("is_draft = ?", false)
}

func byDraft(isDraft *bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if isDraft == nil {
			return db
		}
		return db.Where("is_draft = ?", *isDraft)
	}
}

// FindPage returns one page of posts for status, newest first, with the filtered total and
// the per-status counts over the whole collection. The queries run concurrently.
func (r *BlogPostRepo) FindPage(ctx context.Context, status services.PostStatus, page int) (services.PostPage, error) {
	var (
		posts  []models.BlogPost
		total  int64
		counts services.StatusCounts
	)
	filter := byDraft(status.DraftFilter())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.listing(gctx).
			Scopes(filter).
			Order("created_at DESC").
			Offset(services.Offset(page, services.PageSize)).
			Limit(services.PageSize).
			Find(&posts).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.BlogPost{}).Scopes(filter).Count(&total).Error
	})
	g.Go(func() error {
		var err error
		counts, err = r.CountByStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return services.PostPage{}, err
	}

	return services.NewPostPage(posts, page, total, counts), nil
}

// CountByStatus counts all, draft and published posts concurrently
func (r *BlogPostRepo) CountByStatus(ctx context.Context) (services.StatusCounts, error) {
	var counts services.StatusCounts
	draft, live := true, false

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.BlogPost{}).Count(&counts.All).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.BlogPost{}).Scopes(byDraft(&draft)).Count(&counts.Draft).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.BlogPost{}).Scopes(byDraft(&live)).Count(&counts.Published).Error
	})
	if err := g.Wait(); err != nil {
		return services.StatusCounts{}, err
	}
	return counts, nil
}

// FindBySlug returns the post with exactly this slug, regardless of draft state
func (r *BlogPostRepo) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.listing(ctx).Where("slug = ?", slug).First(&blogPost).Error
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// FindByID returns a blog post by its ID
func (r *BlogPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.listing(ctx).Where("id = ?", id).First(&blogPost).Error
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// Exists reports whether a post with id is stored
func (r *BlogPostRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// FindByTag returns the published posts carrying tag, newest first
func (r *BlogPostRepo) FindByTag(ctx context.Context, tag string) ([]models.BlogPost, error) {
	tagged := r.db.Model(&models.BlogTag{}).Select("blog_post_id").Where("value = ?", tag)

	posts := []models.BlogPost{}
	err := r.listing(ctx).
		Scopes(published).
		Where("id IN (?)", tagged).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// Search matches query case-insensitively as a literal substring of the title or content
// of published posts, newest first
func (r *BlogPostRepo) Search(ctx context.Context, query string) ([]models.BlogPost, error) {
	if r.db.Dialector.Name() != "postgres" {
		return r.searchFolded(ctx, query)
	}

	pattern := "%" + escapeLike(query) + "%"
	posts := []models.BlogPost{}
	err := r.listing(ctx).
		Scopes(published).
		Where(`(title ILIKE ? ESCAPE '\' OR content ILIKE ? ESCAPE '\')`, pattern, pattern).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// searchFolded scans published posts and folds case in Go.
// SQLite's LOWER and LIKE only fold ASCII letters.
func (r *BlogPostRepo) searchFolded(ctx context.Context, query string) ([]models.BlogPost, error) {
	var candidates []models.BlogPost
	err := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Scopes(published).
		Select("id", "title", "content").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var ids []uuid.UUID
	for _, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate.Title), needle) ||
			strings.Contains(strings.ToLower(candidate.Content), needle) {
			ids = append(ids, candidate.ID)
		}
	}

	posts := []models.BlogPost{}
	if len(ids) == 0 {
		return posts, nil
	}
	err = r.listing(ctx).
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// Trending returns the most viewed published posts, ties broken by likes
func (r *BlogPostRepo) Trending(ctx context.Context) ([]models.BlogPost, error) {
	posts := []models.BlogPost{}
	err := r.listing(ctx).
		Scopes(published).
		Order("views DESC").
		Order("likes DESC").
		Limit(TrendingLimit).
		Find(&posts).Error
	return posts, err
}

// IncrementViews adds one view in a single statement and returns the new count
func (r *BlogPostRepo) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.increment(ctx, id, "views")
}

// IncrementLikes adds one like in a single statement and returns the new count
func (r *BlogPostRepo) IncrementLikes(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.increment(ctx, id, "likes")
}

func (r *BlogPostRepo) increment(ctx context.Context, id uuid.UUID, column string) (int64, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var value int64
	err := db.Model(&models.BlogPost{}).Where("id = ?", id).Select(column).Scan(&value).Error
	return value, err
}

// Add inserts a new blog post together with its tags
func (r *BlogPostRepo) Add(ctx context.Context, blogPost *models.BlogPost, tags []string) error {
	if blogPost.ID == uuid.Nil {
		blogPost.ID = uuid.New()
	}
	blogPost.Tags = newTags(blogPost.ID, tags)
	return r.db.WithContext(ctx).Create(blogPost).Error
}

// Update writes every editable field of blogPost and replaces its tags
func (r *BlogPostRepo) Update(ctx context.Context, blogPost *models.BlogPost, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.BlogPost{}).
			Where("id = ?", blogPost.ID).
			Updates(map[string]interface{}{
				"title":           blogPost.Title,
				"slug":            blogPost.Slug,
				"content":         blogPost.Content,
				"cover_image_url": blogPost.CoverImageURL,
				"is_draft":        blogPost.IsDraft,
				"generated_by_ai": blogPost.GeneratedByAI,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := replaceTags(tx, blogPost.ID, tags); err != nil {
			return err
		}
		blogPost.Tags = newTags(blogPost.ID, tags)
		return nil
	})
}

// Delete removes a blog post along with its tags and comments
func (r *BlogPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_post_id = ?", id).Delete(&models.BlogTag{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.BlogPost{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in s match literally
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
