package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rpupo63/blog-platform-backend/services"
	"gorm.io/gorm"
)

type BlogTagRepo struct {
	db *gorm.DB
}

func NewBlogTagRepo(db *gorm.DB) *BlogTagRepo {
	return &BlogTagRepo{db}
}

// FindByPost returns the tags of one post
func (r *BlogTagRepo) FindByPost(ctx context.Context, blogPostID uuid.UUID) ([]models.BlogTag, error) {
	var tags []models.BlogTag
	err := r.db.WithContext(ctx).Where("blog_post_id = ?", blogPostID).Find(&tags).Error
	return tags, err
}

// Usage counts posts per tag, most used first
func (r *BlogTagRepo) Usage(ctx context.Context) ([]services.TagCount, error) {
	usage := []services.TagCount{}
	err := r.db.WithContext(ctx).
		Model(&models.BlogTag{}).
		Select("value AS tag, COUNT(*) AS count").
		Group("value").
		Order("count DESC, tag ASC").
		Scan(&usage).Error
	return usage, err
}

// replaceTags swaps the stored tags of a post for values inside tx
func replaceTags(tx *gorm.DB, blogPostID uuid.UUID, values []string) error {
	if err := tx.Where("blog_post_id = ?", blogPostID).Delete(&models.BlogTag{}).Error; err != nil {
		return err
	}
	tags := newTags(blogPostID, values)
	if len(tags) == 0 {
		return nil
	}
	return tx.Create(&tags).Error
}

func newTags(blogPostID uuid.UUID, values []string) []models.BlogTag {
	values = models.NormalizeTags(values)
	tags := make([]models.BlogTag, 0, len(values))
	for _, v := range values {
		tags = append(tags, models.BlogTag{BlogPostID: blogPostID, Value: v})
	}
	return tags
}
