package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/models"
	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

func postSummaryColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "title", "slug")
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindByID returns a comment with its author
func (r *CommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author", authorColumns).
		Where("id = ?", id).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByPost returns every comment on a post, oldest first
func (r *CommentRepo) FindByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Preload("Author", authorColumns).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// FindAll returns every comment across posts, oldest first, with author and post summary
func (r *CommentRepo) FindAll(ctx context.Context) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Preload("Author", authorColumns).
		Preload("Post", postSummaryColumns).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// Recent returns the newest limit comments with author and post summary
func (r *CommentRepo) Recent(ctx context.Context, limit int) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Preload("Author", authorColumns).
		Preload("Post", postSummaryColumns).
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

// Count returns the number of stored comments
func (r *CommentRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&count).Error
	return count, err
}

// ParentsForPost maps each comment on a post to its parent reference
func (r *CommentRepo) ParentsForPost(ctx context.Context, postID uuid.UUID) (map[uuid.UUID]*uuid.UUID, error) {
	var rows []struct {
		ID              uuid.UUID
		ParentCommentID *uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("id", "parent_comment_id").
		Where("post_id = ?", postID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	parents := make(map[uuid.UUID]*uuid.UUID, len(rows))
	for _, row := range rows {
		parents[row.ID] = row.ParentCommentID
	}
	return parents, nil
}

// DeleteWithDirectReplies removes a comment and then the comments whose parent it is.
// Deeper descendants are left in place and become orphans. The two statements are not
// run in a transaction. It returns the number of replies removed.
func (r *CommentRepo) DeleteWithDirectReplies(ctx context.Context, id uuid.UUID) (int64, error) {
	db := r.db.WithContext(ctx)

	result := db.Where("id = ?", id).Delete(&models.Comment{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	result = db.Where("parent_comment_id = ?", id).Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}
