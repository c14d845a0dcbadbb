package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a reader comment on a post. A nil ParentCommentID marks a top-level comment.
// The parent reference carries no foreign key: replies may outlive their parent.
type Comment struct {
	ID              uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Content         string     `json:"content" db:"content" gorm:"type:text;not null"`
	PostID          uuid.UUID  `json:"postId" db:"post_id" gorm:"type:uuid;not null;index"`
	Post            *BlogPost  `json:"post,omitempty" gorm:"foreignKey:PostID;references:ID"`
	AuthorID        uuid.UUID  `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Author          *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	ParentCommentID *uuid.UUID `json:"parentComment" db:"parent_comment_id" gorm:"type:uuid;index"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at" gorm:"index"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
