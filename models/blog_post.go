package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPost represents a Markdown post with its engagement counters
type BlogPost struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title         string    `json:"title" db:"title" gorm:"type:text;not null"`
	Slug          string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_blog_posts_slug"`
	Content       string    `json:"content" db:"content" gorm:"type:text;not null"`
	CoverImageURL *string   `json:"coverImageUrl" db:"cover_image_url" gorm:"type:text"`
	Tags          []BlogTag `json:"-" gorm:"foreignKey:BlogPostID;references:ID;constraint:OnDelete:CASCADE"`
	AuthorID      uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Author        *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	IsDraft       bool      `json:"isDraft" db:"is_draft" gorm:"not null;index"`
	Views         int64     `json:"views" db:"views" gorm:"not null;default:0"`
	Likes         int64     `json:"likes" db:"likes" gorm:"not null;default:0"`
	GeneratedByAI bool      `json:"generatedByAI" db:"generated_by_ai" gorm:"column:generated_by_ai;not null"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at" gorm:"index"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TagValues returns the post's tags as plain strings, in stored order
func (p BlogPost) TagValues() []string {
	values := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		values = append(values, tag.Value)
	}
	return values
}

// MarshalJSON flattens the tag rows into a string list
func (p BlogPost) MarshalJSON() ([]byte, error) {
	type alias BlogPost
	return json.Marshal(struct {
		alias
		Tags []string `json:"tags"`
	}{alias(p), p.TagValues()})
}

// UnmarshalJSON reads the flattened tag list back into tag rows
func (p *BlogPost) UnmarshalJSON(data []byte) error {
	type alias BlogPost
	aux := struct {
		*alias
		Tags []string `json:"tags"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Tags = make([]BlogTag, 0, len(aux.Tags))
	for _, value := range aux.Tags {
		p.Tags = append(p.Tags, BlogTag{BlogPostID: p.ID, Value: value})
	}
	return nil
}

// NormalizeTags trims tag values and drops empty and repeated entries, keeping first occurrence order
func NormalizeTags(values []string) []string {
	seen := make(map[string]bool, len(values))
	normalized := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		normalized = append(normalized, v)
	}
	return normalized
}
