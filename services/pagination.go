package services

import (
	"strconv"
	"strings"

	"github.com/rpupo63/blog-platform-backend/models"
)

// PageSize is the number of posts served per page
const PageSize = 10

// PostStatus selects posts by publication state
type PostStatus string

const (
	StatusAll       PostStatus = "all"
	StatusPublished PostStatus = "published"
	StatusDraft     PostStatus = "draft"
)

// ParseStatus reads a status filter case-insensitively.
// An absent value means published; an unrecognized one means all.
func ParseStatus(raw string) PostStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return StatusPublished
	case string(StatusPublished):
		return StatusPublished
	case string(StatusDraft):
		return StatusDraft
	default:
		return StatusAll
	}
}

// DraftFilter returns the isDraft value the status selects, or nil for no filter
func (s PostStatus) DraftFilter() *bool {
	var isDraft bool
	switch s {
	case StatusPublished:
		isDraft = false
	case StatusDraft:
		isDraft = true
	default:
		return nil
	}
	return &isDraft
}

// ParsePage reads a 1-based page number; anything missing or below 1 is page 1
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Offset is the number of records skipped before page
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// TotalPages is ceil(total / size)
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// StatusCounts are the tab badge counts, always taken over the whole collection
type StatusCounts struct {
	All       int64 `json:"all"`
	Draft     int64 `json:"draft"`
	Published int64 `json:"published"`
}

// PostPage is one page of posts plus the totals the listing needs
type PostPage struct {
	Posts      []models.BlogPost `json:"posts"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	TotalCount int64             `json:"totalCount"`
	Counts     StatusCounts      `json:"counts"`
}

// NewPostPage assembles a page response from the query results
func NewPostPage(posts []models.BlogPost, page int, totalCount int64, counts StatusCounts) PostPage {
	if posts == nil {
		posts = []models.BlogPost{}
	}
	return PostPage{
		Posts:      posts,
		Page:       page,
		TotalPages: TotalPages(totalCount, PageSize),
		TotalCount: totalCount,
		Counts:     counts,
	}
}
