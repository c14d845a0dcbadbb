package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo      *UserRepo
	blogPostRepo  *BlogPostRepo
	blogTagRepo   *BlogTagRepo
	commentRepo   *CommentRepo
	dashboardRepo *DashboardRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:      NewUserRepo(db),
		blogPostRepo:  NewBlogPostRepo(db),
		blogTagRepo:   NewBlogTagRepo(db),
		commentRepo:   NewCommentRepo(db),
		dashboardRepo: NewDashboardRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) BlogTagRepo() *BlogTagRepo {
	return d.blogTagRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) DashboardRepo() *DashboardRepo {
	return d.dashboardRepo
}

// authorColumns limits a preloaded author to its public profile
func authorColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "profile_image_url")
}
